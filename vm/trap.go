package vm

import "github.com/Urethramancer/rm16/isa"

// opINT raises a software interrupt identified by handler index h (its
// immediate operand): when masked (flag I clear), it is a no-op; otherwise
// look up the vector at mem[0xFFFF-h], push PC then F, clear the
// interrupt-enable flag, and jump to the vector (spec §4.6, §4.8).
func opINT(c *CPU, ins isa.Instruction) error {
	if !c.flag(isa.FlagI) {
		return nil
	}

	h := ins.Imm
	vector := c.ReadWord(uint32(isa.VectorBase) - uint32(h))

	c.push(c.Reg[isa.RegPC])
	c.push(c.Reg[isa.RegF])
	c.setFlag(isa.FlagI, false)
	c.Reg[isa.RegPC] = vector

	if c.Interrupt != nil {
		c.Interrupt(h)
	}
	return nil
}

// opIRET reverses opINT's push order: pop F, then PC.
func opIRET(c *CPU, ins isa.Instruction) error {
	c.Reg[isa.RegF] = c.pop()
	c.Reg[isa.RegPC] = c.pop()
	return nil
}
