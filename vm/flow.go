package vm

import "github.com/Urethramancer/rm16/isa"

// jumpTarget resolves the target address shared by the jump/call family:
// register-indirect via RA, or a direct 16-bit address.
func jumpTarget(c *CPU, ins isa.Instruction) uint16 {
	if ins.Mode == isa.ModeMemIndirect {
		return c.Reg[ins.RA]
	}
	return ins.Imm
}

func opJMP(c *CPU, ins isa.Instruction) error {
	c.Reg[isa.RegPC] = jumpTarget(c, ins)
	return nil
}

func opJZ(c *CPU, ins isa.Instruction) error {
	if c.flag(isa.FlagZ) {
		c.Reg[isa.RegPC] = jumpTarget(c, ins)
	}
	return nil
}

func opJNZ(c *CPU, ins isa.Instruction) error {
	if !c.flag(isa.FlagZ) {
		c.Reg[isa.RegPC] = jumpTarget(c, ins)
	}
	return nil
}

func opJC(c *CPU, ins isa.Instruction) error {
	if c.flag(isa.FlagC) {
		c.Reg[isa.RegPC] = jumpTarget(c, ins)
	}
	return nil
}

func opJNC(c *CPU, ins isa.Instruction) error {
	if !c.flag(isa.FlagC) {
		c.Reg[isa.RegPC] = jumpTarget(c, ins)
	}
	return nil
}

// opCALL pushes the return address (PC, already past the CALL instruction)
// and jumps to the target.
func opCALL(c *CPU, ins isa.Instruction) error {
	ret := c.Reg[isa.RegPC]
	target := jumpTarget(c, ins)
	c.push(ret)
	c.Reg[isa.RegPC] = target
	return nil
}

// opRET pops the return address CALL pushed.
func opRET(c *CPU, ins isa.Instruction) error {
	c.Reg[isa.RegPC] = c.pop()
	return nil
}
