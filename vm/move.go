package vm

import "github.com/Urethramancer/rm16/isa"

// opGET loads RA from memory: register-indirect via RB, or a direct 16-bit
// address (spec §4.6). Neither mode dereferences twice.
func opGET(c *CPU, ins isa.Instruction) error {
	var addr uint32
	if ins.Mode == isa.ModeMemIndirect {
		addr = uint32(c.Reg[ins.RB])
	} else {
		addr = uint32(ins.Imm)
	}
	c.Reg[ins.RA] = c.ReadWord(addr)
	return nil
}

// opPUT stores RB to memory, addressed the same way as opGET.
func opPUT(c *CPU, ins isa.Instruction) error {
	var addr uint32
	if ins.Mode == isa.ModeMemIndirect {
		addr = uint32(c.Reg[ins.RA])
	} else {
		addr = uint32(ins.Imm)
	}
	c.WriteWord(addr, c.Reg[ins.RB])
	return nil
}

// opMOV copies a register or an immediate into RA.
func opMOV(c *CPU, ins isa.Instruction) error {
	c.Reg[ins.RA] = operandValue(c, ins)
	return nil
}

// opPUSH pushes a register's value or an immediate onto the stack.
func opPUSH(c *CPU, ins isa.Instruction) error {
	if ins.Mode == isa.ModeReg {
		c.push(c.Reg[ins.RA])
	} else {
		c.push(ins.Imm)
	}
	return nil
}

// opPOP pops the stack into RA.
func opPOP(c *CPU, ins isa.Instruction) error {
	c.Reg[ins.RA] = c.pop()
	return nil
}

// operandValue resolves the RB-or-immediate source shared by MOV and every
// dual-operand arithmetic/logical/compare instruction.
func operandValue(c *CPU, ins isa.Instruction) uint16 {
	if ins.Mode == isa.ModeReg {
		return c.Reg[ins.RB]
	}
	return ins.Imm
}
