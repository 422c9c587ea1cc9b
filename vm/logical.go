package vm

import "github.com/Urethramancer/rm16/isa"

// Logical operations set Z/N from the result and always clear C/O
// (spec §4.6: no carry or overflow concept applies to bitwise ops).

func opAND(c *CPU, ins isa.Instruction) error {
	v := c.Reg[ins.RA] & operandValue(c, ins)
	c.finishLogical(ins, v)
	return nil
}

func opOR(c *CPU, ins isa.Instruction) error {
	v := c.Reg[ins.RA] | operandValue(c, ins)
	c.finishLogical(ins, v)
	return nil
}

func opNOR(c *CPU, ins isa.Instruction) error {
	v := ^(c.Reg[ins.RA] | operandValue(c, ins))
	c.finishLogical(ins, v)
	return nil
}

func opXOR(c *CPU, ins isa.Instruction) error {
	v := c.Reg[ins.RA] ^ operandValue(c, ins)
	c.finishLogical(ins, v)
	return nil
}

func opNOT(c *CPU, ins isa.Instruction) error {
	v := ^c.Reg[ins.RA]
	c.finishLogical(ins, v)
	return nil
}

func (c *CPU) finishLogical(ins isa.Instruction, result uint16) {
	c.setFlag(isa.FlagC, false)
	c.setFlag(isa.FlagO, false)
	c.setZN(result)
	c.Reg[ins.RA] = result
}
