package vm

import "github.com/Urethramancer/rm16/isa"

// opCMP computes RA - (RB-or-immediate) for its flags only; the result
// itself is discarded (spec §4.6).
func opCMP(c *CPU, ins isa.Instruction) error {
	a, b := c.Reg[ins.RA], operandValue(c, ins)
	c.subWithFlags(a, b, 0)
	return nil
}
