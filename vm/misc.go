package vm

import "github.com/Urethramancer/rm16/isa"

func opNOP(c *CPU, ins isa.Instruction) error {
	return nil
}

func opHALT(c *CPU, ins isa.Instruction) error {
	c.Halted = true
	return nil
}
