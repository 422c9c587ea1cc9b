package vm

import "github.com/Urethramancer/rm16/isa"

// opLSH shifts RA left by RB-or-immediate bits. C takes the last bit
// shifted out; O is cleared (undefined for shifts, spec §4.6).
func opLSH(c *CPU, ins isa.Instruction) error {
	shift := operandValue(c, ins) & 0xF
	v := c.Reg[ins.RA]
	var carry bool
	if shift > 0 {
		carry = (v<<(shift-1))&0x8000 != 0
		v <<= shift
	}
	c.setFlag(isa.FlagC, carry)
	c.setFlag(isa.FlagO, false)
	c.setZN(v)
	c.Reg[ins.RA] = v
	return nil
}

// opRSH shifts RA right (logical) by RB-or-immediate bits.
func opRSH(c *CPU, ins isa.Instruction) error {
	shift := operandValue(c, ins) & 0xF
	v := c.Reg[ins.RA]
	var carry bool
	if shift > 0 {
		carry = (v>>(shift-1))&0x1 != 0
		v >>= shift
	}
	c.setFlag(isa.FlagC, carry)
	c.setFlag(isa.FlagO, false)
	c.setZN(v)
	c.Reg[ins.RA] = v
	return nil
}
