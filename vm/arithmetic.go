package vm

import "github.com/Urethramancer/rm16/isa"

// opADD adds RB-or-immediate into RA, setting C/Z/N/O from the 16-bit result.
func opADD(c *CPU, ins isa.Instruction) error {
	a, b := c.Reg[ins.RA], operandValue(c, ins)
	result := c.addWithFlags(a, b, 0)
	c.Reg[ins.RA] = result
	return nil
}

// opADC adds RB-or-immediate plus the current carry flag into RA.
func opADC(c *CPU, ins isa.Instruction) error {
	a, b := c.Reg[ins.RA], operandValue(c, ins)
	var carryIn uint16
	if c.flag(isa.FlagC) {
		carryIn = 1
	}
	result := c.addWithFlags(a, b, carryIn)
	c.Reg[ins.RA] = result
	return nil
}

// opSUB subtracts RB-or-immediate from RA, C set on unsigned non-borrow.
func opSUB(c *CPU, ins isa.Instruction) error {
	a, b := c.Reg[ins.RA], operandValue(c, ins)
	result := c.subWithFlags(a, b, 0)
	c.Reg[ins.RA] = result
	return nil
}

// opSBC subtracts RB-or-immediate and any pending borrow from RA. C carries
// the "no borrow occurred" convention (see subWithFlags), so a pending
// borrow from a prior SUB/SBC is signalled by C being clear.
func opSBC(c *CPU, ins isa.Instruction) error {
	a, b := c.Reg[ins.RA], operandValue(c, ins)
	var borrowIn uint16
	if !c.flag(isa.FlagC) {
		borrowIn = 1
	}
	result := c.subWithFlags(a, b, borrowIn)
	c.Reg[ins.RA] = result
	return nil
}

// opINC and opDEC are ADD/SUB by one, sharing the same flag computation.
func opINC(c *CPU, ins isa.Instruction) error {
	c.Reg[ins.RA] = c.addWithFlags(c.Reg[ins.RA], 1, 0)
	return nil
}

func opDEC(c *CPU, ins isa.Instruction) error {
	c.Reg[ins.RA] = c.subWithFlags(c.Reg[ins.RA], 1, 0)
	return nil
}

// addWithFlags computes a+b+carryIn as a 16-bit result, setting C (carry
// out of bit 15), Z, N and O (signed overflow) in F.
func (c *CPU) addWithFlags(a, b, carryIn uint16) uint16 {
	sum := uint32(a) + uint32(b) + uint32(carryIn)
	result := uint16(sum)
	c.setFlag(isa.FlagC, sum > 0xFFFF)
	c.setFlag(isa.FlagO, signedOverflowAdd(a, b, result))
	c.setZN(result)
	return result
}

// subWithFlags computes a-b-borrowIn as a 16-bit result. C is set when NO
// borrow occurs (a >= b+borrowIn), spec §4.6's "unsigned non-borrow of sub"
// convention for SUB/SBC/CMP.
func (c *CPU) subWithFlags(a, b, borrowIn uint16) uint16 {
	diff := int32(a) - int32(b) - int32(borrowIn)
	result := uint16(diff)
	c.setFlag(isa.FlagC, diff >= 0)
	c.setFlag(isa.FlagO, signedOverflowSub(a, b, result))
	c.setZN(result)
	return result
}

func (c *CPU) setZN(result uint16) {
	c.setFlag(isa.FlagZ, result == 0)
	c.setFlag(isa.FlagN, result&0x8000 != 0)
}

// signedOverflowAdd reports whether a+b overflowed as a 16-bit two's
// complement addition: operands share a sign and the result's differs.
func signedOverflowAdd(a, b, result uint16) bool {
	return (a^result)&(b^result)&0x8000 != 0
}

// signedOverflowSub reports whether a-b overflowed as a 16-bit two's
// complement subtraction: operands differ in sign and the result's sign
// matches the subtrahend's.
func signedOverflowSub(a, b, result uint16) bool {
	return (a^b)&(a^result)&0x8000 != 0
}
