package vm

import "github.com/Urethramancer/rm16/isa"

// activeBank reduces the MB register to a valid bank slot per spec §4.9's
// formula: bank := MB % 32. MB is an ordinary register a program can set to
// any 16-bit value (e.g. "MOV MB, imm16"), so the raw value is never used as
// a slice index directly. Bank 0 is always unbanked main memory.
func (c *CPU) activeBank() uint16 {
	return c.Reg[isa.RegMB] % (isa.BankCount + 1)
}

// ReadWord reads one word, routing through the active bank when addr falls
// inside the bank window and MB%32 is non-zero (spec §4.9).
func (c *CPU) ReadWord(addr uint32) uint16 {
	bank := c.activeBank()
	if bank != 0 && addr >= isa.BankWindowStart && addr < isa.BankWindowEnd {
		return c.Bank[bank][addr-isa.BankWindowStart]
	}
	return c.Mem[addr]
}

// WriteWord writes one word, honouring bank routing and the lower-half
// ROM protection: a write below isa.RAMStart is rejected and warned about,
// never trapped (spec §4.9).
func (c *CPU) WriteWord(addr uint32, val uint16) {
	bank := c.activeBank()
	if bank != 0 && addr >= isa.BankWindowStart && addr < isa.BankWindowEnd {
		c.Bank[bank][addr-isa.BankWindowStart] = val
		return
	}
	if addr < isa.RAMStart {
		c.warnf("write to read-only address %#05x ignored", addr)
		return
	}
	c.Mem[addr] = val
}

// push writes val below the current SP and decrements it first — a
// pre-decrement push (spec §4.8's stack discipline).
func (c *CPU) push(val uint16) {
	c.Reg[isa.RegSP]--
	c.WriteWord(uint32(c.Reg[isa.RegSP]), val)
}

// pop reads the word at SP and increments it afterward.
func (c *CPU) pop() uint16 {
	v := c.ReadWord(uint32(c.Reg[isa.RegSP]))
	c.Reg[isa.RegSP]++
	return v
}
