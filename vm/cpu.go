// Package vm implements the register-machine emulator: memory and bank
// routing, the fetch/decode/execute loop, and every opcode handler, all
// driven by the isa package shared with the assembler.
package vm

import (
	"fmt"

	"github.com/Urethramancer/rm16/isa"
)

// CPU holds every piece of machine state: the twelve 16-bit registers
// (general A-Y plus the special PC/SP/F/MB/Z), the word-addressed memory
// with its bank-switching window, and the port space.
type CPU struct {
	Reg [12]uint16

	Mem  []uint16
	Bank [][]uint16 // Bank[1..BankCount], indexed by MB%32; Bank[0] unused

	Ports [256]uint16

	// Console is invoked on a write to port 0 (spec §5's console device).
	Console func(value uint16)
	// Interrupt is invoked whenever an unmasked INT executes, after the
	// vector jump, letting an attached device observe trap entry (debugging,
	// tracing). A masked INT does not invoke it.
	Interrupt func(vector uint16)

	Running bool
	Halted  bool

	// warn receives non-fatal runtime notices (currently only ROM write
	// rejection). nil is a valid, silent default.
	warn func(string)
}

// New creates a CPU with a full-size main memory and an empty bank set.
func New() *CPU {
	c := &CPU{
		Mem:  make([]uint16, isa.MemWords),
		Bank: make([][]uint16, isa.BankCount+1),
	}
	for i := 1; i <= isa.BankCount; i++ {
		c.Bank[i] = make([]uint16, isa.BankWords)
	}
	c.Reset()
	return c
}

// Reset restores the CPU to its power-on state (spec §4.9): SP at its
// initial value, PC/flags/bank-select at zero, running cleared.
func (c *CPU) Reset() {
	for i := range c.Reg {
		c.Reg[i] = 0
	}
	c.Reg[isa.RegSP] = isa.InitialSP
	c.Running = false
	c.Halted = false
}

// SetWarn installs the callback used to report non-fatal runtime notices.
func (c *CPU) SetWarn(fn func(string)) { c.warn = fn }

func (c *CPU) warnf(format string, args ...any) {
	if c.warn != nil {
		c.warn(fmt.Sprintf(format, args...))
	}
}

// LoadImage copies a disassembled/assembled binary into main memory
// starting at the given word address, bypassing the ROM-write check (the
// debugger's "load" command populates memory directly, spec §6).
func (c *CPU) LoadImage(addr uint32, words []uint16) {
	copy(c.Mem[addr:], words)
}

// PC, SP, F, MB, Z accessors: thin wrappers over the register file for
// callers (the debugger, tests) that want named access instead of an index.
func (c *CPU) PC() uint16 { return c.Reg[isa.RegPC] }
func (c *CPU) SP() uint16 { return c.Reg[isa.RegSP] }
func (c *CPU) F() uint16  { return c.Reg[isa.RegF] }
func (c *CPU) MB() uint16 { return c.Reg[isa.RegMB] }

func (c *CPU) setFlag(bit uint16, on bool) {
	if on {
		c.Reg[isa.RegF] |= bit
	} else {
		c.Reg[isa.RegF] &^= bit
	}
}

func (c *CPU) flag(bit uint16) bool {
	return c.Reg[isa.RegF]&bit != 0
}
