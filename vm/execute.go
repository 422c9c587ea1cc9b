package vm

import (
	"fmt"

	"github.com/Urethramancer/rm16/isa"
)

// Step fetches, decodes and executes exactly one instruction. It reports
// whether the CPU halted as a result (so callers like the debugger's "run"
// command know to stop without treating HALT as an error).
func (c *CPU) Step() (haltedNow bool, err error) {
	if c.Halted {
		return true, nil
	}

	ins, err := c.fetchDecode()
	if err != nil {
		return false, err
	}

	h, ok := handlers[ins.Op]
	if !ok {
		return false, fmt.Errorf("no handler registered for opcode %s", isa.Mnemonics[ins.Op])
	}
	if err := h(c, ins); err != nil {
		return false, fmt.Errorf("executing %s at %#05x: %w", isa.Mnemonics[ins.Op], c.Reg[isa.RegPC], err)
	}
	return c.Halted, nil
}

// Run steps the CPU until it halts, a breakpoint address is reached, or an
// error occurs. A nil breakpoints set runs to completion or error.
func (c *CPU) Run(breakpoints map[uint16]bool) error {
	c.Running = true
	defer func() { c.Running = false }()

	for {
		if bp := breakpoints; bp != nil && bp[c.Reg[isa.RegPC]] {
			return nil
		}
		halted, err := c.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}
