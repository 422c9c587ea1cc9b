// Package debugger wraps a vm.CPU and its attached devices behind the
// command surface of the emu binary's interactive debugger (spec §6).
package debugger

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Urethramancer/rm16/device"
	"github.com/Urethramancer/rm16/isa"
	"github.com/Urethramancer/rm16/vm"
)

// VideoOrigin is the word address of the video frame buffer: spec §4.9/§6
// calls it "bank 0", physically present at the bank window's base address
// in ordinary main memory, visible whenever MB selects no auxiliary bank
// (MB%32==0) — not one of the 31 auxiliary banks reached by setting MB.
const VideoOrigin = isa.BankWindowStart

// Harness is the core, UI-independent debugger API: everything the
// line-oriented REPL and the optional TUI dashboard both drive.
type Harness struct {
	CPU         *vm.CPU
	Console     *device.Console
	Video       *device.VideoBank
	Breakpoints map[uint16]bool

	out io.Writer
}

// New creates a Harness with a console wired to out (typically os.Stdout)
// and the CPU's port-0 writes routed to it.
func New(out io.Writer) *Harness {
	c := vm.New()
	h := &Harness{
		CPU:         c,
		Console:     device.NewConsole(out),
		Breakpoints: make(map[uint16]bool),
		out:         out,
	}
	c.Console = h.Console.Write
	c.SetWarn(func(msg string) { fmt.Fprintf(out, "warning: %s\n", msg) })
	return h
}

// Load reads a binary image from disk and places it at the given word
// address (spec §6's "load" command).
func (h *Harness) Load(path string, addr uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	words := isa.BytesToWords(data)
	h.CPU.LoadImage(uint32(addr), words)
	h.CPU.Reg[isa.RegPC] = addr
	return nil
}

// AttachGraphics enables the video bank observer (spec §6's "dev graphics"),
// reading directly out of main memory at the video frame buffer's origin —
// ordinary memory, written by the running program via plain PUT.
func (h *Harness) AttachGraphics() {
	h.Video = device.NewVideoBank(func() []uint16 {
		return h.CPU.Mem[VideoOrigin : VideoOrigin+device.Cells]
	})
}

// Run executes until HALT, a breakpoint address is hit, or an error occurs.
func (h *Harness) Run() error {
	return h.CPU.Run(h.Breakpoints)
}

// Step executes exactly one instruction.
func (h *Harness) Step() (halted bool, err error) {
	return h.CPU.Step()
}

// SetBreakpoint and ClearBreakpoint manage the breakpoint set by address.
func (h *Harness) SetBreakpoint(addr uint16) { h.Breakpoints[addr] = true }
func (h *Harness) ClearBreakpoint(addr uint16) {
	delete(h.Breakpoints, addr)
}

// ListBreakpoints returns every breakpoint address in ascending order.
func (h *Harness) ListBreakpoints() []uint16 {
	out := make([]uint16, 0, len(h.Breakpoints))
	for a := range h.Breakpoints {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RegisterLines renders every general and special register as
// "NAME = 0xVALUE", the name left-aligned in two columns.
func (h *Harness) RegisterLines() []string {
	names := []string{"A", "B", "C", "D", "E", "X", "Y", "PC", "SP", "F", "MB", "Z"}
	out := make([]string, len(names))
	for i, name := range names {
		idx := isa.NameToRegister[name]
		out[i] = fmt.Sprintf("%-2s = %#06x", name, h.CPU.Reg[idx])
	}
	return out
}

// SetRegister writes a named register.
func (h *Harness) SetRegister(name string, value uint16) error {
	idx, ok := isa.NameToRegister[name]
	if !ok {
		return fmt.Errorf("unknown register %q", name)
	}
	h.CPU.Reg[idx] = value
	return nil
}

// FlagLine renders the F register's individual flag bits.
func (h *Harness) FlagLine() string {
	f := h.CPU.F()
	bit := func(b uint16, name string) string {
		if f&b != 0 {
			return name
		}
		return "-"
	}
	return fmt.Sprintf("C=%s Z=%s N=%s O=%s I=%s",
		bit(isa.FlagC, "C"), bit(isa.FlagZ, "Z"), bit(isa.FlagN, "N"),
		bit(isa.FlagO, "O"), bit(isa.FlagI, "I"))
}

// MemoryWords returns count words starting at addr for display.
func (h *Harness) MemoryWords(addr uint16, count int) []uint16 {
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = h.CPU.ReadWord(uint32(addr) + uint32(i))
	}
	return out
}

// SetMemoryWord pokes a single word (the "setm" command).
func (h *Harness) SetMemoryWord(addr, value uint16) {
	h.CPU.WriteWord(uint32(addr), value)
}

// NonZeroPorts returns every port whose value is non-zero, for the "ports"
// command (port 0, the console, never holds state and is never listed).
func (h *Harness) NonZeroPorts() map[uint8]uint16 {
	out := make(map[uint8]uint16)
	for i := 1; i < len(h.CPU.Ports); i++ {
		if h.CPU.Ports[i] != 0 {
			out[uint8(i)] = h.CPU.Ports[i]
		}
	}
	return out
}

// DisassembleOne decodes and formats the single instruction at addr,
// without advancing any state.
func (h *Harness) DisassembleOne(addr uint16) (string, error) {
	word0 := h.CPU.ReadWord(uint32(addr))
	ins, needsWord1, err := isa.Decode(word0)
	if err != nil {
		return "", err
	}
	if needsWord1 {
		ins = isa.FinishDecode(ins, h.CPU.ReadWord(uint32(addr)+1))
	}
	return formatInstruction(ins), nil
}

func formatInstruction(ins isa.Instruction) string {
	f, err := isa.Lookup(ins.Op, ins.Mode)
	if err != nil {
		return isa.Mnemonics[ins.Op]
	}
	s := isa.Mnemonics[ins.Op]
	var operands []string
	if f.RA {
		operands = append(operands, isa.RegisterNames[ins.RA])
	}
	if f.RB {
		operands = append(operands, isa.RegisterNames[ins.RB])
	}
	if f.Imm {
		operands = append(operands, isa.FormatImmediate(ins.Imm))
	}
	if len(operands) == 0 {
		return s
	}
	for i, o := range operands {
		if i == 0 {
			s += " " + o
		} else {
			s += ", " + o
		}
	}
	return s
}
