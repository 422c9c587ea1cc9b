package debugger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Urethramancer/rm16/debugger"
	"github.com/Urethramancer/rm16/isa"
)

func TestHarnessStepAndRegisters(t *testing.T) {
	var out bytes.Buffer
	h := debugger.New(&out)

	words, _ := isa.Encode(isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 42})
	h.CPU.LoadImage(0, words)

	halted, err := h.Step()
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if halted {
		t.Fatal("MOV should not halt")
	}

	found := false
	for _, line := range h.RegisterLines() {
		if strings.HasPrefix(line, "A ") && strings.Contains(line, "0x002a") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected A=0x002a among register lines: %v", h.RegisterLines())
	}
}

func TestHarnessBreakpoints(t *testing.T) {
	var out bytes.Buffer
	h := debugger.New(&out)
	h.SetBreakpoint(0x10)
	h.SetBreakpoint(0x5)
	got := h.ListBreakpoints()
	if len(got) != 2 || got[0] != 0x5 || got[1] != 0x10 {
		t.Fatalf("expected sorted [0x5 0x10], got %v", got)
	}
	h.ClearBreakpoint(0x5)
	got = h.ListBreakpoints()
	if len(got) != 1 || got[0] != 0x10 {
		t.Fatalf("expected [0x10] after clear, got %v", got)
	}
}

func TestHarnessDisassembleOne(t *testing.T) {
	var out bytes.Buffer
	h := debugger.New(&out)
	words, _ := isa.Encode(isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})
	h.CPU.LoadImage(0, words)

	s, err := h.DisassembleOne(0)
	if err != nil {
		t.Fatalf("disassemble failed: %v", err)
	}
	if s != "HALT" {
		t.Fatalf("expected %q, got %q", "HALT", s)
	}
}

func TestREPLRegsAndQuit(t *testing.T) {
	var out bytes.Buffer
	h := debugger.New(&out)
	in := strings.NewReader("regs\nquit\n")
	r := debugger.NewREPL(h, in)
	r.Loop()

	if !strings.Contains(out.String(), "PC") {
		t.Fatalf("expected register output to include PC, got:\n%s", out.String())
	}
}
