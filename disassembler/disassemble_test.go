package disassembler_test

import (
	"strings"
	"testing"

	"github.com/Urethramancer/rm16/disassembler"
	"github.com/Urethramancer/rm16/isa"
)

func encode(t *testing.T, ins isa.Instruction) []uint16 {
	t.Helper()
	words, err := isa.Encode(ins)
	if err != nil {
		t.Fatalf("encode %+v: %v", ins, err)
	}
	return words
}

func TestDisassembleRendersMnemonicAndOperands(t *testing.T) {
	var words []uint16
	words = append(words, encode(t, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 5})...)
	words = append(words, encode(t, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})...)

	out, err := disassembler.Disassemble(isa.WordsToBytes(words))
	if err != nil {
		t.Fatalf("disassemble failed: %v", err)
	}
	if !strings.Contains(out, "MOV") || !strings.Contains(out, "A") {
		t.Fatalf("expected MOV A in output, got:\n%s", out)
	}
	if !strings.Contains(out, "0x0005") {
		t.Fatalf("expected immediate 0x0005 rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "HALT") {
		t.Fatalf("expected HALT rendered, got:\n%s", out)
	}
}

func TestDisassembleFollowsDirectJumpTarget(t *testing.T) {
	var words []uint16
	// word 0-1: JMP 3 (direct)
	words = append(words, encode(t, isa.Instruction{Op: isa.JMP, Mode: isa.ModeMemDirect, Imm: 3})...)
	// word 2: unreachable data-looking word (never executed)
	words = append(words, 0xFFFF)
	// word 3: HALT, the jump target
	words = append(words, encode(t, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})...)

	out, err := disassembler.Disassemble(isa.WordsToBytes(words))
	if err != nil {
		t.Fatalf("disassemble failed: %v", err)
	}
	if !strings.Contains(out, "loc_0003") {
		t.Fatalf("expected a label at the jump target, got:\n%s", out)
	}
}
