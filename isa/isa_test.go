package isa_test

import (
	"testing"

	"github.com/Urethramancer/rm16/isa"
)

// Round-trip property from spec §8: for every opcode and every (op, mode)
// listed in the table, decode(encode(instr)) == instr for all live fields
// within their valid ranges, and unused-field bits are zero.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	for k, f := range isa.Table {
		ins := isa.Instruction{Op: k.Op, Mode: k.Mode}
		if f.RA {
			ins.RA = 0x7
		}
		if f.RB {
			ins.RB = 0x9 & 0xF
		}
		if f.Imm {
			ins.Imm = 0xBEEF
		}

		words, err := isa.Encode(ins)
		if err != nil {
			t.Fatalf("%v: encode failed: %v", k, err)
		}
		wantLen := 1
		if f.Imm {
			wantLen = 2
		}
		if len(words) != wantLen {
			t.Fatalf("%v: expected %d words, got %d", k, wantLen, len(words))
		}

		decoded, needsWord1, err := isa.Decode(words[0])
		if err != nil {
			t.Fatalf("%v: decode failed: %v", k, err)
		}
		if needsWord1 != f.Imm {
			t.Fatalf("%v: needsWord1 mismatch", k)
		}
		if needsWord1 {
			decoded = isa.FinishDecode(decoded, words[1])
		}

		if decoded.Op != ins.Op || decoded.Mode != ins.Mode {
			t.Fatalf("%v: op/mode mismatch: got %+v", k, decoded)
		}
		if f.RA && decoded.RA != ins.RA {
			t.Fatalf("%v: RA mismatch: want %d got %d", k, ins.RA, decoded.RA)
		}
		if !f.RA && decoded.RA != 0 {
			t.Fatalf("%v: unused RA not zero: got %d", k, decoded.RA)
		}
		if f.RB && decoded.RB != ins.RB {
			t.Fatalf("%v: RB mismatch: want %d got %d", k, ins.RB, decoded.RB)
		}
		if !f.RB && decoded.RB != 0 {
			t.Fatalf("%v: unused RB not zero: got %d", k, decoded.RB)
		}
		if f.Imm && decoded.Imm != ins.Imm {
			t.Fatalf("%v: Imm mismatch: want %#x got %#x", k, ins.Imm, decoded.Imm)
		}
	}
}

func TestDecodeRejectsUnlistedCombination(t *testing.T) {
	// HALT only admits ModeNull (0b00); fabricate HALT with mode 0b10.
	opByte := uint8(isa.HALT)<<2 | 0b10
	word0 := uint16(opByte) << 8
	if _, _, err := isa.Decode(word0); err == nil {
		t.Fatal("expected decode error for unlisted (opcode, mode) pair")
	}
}

func TestWordByteRoundTrip(t *testing.T) {
	words := []uint16{0x1234, 0xBEEF, 0x0001}
	b := isa.WordsToBytes(words)
	if len(b) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(b))
	}
	// little-endian: low byte first
	if b[0] != 0x34 || b[1] != 0x12 {
		t.Fatalf("expected little-endian layout, got % X", b)
	}
	back := isa.BytesToWords(b)
	for i := range words {
		if back[i] != words[i] {
			t.Fatalf("round-trip mismatch at %d: want %#x got %#x", i, words[i], back[i])
		}
	}
}

func TestOddByteCountIsZeroPadded(t *testing.T) {
	back := isa.BytesToWords([]byte{0x48})
	if len(back) != 1 || back[0] != 0x0048 {
		t.Fatalf("expected padded word 0x0048, got %v", back)
	}
}
