package isa

import "fmt"

// Instruction is the decoded shape of one instruction word (plus optional
// trailing immediate), used by the assembler's encoder, the emulator's
// decoder and the disassembler alike.
type Instruction struct {
	Op   Opcode
	Mode Mode
	RA   uint8
	RB   uint8
	Imm  uint16
}

// Encode packs an Instruction into its word0 (and, if the admitted fields
// require it, word1) form. Unused fields are always encoded as zero (spec
// §4.5: "Unused fields MUST be encoded as zero").
func Encode(ins Instruction) ([]uint16, error) {
	f, err := Lookup(ins.Op, ins.Mode)
	if err != nil {
		return nil, err
	}

	var regByte, opByte uint8
	if f.RA {
		regByte |= (ins.RA & 0xF) << 4
	}
	if f.RB {
		regByte |= ins.RB & 0xF
	}
	opByte = (uint8(ins.Op)<<2 | uint8(ins.Mode)) & 0xFF

	word0 := uint16(opByte)<<8 | uint16(regByte)
	if !f.Imm {
		return []uint16{word0}, nil
	}
	return []uint16{word0, ins.Imm}, nil
}

// Decode unpacks word0 (and, if the table demands it, a caller-supplied
// word1) into an Instruction. needsWord1 reports whether the caller must
// supply a second word.
func Decode(word0 uint16) (ins Instruction, needsWord1 bool, err error) {
	regByte := uint8(word0 & 0xFF)
	opByte := uint8(word0 >> 8)

	op := Opcode(opByte >> 2)
	mode := Mode(opByte & 0x3)

	f, lerr := Lookup(op, mode)
	if lerr != nil {
		return Instruction{}, false, lerr
	}

	ins.Op = op
	ins.Mode = mode
	ins.RA = regByte >> 4 & 0xF
	ins.RB = regByte & 0xF
	return ins, f.Imm, nil
}

// FinishDecode attaches a fetched word1 (the 16-bit immediate) to a partial
// decode produced by Decode when needsWord1 was true.
func FinishDecode(ins Instruction, word1 uint16) Instruction {
	ins.Imm = word1
	return ins
}

// WordsToBytes serialises a slice of 16-bit words to little-endian bytes —
// "Word — 16 bits, stored little-endian on disk" (spec GLOSSARY).
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[i*2] = byte(w)
		out[i*2+1] = byte(w >> 8)
	}
	return out
}

// BytesToWords interprets a byte slice as little-endian 16-bit words. An odd
// trailing byte is padded with zero, matching the file-format note in spec
// §6 ("File size SHOULD be a multiple of 2 bytes").
func BytesToWords(b []byte) []uint16 {
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = uint16(b[i*2]) | uint16(b[i*2+1])<<8
	}
	return out
}

// FormatImmediate renders a 16-bit value as a hex literal for disassembly.
func FormatImmediate(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}
