// Package isa defines the wire-format encoding shared by the assembler and
// the emulator: opcodes, addressing modes, register indices and the static
// (opcode, mode) -> field table that both sides drive off.
package isa

// Mode is the 2-bit addressing-mode qualifier on an opcode.
type Mode uint8

const (
	// ModeNull and ModeReg share the bit pattern 00; which interpretation
	// applies is decided per-opcode, never by the mode bits alone.
	ModeNull Mode = 0
	ModeReg  Mode = 0
	// ModeImm carries RA and/or a trailing 16-bit immediate.
	ModeImm Mode = 1
	// ModeMemDirect addresses memory via a trailing 16-bit address word.
	ModeMemDirect Mode = 2
	// ModeMemIndirect addresses memory via the value held in a register:
	// RA, except for GET, whose RA is the destination and whose address
	// register is RB.
	ModeMemIndirect Mode = 3
)

// Opcode is the 6-bit instruction selector.
type Opcode uint8

const (
	HALT Opcode = iota
	GET
	PUT
	MOV
	PUSH
	POP
	ADD
	ADC
	SUB
	SBC
	INC
	DEC
	LSH
	RSH
	AND
	OR
	NOR
	NOT
	XOR
	INB
	OUTB
	CMP
	JMP
	JZ
	JNZ
	JC
	JNC
	CALL
	RET
	INT
	IRET
	NOP
)

// Mnemonics maps an Opcode to its canonical source-level name.
var Mnemonics = map[Opcode]string{
	HALT: "HALT", GET: "GET", PUT: "PUT", MOV: "MOV", PUSH: "PUSH", POP: "POP",
	ADD: "ADD", ADC: "ADC", SUB: "SUB", SBC: "SBC", INC: "INC", DEC: "DEC",
	LSH: "LSH", RSH: "RSH", AND: "AND", OR: "OR", NOR: "NOR", NOT: "NOT", XOR: "XOR",
	INB: "INB", OUTB: "OUTB", CMP: "CMP",
	JMP: "JMP", JZ: "JZ", JNZ: "JNZ", JC: "JC", JNC: "JNC",
	CALL: "CALL", RET: "RET", INT: "INT", IRET: "IRET", NOP: "NOP",
}

// MnemonicToOpcode is the reverse of Mnemonics, keyed by upper-case name.
var MnemonicToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(Mnemonics))
	for op, name := range Mnemonics {
		m[name] = op
	}
	return m
}()

// Register indices. The canonical general-purpose set (spec §9) plus the
// special registers, all addressable through the 4-bit RA/RB fields.
const (
	RegA uint8 = iota
	RegB
	RegC
	RegD
	RegE
	RegX
	RegY
	RegPC
	RegSP
	RegF
	RegMB
	RegZ
)

// RegisterNames maps a 4-bit register index to its assembly mnemonic.
var RegisterNames = map[uint8]string{
	RegA: "A", RegB: "B", RegC: "C", RegD: "D", RegE: "E", RegX: "X", RegY: "Y",
	RegPC: "PC", RegSP: "SP", RegF: "F", RegMB: "MB", RegZ: "Z",
}

// NameToRegister is the reverse of RegisterNames, keyed by upper-case name.
var NameToRegister = func() map[string]uint8 {
	m := make(map[string]uint8, len(RegisterNames))
	for idx, name := range RegisterNames {
		m[name] = idx
	}
	return m
}()

// Flag bits of the F register, least significant first.
const (
	FlagC uint16 = 1 << iota // carry
	FlagZ                    // zero
	FlagN                    // negative
	FlagO                    // overflow
	FlagI                    // interrupts enabled
)

// InitialSP is the stack pointer's reset value.
const InitialSP = 0xFEFF

// MemWords is the total addressable word count (128 KiW).
const MemWords = 0x20000

// BankWords is the size of a single bank.
const BankWords = 0x4000

// BankCount is the number of auxiliary banks (bank indices 1..31).
const BankCount = 31

// BankWindowStart and BankWindowEnd bound the bank-switched address window.
const (
	BankWindowStart = 0x8000
	BankWindowEnd   = 0xC000
)

// RAMStart is the first writable word address; below it is treated as ROM.
const RAMStart = 0x8000

// VectorBase is used to compute an interrupt vector word address:
// mem[0xFFFF - h].
const VectorBase = 0xFFFF
