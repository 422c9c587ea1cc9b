// Package disassembler renders an assembled image back to text, driven
// entirely by the isa package's shared (opcode, mode) table — the same
// table the assembler encodes against and the emulator decodes against.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/rm16/isa"
)

// Instruction is one decoded instruction at a specific word address.
type Instruction struct {
	Addr     uint32
	Words    []uint16
	Mnemonic string
	Operands string
	Size     uint32
	IsCode   bool
}

// Disassemble performs a two-pass disassembly of a binary image: a linear
// sweep decodes every word address as a candidate instruction, then a
// control-flow walk from address 0 marks which candidates are actually
// reachable code so data embedded between routines isn't misrendered as
// instructions.
func Disassemble(code []byte) (string, error) {
	words := isa.BytesToWords(code)
	if len(words) == 0 {
		return "", nil
	}

	candidates := linearSweep(words)
	markReachable(candidates, words)

	var out strings.Builder
	pc := uint32(0)
	total := uint32(len(words))
	for pc < total {
		inst, ok := candidates[pc]
		if !ok || !inst.IsCode {
			dataEnd := pc
			for dataEnd < total {
				if next, ok := candidates[dataEnd]; ok && next.IsCode {
					break
				}
				dataEnd++
			}
			out.WriteString(formatData(words[pc:dataEnd], pc))
			pc = dataEnd
			continue
		}

		fmt.Fprintf(&out, "loc_%04X:\n", inst.Addr)
		for pc < total {
			inst, ok = candidates[pc]
			if !ok || !inst.IsCode {
				break
			}
			if inst.Operands != "" {
				fmt.Fprintf(&out, "    %-6s %s\n", inst.Mnemonic, inst.Operands)
			} else {
				fmt.Fprintf(&out, "    %s\n", inst.Mnemonic)
			}
			pc += inst.Size
		}
	}

	return out.String(), nil
}

// linearSweep decodes every word address, regardless of reachability; a
// candidate whose opcode/mode pair isn't admitted by the table is treated as
// a single data word rather than a hard error, since linear sweep routinely
// walks into embedded data.
func linearSweep(words []uint16) map[uint32]*Instruction {
	out := make(map[uint32]*Instruction)
	for pc := uint32(0); pc < uint32(len(words)); pc++ {
		ins, needsWord1, err := isa.Decode(words[pc])
		if err != nil {
			continue
		}
		size := uint32(1)
		if needsWord1 {
			if pc+1 >= uint32(len(words)) {
				continue
			}
			ins = isa.FinishDecode(ins, words[pc+1])
			size = 2
		}
		out[pc] = &Instruction{
			Addr:     pc,
			Words:    words[pc : pc+size],
			Mnemonic: isa.Mnemonics[ins.Op],
			Operands: formatOperands(ins),
			Size:     size,
		}
	}
	return out
}

// markReachable walks the candidate graph from address 0, following
// fall-through and jump/call targets, marking every instruction actually on
// a control-flow path as code. Anything left unmarked renders as data.
func markReachable(candidates map[uint32]*Instruction, words []uint16) {
	var stack []uint32
	push := func(a uint32) {
		if a < uint32(len(words)) {
			stack = append(stack, a)
		}
	}
	push(0)

	for len(stack) > 0 {
		addr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		inst, ok := candidates[addr]
		if !ok || inst.IsCode {
			continue
		}
		inst.IsCode = true

		ins, _, err := isa.Decode(words[addr])
		if err != nil {
			continue
		}
		if inst.Size == 2 {
			ins = isa.FinishDecode(ins, words[addr+1])
		}

		if !isTerminal(ins.Op) {
			push(addr + inst.Size)
		}
		if isa.IsJump(ins.Op) && ins.Mode == isa.ModeMemDirect {
			push(uint32(ins.Imm))
		}
	}
}

func isTerminal(op isa.Opcode) bool {
	switch op {
	case isa.HALT, isa.RET, isa.IRET, isa.JMP:
		return true
	}
	return false
}

// formatOperands renders an instruction's live fields per spec §4.10:
// "MNEMONIC [RA] [RB] [IMM16]", each field present only when the table
// marks it live for this (opcode, mode) pair.
func formatOperands(ins isa.Instruction) string {
	f, err := isa.Lookup(ins.Op, ins.Mode)
	if err != nil {
		return ""
	}
	var parts []string
	if f.RA {
		parts = append(parts, isa.RegisterNames[ins.RA])
	}
	if f.RB {
		parts = append(parts, isa.RegisterNames[ins.RB])
	}
	if f.Imm {
		parts = append(parts, isa.FormatImmediate(ins.Imm))
	}
	return strings.Join(parts, ", ")
}

func formatData(words []uint16, base uint32) string {
	var out strings.Builder
	const perLine = 8
	for i := 0; i < len(words); i += perLine {
		end := i + perLine
		if end > len(words) {
			end = len(words)
		}
		fmt.Fprintf(&out, "    DATA %04X:", base+uint32(i))
		for _, w := range words[i:end] {
			fmt.Fprintf(&out, " %04X", w)
		}
		out.WriteByte('\n')
	}
	return out.String()
}
