package vm

import (
	"fmt"

	"github.com/Urethramancer/rm16/isa"
)

// handler executes one decoded instruction against the CPU.
type handler func(*CPU, isa.Instruction) error

// handlers is the static opcode -> executor dispatch table, mirroring the
// shape of isa.Table itself: every opcode the table admits must have an
// entry here or fetch/execute fails loudly instead of silently no-opping.
var handlers = map[isa.Opcode]handler{
	isa.HALT: opHALT,
	isa.GET:  opGET,
	isa.PUT:  opPUT,
	isa.MOV:  opMOV,
	isa.PUSH: opPUSH,
	isa.POP:  opPOP,
	isa.ADD:  opADD,
	isa.ADC:  opADC,
	isa.SUB:  opSUB,
	isa.SBC:  opSBC,
	isa.INC:  opINC,
	isa.DEC:  opDEC,
	isa.LSH:  opLSH,
	isa.RSH:  opRSH,
	isa.AND:  opAND,
	isa.OR:   opOR,
	isa.NOR:  opNOR,
	isa.NOT:  opNOT,
	isa.XOR:  opXOR,
	isa.INB:  opINB,
	isa.OUTB: opOUTB,
	isa.CMP:  opCMP,
	isa.JMP:  opJMP,
	isa.JZ:   opJZ,
	isa.JNZ:  opJNZ,
	isa.JC:   opJC,
	isa.JNC:  opJNC,
	isa.CALL: opCALL,
	isa.RET:  opRET,
	isa.INT:  opINT,
	isa.IRET: opIRET,
	isa.NOP:  opNOP,
}

// fetchDecode reads one instruction (and its trailing immediate, if the
// table demands one) starting at PC, advancing PC past it.
func (c *CPU) fetchDecode() (isa.Instruction, error) {
	pc := c.Reg[isa.RegPC]
	word0 := c.ReadWord(uint32(pc))
	ins, needsWord1, err := isa.Decode(word0)
	if err != nil {
		return isa.Instruction{}, fmt.Errorf("at %#05x: %w", pc, err)
	}
	c.Reg[isa.RegPC]++
	if needsWord1 {
		word1 := c.ReadWord(uint32(c.Reg[isa.RegPC]))
		ins = isa.FinishDecode(ins, word1)
		c.Reg[isa.RegPC]++
	}
	return ins, nil
}
