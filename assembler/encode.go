package assembler

import (
	"fmt"

	"github.com/Urethramancer/rm16/isa"
)

// encodeInstruction resolves operands (including label addresses) and
// assembles one Instruction node into its word(s), per the field layout
// admitted by isa.Table for its (opcode, mode) pair.
func (asm *Assembler) encodeInstruction(n *Node) ([]uint16, error) {
	op, ok := isa.MnemonicToOpcode[n.Mnemonic]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownMnem, n.Mnemonic)
	}
	mode, err := addressingMode(op, n.Operands)
	if err != nil {
		return nil, err
	}
	if _, err := isa.Lookup(op, mode); err != nil {
		return nil, err
	}

	ins := isa.Instruction{Op: op, Mode: mode}

	switch {
	case op == isa.HALT || op == isa.RET || op == isa.IRET || op == isa.NOP:
		// no operands

	case op == isa.GET:
		// GET RA, [RB]: RA is the destination, RB carries the address.
		// GET RA, [imm16]: RA is the destination, Imm carries the address.
		if len(n.Operands) != 2 {
			return nil, fmt.Errorf("%w: GET requires 2 operands", errOperandArity)
		}
		ins.RA = n.Operands[0].Register
		if err := asm.fillAddressField(&ins, n.Operands[1], mode, true); err != nil {
			return nil, err
		}

	case op == isa.PUT:
		// PUT [RA], RB: RA carries the address, RB is the value.
		// PUT [imm16], RB: Imm carries the address, RB is the value.
		if len(n.Operands) != 2 {
			return nil, fmt.Errorf("%w: PUT requires 2 operands", errOperandArity)
		}
		if err := asm.fillAddressField(&ins, n.Operands[0], mode, false); err != nil {
			return nil, err
		}
		ins.RB = n.Operands[1].Register

	case isa.IsJump(op):
		if len(n.Operands) != 1 {
			return nil, fmt.Errorf("%w: %s requires 1 operand", errOperandArity, n.Mnemonic)
		}
		if err := asm.fillAddressField(&ins, n.Operands[0], mode, false); err != nil {
			return nil, err
		}

	case op == isa.INT:
		if len(n.Operands) != 1 {
			return nil, fmt.Errorf("%w: INT requires 1 operand", errOperandArity)
		}
		imm, err := asm.resolveImmediate(n.Operands[0])
		if err != nil {
			return nil, err
		}
		ins.Imm = imm

	case op == isa.PUSH:
		if len(n.Operands) != 1 {
			return nil, fmt.Errorf("%w: PUSH requires 1 operand", errOperandArity)
		}
		o := n.Operands[0]
		if o.Kind == OperandRegister {
			ins.RA = o.Register
		} else {
			imm, err := asm.resolveImmediate(o)
			if err != nil {
				return nil, err
			}
			ins.Imm = imm
		}

	case op == isa.POP || op == isa.INC || op == isa.DEC || op == isa.NOT:
		if len(n.Operands) != 1 {
			return nil, fmt.Errorf("%w: %s requires 1 operand", errOperandArity, n.Mnemonic)
		}
		ins.RA = n.Operands[0].Register

	case op == isa.OUTB:
		if len(n.Operands) != 2 {
			return nil, fmt.Errorf("%w: OUTB requires 2 operands", errOperandArity)
		}
		port, val := n.Operands[0], n.Operands[1]
		if port.Kind == OperandRegister {
			ins.RA = port.Register
		} else {
			imm, err := asm.resolveImmediate(port)
			if err != nil {
				return nil, err
			}
			ins.Imm = imm
		}
		ins.RB = val.Register

	default:
		// MOV, ADD, ADC, SUB, SBC, LSH, RSH, AND, OR, NOR, XOR, CMP, INB:
		// dst register first, then a register or immediate source/port.
		if len(n.Operands) != 2 {
			return nil, fmt.Errorf("%w: %s requires 2 operands", errOperandArity, n.Mnemonic)
		}
		dst, src := n.Operands[0], n.Operands[1]
		if dst.Kind != OperandRegister {
			return nil, fmt.Errorf("line %d: %s destination must be a register", n.Line, n.Mnemonic)
		}
		ins.RA = dst.Register
		if src.Kind == OperandRegister {
			ins.RB = src.Register
		} else {
			imm, err := asm.resolveImmediate(src)
			if err != nil {
				return nil, err
			}
			ins.Imm = imm
		}
	}

	return isa.Encode(ins)
}

// fillAddressField resolves the memory-addressing operand shared by
// GET/PUT/jump-family instructions into Imm (direct address / jump target)
// or a register field (register-indirect) — RB for GET, since GET's RA is
// already its destination; RA for everything else (spec §4.6).
func (asm *Assembler) fillAddressField(ins *isa.Instruction, o Operand, mode isa.Mode, intoRB bool) error {
	if mode == isa.ModeMemIndirect {
		if o.Kind != OperandRegister {
			return fmt.Errorf("expected a register operand for indirect addressing")
		}
		if intoRB {
			ins.RB = o.Register
		} else {
			ins.RA = o.Register
		}
		return nil
	}
	imm, err := asm.resolveImmediate(o)
	if err != nil {
		return err
	}
	ins.Imm = imm
	return nil
}

func (asm *Assembler) resolveImmediate(o Operand) (uint16, error) {
	switch o.Kind {
	case OperandNumber:
		if o.Number > 0xFFFF || o.Number < -0x8000 {
			return 0, fmt.Errorf("line %d: %w: %d", o.Line, errImmOutOfRange, o.Number)
		}
		return uint16(o.Number), nil
	case OperandLabel:
		addr, ok := asm.labels[o.Label]
		if !ok {
			return 0, fmt.Errorf("line %d: %w: %q", o.Line, errUnknownLabel, o.Label)
		}
		return uint16(addr), nil
	default:
		return 0, fmt.Errorf("line %d: expected a numeric or label operand", o.Line)
	}
}

// encodeData assembles a Data node: one word per NUMBER, one word per
// STRING character (low byte, high byte zero) — spec §4.7.
func encodeData(n *Node) []uint16 {
	out := make([]uint16, 0, n.Size)
	for _, item := range n.Items {
		if item.IsString {
			for _, c := range item.Str {
				out = append(out, uint16(c)&0xFF)
			}
			continue
		}
		out = append(out, uint16(item.Number))
	}
	return out
}
