package assembler

import (
	"fmt"

	"github.com/Urethramancer/rm16/isa"
)

// resolveLabels implements spec §4.4: a single forward pass assigning a
// word address to every label and a word-size to every emittable node. A
// single pass suffices because an Instruction's size depends only on its
// addressing mode, which is derived from operand *kind*, never from a
// label's resolved value (spec §9).
func (asm *Assembler) resolveLabels(nodes []*Node) error {
	var pc uint32
	for _, n := range nodes {
		switch n.Kind {
		case NodeLabel:
			if _, dup := asm.labels[n.Label]; dup {
				return fmt.Errorf("line %d: %w: %q", n.Line, errDupLabel, n.Label)
			}
			asm.labels[n.Label] = pc

		case NodeInstruction:
			size, err := instructionSize(n)
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			n.Size = size
			n.PC = pc
			pc += size

		case NodeData:
			n.Size = dataSize(n)
			n.PC = pc
			pc += n.Size

		case NodeImport, NodeMacroDef, NodeMacroCall:
			return fmt.Errorf("line %d: internal error: unresolved %v node reached label resolution", n.Line, n.Kind)
		}
	}
	return nil
}

func instructionSize(n *Node) (uint32, error) {
	op, ok := isa.MnemonicToOpcode[n.Mnemonic]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errUnknownMnem, n.Mnemonic)
	}
	mode, err := addressingMode(op, n.Operands)
	if err != nil {
		return 0, err
	}
	f, err := isa.Lookup(op, mode)
	if err != nil {
		return 0, fmt.Errorf("instruction %q: %w", n.Mnemonic, err)
	}
	return f.Size(), nil
}

func dataSize(n *Node) uint32 {
	var size uint32
	for _, item := range n.Items {
		if item.IsString {
			for range item.Str {
				size++
			}
		} else {
			size++
		}
	}
	return size
}
