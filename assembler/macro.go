package assembler

import "fmt"

// captureMacros implements spec §4.2's macro capture: MacroDef nodes are
// removed from the node stream and stored in a registry keyed by name. A
// redefinition keeps the first definition and is reported as a warning.
func captureMacros(nodes []*Node, warn func(string)) ([]*Node, map[string]*Node) {
	registry := make(map[string]*Node)
	var out []*Node
	for _, n := range nodes {
		if n.Kind != NodeMacroDef {
			out = append(out, n)
			continue
		}
		if _, dup := registry[n.MacroName]; dup {
			warn(fmt.Sprintf("macro %q redefined; keeping first definition", n.MacroName))
			continue
		}
		registry[n.MacroName] = n
	}
	return out, registry
}

// expandMacros implements spec §4.3: iterate in reverse so splicing does not
// invalidate not-yet-visited indices, and replace each MacroCall in place
// with a clone of its macro's body with MACRO_ARG operands substituted by
// the call's actual operands.
func expandMacros(nodes []*Node, registry map[string]*Node) ([]*Node, error) {
	out := make([]*Node, len(nodes))
	copy(out, nodes)

	for i := len(out) - 1; i >= 0; i-- {
		n := out[i]
		if n.Kind != NodeMacroCall {
			continue
		}

		def, ok := registry[n.CallName]
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %q", n.Line, errUnknownMacro, n.CallName)
		}
		if len(n.CallArgs) != len(def.MacroParams) {
			return nil, fmt.Errorf("line %d: %w: %q expects %d argument(s), got %d",
				n.Line, errMacroArity, n.CallName, len(def.MacroParams), len(n.CallArgs))
		}

		body, err := cloneBodyWithArgs(def.MacroBody, n.CallArgs, n.Line)
		if err != nil {
			return nil, err
		}

		out = append(out[:i], append(body, out[i+1:]...)...)
	}

	return out, nil
}

func cloneBodyWithArgs(body []*Node, args []Operand, line int) ([]*Node, error) {
	cloned := make([]*Node, len(body))
	for i, n := range body {
		switch n.Kind {
		case NodeInstruction:
			ops := make([]Operand, len(n.Operands))
			for j, o := range n.Operands {
				sub, err := substituteArg(o, args)
				if err != nil {
					return nil, err
				}
				ops[j] = sub
			}
			cloned[i] = &Node{Kind: NodeInstruction, Mnemonic: n.Mnemonic, Operands: ops, Line: line}
		case NodeData:
			items := make([]DataItem, len(n.Items))
			copy(items, n.Items)
			cloned[i] = &Node{Kind: NodeData, Items: items, Line: line}
		default:
			return nil, fmt.Errorf("line %d: %w", n.Line, errMacroBody)
		}
	}
	return cloned, nil
}

func substituteArg(o Operand, args []Operand) (Operand, error) {
	if o.Kind != OperandMacroArg {
		return o, nil
	}
	if o.ArgIndex < 0 || o.ArgIndex >= len(args) {
		return Operand{}, fmt.Errorf("macro argument index %d out of range", o.ArgIndex)
	}
	return args[o.ArgIndex], nil
}
