package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Urethramancer/rm16/isa"
)

// parseProgram implements spec §4.1's grammar over a single file's lines,
// producing the linear node list of spec §3.2 (import/macro nodes included,
// to be flattened/captured by later stages).
func parseProgram(lines []string) ([]*Node, error) {
	var nodes []*Node

	var inMacro bool
	var macroDef *Node

	for i, raw := range lines {
		line := i + 1
		text := stripComment(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if inMacro {
			if strings.EqualFold(text, "END MACRO") || strings.EqualFold(text, "END") {
				nodes = append(nodes, macroDef)
				inMacro = false
				macroDef = nil
				continue
			}
			n, err := parseStatement(text, line, macroDef.MacroParams)
			if err != nil {
				return nil, err
			}
			if n == nil {
				continue
			}
			switch n.Kind {
			case NodeInstruction, NodeData:
				macroDef.MacroBody = append(macroDef.MacroBody, n)
			default:
				return nil, fmt.Errorf("line %d: %w", line, errMacroBody)
			}
			continue
		}

		// Label prefix, e.g. "loop: dec a" or a standalone "loop:".
		if idx := strings.IndexByte(text, ':'); idx >= 0 && !looksLikeRegisterPair(text, idx) {
			label := strings.TrimSpace(text[:idx])
			if label != "" && isIdentifier(label) {
				nodes = append(nodes, &Node{Kind: NodeLabel, Label: strings.ToLower(label), Line: line})
				text = strings.TrimSpace(text[idx+1:])
				if text == "" {
					continue
				}
			}
		}

		if def, rest, ok := tryParseMacroHeader(text); ok {
			macroDef = def
			inMacro = true
			if rest != "" {
				// Allow an (unusual) single-line empty macro header check.
				_ = rest
			}
			continue
		}

		n, err := parseStatement(text, line, nil)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}

	if inMacro {
		return nil, fmt.Errorf("unterminated MACRO %q", macroDef.MacroName)
	}

	return nodes, nil
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// looksLikeRegisterPair guards against treating "A:B" operand syntax as a
// label prefix when a bare register-pair instruction starts a line (it
// never legitimately does, since every statement starts with a keyword, but
// this keeps label detection honest for register names before ':').
func looksLikeRegisterPair(text string, colonIdx int) bool {
	before := strings.TrimSpace(text[:colonIdx])
	_, ok := isa.NameToRegister[strings.ToUpper(before)]
	return ok
}

// tryParseMacroHeader recognises "MACRO name [%a, %b]".
func tryParseMacroHeader(text string) (*Node, string, bool) {
	fields := splitFields(text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "MACRO") {
		return nil, "", false
	}
	if len(fields) < 2 {
		return nil, "", false
	}
	name := strings.ToLower(fields[1])
	var params []string
	if len(fields) > 2 {
		rest := strings.Join(fields[2:], " ")
		for _, p := range splitTopLevelCommas(rest) {
			p = strings.TrimSpace(p)
			p = strings.TrimPrefix(p, "%")
			if p != "" {
				params = append(params, p)
			}
		}
	}
	return &Node{Kind: NodeMacroDef, MacroName: name, MacroParams: params}, "", true
}

func splitFields(s string) []string {
	return strings.Fields(s)
}

// parseStatement parses one non-label, non-macro-header statement line:
// an instruction, a DATA/IMPORT directive, or a macro call.
func parseStatement(text string, line int, params []string) (*Node, error) {
	mnemonic, operandStr := splitFirstField(text)
	upper := strings.ToUpper(mnemonic)

	switch upper {
	case "DATA":
		return parseDataDirective(operandStr, line)
	case "IMPORT":
		return parseImportDirective(operandStr, line)
	}

	if _, ok := isa.MnemonicToOpcode[upper]; ok {
		operands, err := parseOperandStrings(splitOperandList(operandStr), line, params)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeInstruction, Mnemonic: upper, Operands: operands, Line: line}, nil
	}

	// Not a known mnemonic or directive: a macro call (resolved against the
	// registry later, during IR building/expansion).
	args, err := parseOperandStrings(splitOperandList(operandStr), line, params)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NodeMacroCall, CallName: strings.ToLower(mnemonic), CallArgs: args, Line: line}, nil
}

func splitFirstField(s string) (first, rest string) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

func parseOperandStrings(raws []string, line int, params []string) ([]Operand, error) {
	var out []Operand
	for _, r := range raws {
		op, err := parseOperandStr(r, line, params)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}

func parseDataDirective(operandStr string, line int) (*Node, error) {
	items := splitTopLevelCommas(operandStr)
	n := &Node{Kind: NodeData, Line: line}
	for _, raw := range items {
		item, err := parseDataItem(strings.TrimSpace(raw), line)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, item)
	}
	if len(n.Items) == 0 {
		return nil, fmt.Errorf("line %d: DATA directive with no items", line)
	}
	return n, nil
}

func parseDataItem(s string, line int) (DataItem, error) {
	if strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") && len(s) >= 2 {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return DataItem{}, fmt.Errorf("line %d: bad string literal %q: %w", line, s, err)
		}
		return DataItem{IsString: true, Str: unq}, nil
	}
	n, ok, err := parseNumberLiteral(s)
	if !ok {
		return DataItem{}, fmt.Errorf("line %d: bad DATA item %q", line, s)
	}
	if err != nil {
		return DataItem{}, fmt.Errorf("line %d: %w", line, err)
	}
	if n < 0 || n > 0xFFFF {
		return DataItem{}, fmt.Errorf("line %d: %w: %d", line, errImmOutOfRange, n)
	}
	return DataItem{Number: n}, nil
}

func parseImportDirective(operandStr string, line int) (*Node, error) {
	s := strings.TrimSpace(operandStr)
	unq, err := strconv.Unquote(s)
	if err != nil {
		return nil, fmt.Errorf("line %d: IMPORT expects a quoted path, got %q", line, s)
	}
	return &Node{Kind: NodeImport, Filename: unq, Line: line}, nil
}
