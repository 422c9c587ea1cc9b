package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/rm16/isa"
)

// splitOperandList splits a comma-separated operand string, expanding the
// packed register-pair form "RA:RB" (spec §3.3) into two operand strings.
func splitOperandList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range splitTopLevelCommas(s) {
		part = strings.TrimSpace(part)
		if lo, hi, ok := splitRegisterPair(part); ok {
			out = append(out, lo, hi)
			continue
		}
		out = append(out, part)
	}
	return out
}

func splitTopLevelCommas(s string) []string {
	var result []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, s[last:i])
				last = i + 1
			}
		}
	}
	result = append(result, s[last:])
	return result
}

// splitRegisterPair recognises "RA:RB" where both sides are register names.
func splitRegisterPair(s string) (string, string, bool) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return "", "", false
	}
	lo := strings.TrimSpace(s[:idx])
	hi := strings.TrimSpace(s[idx+1:])
	if _, ok := isa.NameToRegister[strings.ToUpper(lo)]; !ok {
		return "", "", false
	}
	if _, ok := isa.NameToRegister[strings.ToUpper(hi)]; !ok {
		return "", "", false
	}
	return lo, hi, true
}

// stripBrackets removes one layer of memory-addressing bracket decoration,
// e.g. "[x]" -> "x". Brackets are purely syntactic: addressing mode is
// derived from the operand's resolved kind (spec §4.6), not from bracket
// presence.
func stripBrackets(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// parseOperandStr parses one operand string into an Operand. params is the
// in-scope macro formal-parameter list, or nil outside a macro body.
func parseOperandStr(raw string, line int, params []string) (Operand, error) {
	s := stripBrackets(raw)

	if strings.HasPrefix(s, "%") {
		name := s[1:]
		for i, p := range params {
			if strings.EqualFold(p, name) {
				return Operand{Kind: OperandMacroArg, ArgIndex: i, Line: line}, nil
			}
		}
		return Operand{}, fmt.Errorf("line %d: unknown macro parameter %q", line, s)
	}

	if reg, ok := isa.NameToRegister[strings.ToUpper(s)]; ok {
		return Operand{Kind: OperandRegister, Register: reg, Line: line}, nil
	}

	if n, ok, err := parseNumberLiteral(s); ok {
		if err != nil {
			return Operand{}, fmt.Errorf("line %d: bad numeric literal %q: %w", line, s, err)
		}
		return Operand{Kind: OperandNumber, Number: n, Line: line}, nil
	}

	if n, err := evalConstExpr(s, nil); err == nil {
		return Operand{Kind: OperandNumber, Number: n, Line: line}, nil
	}

	if isIdentifier(s) {
		return Operand{Kind: OperandLabel, Label: strings.ToLower(s), Line: line}, nil
	}

	return Operand{}, fmt.Errorf("line %d: %w: %q", line, errBadOperand, raw)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
