package assembler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Urethramancer/rm16/isa"
)

// Verbosity controls how much the Assembler reports while it works,
// matching the -v 0..3 levels of the asm command line (spec §6).
type Verbosity int

const (
	// Silent reports only fatal errors.
	Silent Verbosity = iota
	// Warnings additionally reports recoverable problems (duplicate
	// imports, redefined macros) that don't stop assembly.
	Warnings
	// Progress additionally reports which pipeline stage is running.
	Progress
	// Verbose additionally reports per-node encoding detail.
	Verbose
)

// Assembler holds the state of one assembly run: the label table built
// during resolution and the warnings collected along the way.
type Assembler struct {
	labels   map[string]uint32
	warnings []string
	verbose  Verbosity
}

// New creates an Assembler at the given verbosity level.
func New(v Verbosity) *Assembler {
	return &Assembler{
		labels:  make(map[string]uint32),
		verbose: v,
	}
}

// Warnings returns every warning collected so far by this Assembler, across
// all of its Assemble and AssembleFile calls.
func (asm *Assembler) Warnings() []string {
	return asm.warnings
}

func (asm *Assembler) warn(msg string) {
	asm.warnings = append(asm.warnings, msg)
	if asm.verbose >= Warnings {
		fmt.Printf("warning: %s\n", msg)
	}
}

func (asm *Assembler) progress(msg string) {
	if asm.verbose >= Progress {
		fmt.Println(msg)
	}
}

// AssembleFile runs the full pipeline (spec §4) against a source file on
// disk: parse, flatten imports relative to the file's own directory,
// capture and expand macros, resolve labels, and encode to a binary image.
func (asm *Assembler) AssembleFile(path string) ([]byte, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	asm.progress("parsing " + path)
	nodes, err := parseProgram(lines)
	if err != nil {
		return nil, err
	}

	asm.progress("flattening imports")
	seen := map[string]bool{canonicalPath(path): true}
	nodes, err = flattenImports(nodes, filepath.Dir(path), seen, asm.warn)
	if err != nil {
		return nil, err
	}

	return asm.assembleNodes(nodes)
}

// Assemble runs the pipeline over in-memory source with no import base
// directory (imports are resolved relative to the current directory).
func (asm *Assembler) Assemble(src string) ([]byte, error) {
	nodes, err := parseProgram(splitLines(src))
	if err != nil {
		return nil, err
	}

	nodes, err = flattenImports(nodes, ".", map[string]bool{}, asm.warn)
	if err != nil {
		return nil, err
	}

	return asm.assembleNodes(nodes)
}

func (asm *Assembler) assembleNodes(nodes []*Node) ([]byte, error) {
	asm.progress("capturing macros")
	nodes, registry := captureMacros(nodes, asm.warn)

	asm.progress("expanding macros")
	nodes, err := expandMacros(nodes, registry)
	if err != nil {
		return nil, err
	}

	asm.progress("resolving labels")
	if err := asm.resolveLabels(nodes); err != nil {
		return nil, err
	}

	asm.progress("encoding")
	var words []uint16
	for _, n := range nodes {
		switch n.Kind {
		case NodeInstruction:
			code, err := asm.encodeInstruction(n)
			if err != nil {
				return nil, err
			}
			if asm.verbose >= Verbose {
				fmt.Printf("%04X: %s -> %v\n", n.PC, n.Mnemonic, code)
			}
			words = append(words, code...)
		case NodeData:
			words = append(words, encodeData(n)...)
		case NodeLabel:
			// no code
		default:
			return nil, fmt.Errorf("internal error: unresolved %v node reached encoding", n.Kind)
		}
	}

	return isa.WordsToBytes(words), nil
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return strings.ToLower(filepath.Clean(abs))
}
