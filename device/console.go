// Package device implements the machine's attached peripherals: the
// console (port 0) and the memory-mapped video bank, both observers of
// state the vm package otherwise only stores.
package device

import (
	"fmt"
	"hash/fnv"
	"io"
)

// Console renders port-0 writes as characters, with no trailing newline —
// spec §5: "a write to port 0 prints chr(value & 0xFFFF) to stdout".
type Console struct {
	w io.Writer
}

// NewConsole wraps a writer (typically os.Stdout) as a Console.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Write renders one port-0 write as a single character, using the full
// 16-bit value as its code point (spec §6; matches
// original_source/jaide/emulator.py's port_set, which prints chr(value)
// unmasked to a byte).
func (c *Console) Write(value uint16) {
	fmt.Fprint(c.w, string(rune(value)))
}

// hashWords is the change-detection primitive shared by the video bank:
// a non-cryptographic hash over raw word content, cheap enough to run at
// poll rate without locking (spec §5).
func hashWords(words []uint16) uint64 {
	h := fnv.New64a()
	b := make([]byte, 2)
	for _, w := range words {
		b[0], b[1] = byte(w), byte(w>>8)
		h.Write(b)
	}
	return h.Sum64()
}
