package assembler

import "os"

// readLines loads a source file and splits it into lines for parseProgram.
func readLines(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitLines(string(src)), nil
}

// WriteBinary writes an assembled image to disk, per the asm command's
// -o flag (spec §6).
func WriteBinary(path string, code []byte) error {
	return os.WriteFile(path, code, 0o644)
}
