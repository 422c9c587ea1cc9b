package assembler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// flattenImports implements spec §4.2's import-flattening DFS: splice each
// imported file's nodes at the Import node's position, skipping (with a
// warning) any file already seen by canonicalised path.
func flattenImports(nodes []*Node, baseDir string, seen map[string]bool, warn func(string)) ([]*Node, error) {
	var out []*Node
	for _, n := range nodes {
		if n.Kind != NodeImport {
			out = append(out, n)
			continue
		}

		path := n.Filename
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		canon, err := filepath.Abs(path)
		if err != nil {
			canon = path
		}
		canon = strings.ToLower(filepath.Clean(canon))

		if seen[canon] {
			warn(fmt.Sprintf("line %d: duplicate or circular import of %q skipped", n.Line, n.Filename))
			continue
		}
		seen[canon] = true

		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("line %d: import %q: %w", n.Line, n.Filename, err)
		}

		childNodes, err := parseProgram(splitLines(string(src)))
		if err != nil {
			return nil, fmt.Errorf("in imported file %q: %w", n.Filename, err)
		}

		flattened, err := flattenImports(childNodes, filepath.Dir(path), seen, warn)
		if err != nil {
			return nil, err
		}
		out = append(out, flattened...)
	}
	return out, nil
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.Split(src, "\n")
}
