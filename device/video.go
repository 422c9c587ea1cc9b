package device

// Video geometry: an 80x25 character grid, one word per cell — low byte the
// glyph, high byte bg<<4|fg — living in unbanked main memory at the start
// of the bank window, so the CPU writes it with ordinary PUT while MB%32 is
// zero (spec §5).
const (
	Width  = 80
	Height = 25
	Cells  = Width * Height
)

// Palette is the machine's fixed 16-colour set, indexed by the high byte's
// fg/bg nibbles. There is no palette-register instruction in the ISA (spec
// §4 has no such opcode), so the mapping is fixed in the device rather than
// configurable. The table itself is not invented: it reproduces, in order,
// the COLORS list of original_source/jaide/devices/graphics.py, the text-
// mode renderer spec §6's video bank layout was distilled from.
var Palette = [16]string{
	"#000000", "#FFFFFF", "#FF0000", "#00FF00",
	"#0000FF", "#FFFF00", "#00FFFF", "#FF00FF",
	"#808080", "#C0C0C0", "#800000", "#008000",
	"#000080", "#808000", "#008080", "#800080",
}

// Cell is one decoded character cell.
type Cell struct {
	Glyph byte
	BG    uint8
	FG    uint8
}

// VideoBank polls a bank of CPU memory for change and decodes it into a
// Cells-sized grid. It holds no lock: spec §5 calls for a best-effort,
// hash-gated ~30Hz poll, not a synchronised frame buffer.
type VideoBank struct {
	read     func() []uint16
	lastHash uint64
	hasRun   bool
}

// NewVideoBank wraps a read function returning the live bank contents
// (typically a slice view into vm.CPU.Mem starting at the video origin).
func NewVideoBank(read func() []uint16) *VideoBank {
	return &VideoBank{read: read}
}

// Poll re-reads the bank and reports whether its content changed since the
// last call, alongside the freshly decoded grid. The first call always
// reports changed.
func (v *VideoBank) Poll() (cells [Cells]Cell, changed bool) {
	words := v.read()
	h := hashWords(words)
	changed = !v.hasRun || h != v.lastHash
	v.lastHash = h
	v.hasRun = true

	for i := 0; i < Cells && i < len(words); i++ {
		w := words[i]
		cells[i] = Cell{
			Glyph: byte(w),
			BG:    uint8(w>>12) & 0xF,
			FG:    uint8(w>>8) & 0xF,
		}
	}
	return cells, changed
}
