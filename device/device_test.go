package device_test

import (
	"strings"
	"testing"

	"github.com/Urethramancer/rm16/device"
)

func TestConsoleWritesFullValueAsCharacterNoNewline(t *testing.T) {
	var buf strings.Builder
	c := device.NewConsole(&buf)
	c.Write('H')
	c.Write('i')
	if buf.String() != "Hi" {
		t.Fatalf("expected %q, got %q", "Hi", buf.String())
	}
}

func TestConsoleWriteUsesFullWordNotLowByte(t *testing.T) {
	var buf strings.Builder
	c := device.NewConsole(&buf)
	c.Write(0x20AC) // '€', which a low-byte mask would truncate to 0xAC
	if buf.String() != "€" {
		t.Fatalf("expected %q, got %q", "€", buf.String())
	}
}

func TestVideoBankReportsChangeOnlyWhenContentDiffers(t *testing.T) {
	words := make([]uint16, device.Cells)
	vb := device.NewVideoBank(func() []uint16 { return words })

	_, changed := vb.Poll()
	if !changed {
		t.Fatal("first poll must report changed")
	}

	_, changed = vb.Poll()
	if changed {
		t.Fatal("unchanged content must not report changed")
	}

	words[0] = 0x1241 // glyph 'A', fg 2, bg 1
	cells, changed := vb.Poll()
	if !changed {
		t.Fatal("modified content must report changed")
	}
	if cells[0].Glyph != 'A' || cells[0].FG != 2 || cells[0].BG != 1 {
		t.Fatalf("unexpected cell decode: %+v", cells[0])
	}
}
