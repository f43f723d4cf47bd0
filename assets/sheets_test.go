package assets

import (
	"encoding/binary"
	"image"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/adumbration/adumbration/ecs/component"
)

func TestLoadPalette(t *testing.T) {
	pal, err := LoadPalette()
	if err != nil {
		t.Fatalf("load palette: %v", err)
	}
	cases := []struct {
		name string
		want [3]uint8
	}{
		{"wall", [3]uint8{colornames.Slategray.R, colornames.Slategray.G, colornames.Slategray.B}},
		{"background", [3]uint8{0x10, 0x10, 0x14}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := pal.Color(c.name)
			if [3]uint8{got.R, got.G, got.B} != c.want || got.A != 255 {
				t.Fatalf("color %s = %v", c.name, got)
			}
		})
	}
	if got := pal.Color("missing"); got != colornames.Magenta {
		t.Fatalf("missing color should be magenta, got %v", got)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, s := range []string{"#zzzzzz", "notacolor", "#12"} {
		t.Run(s, func(t *testing.T) {
			if _, err := parseColor(s); err == nil {
				t.Fatalf("expected error for %q", s)
			}
		})
	}
}

func TestGenerateSheetSizes(t *testing.T) {
	pal, err := LoadPalette()
	if err != nil {
		t.Fatalf("load palette: %v", err)
	}
	for name, cells := range component.SheetCells {
		t.Run(name, func(t *testing.T) {
			img, ok := GenerateSheet(name, 32, pal)
			if !ok {
				t.Fatalf("sheet %q not generated", name)
			}
			want := image.Rect(0, 0, cells.X*32, cells.Y*32)
			if img.Bounds() != want {
				t.Fatalf("bounds %v, want %v", img.Bounds(), want)
			}
		})
	}
	if _, ok := GenerateSheet("nope", 32, pal); ok {
		t.Fatalf("unknown sheet should not generate")
	}
}

func TestWallSheetSolidCellHasNoEdges(t *testing.T) {
	pal, err := LoadPalette()
	if err != nil {
		t.Fatalf("load palette: %v", err)
	}
	img, _ := GenerateSheet(component.SheetWalls, 32, pal)
	wall := pal.Color("wall")
	for _, p := range []image.Point{{X: 32, Y: 32}, {X: 63, Y: 63}, {X: 48, Y: 32}} {
		if got := img.RGBAAt(p.X, p.Y); got != wall {
			t.Fatalf("pixel %v = %v, want plain wall", p, got)
		}
	}
	if got := img.RGBAAt(48, 64); got != pal.Color("wall_edge") {
		t.Fatalf("up-facing cell should have a top edge, got %v", got)
	}
}

func TestTone(t *testing.T) {
	pcm := Tone(1000, 250, 100, 1)
	if len(pcm) != 100*4 {
		t.Fatalf("expected 400 bytes, got %d", len(pcm))
	}
	left := int16(binary.LittleEndian.Uint16(pcm[4:]))
	right := int16(binary.LittleEndian.Uint16(pcm[6:]))
	if left != right || left <= 0 {
		t.Fatalf("expected matching positive channels, got %d %d", left, right)
	}
	if Tone(1000, 0, 100, 1) != nil || Tone(1000, 440, 0, 1) != nil {
		t.Fatalf("degenerate tones should be empty")
	}
}
