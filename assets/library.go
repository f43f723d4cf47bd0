package assets

import (
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/adumbration/adumbration/ecs/component"
)

// Library hands out sprite sheets. Sheets are generated on first use; the
// ebiten images are created lazily so the library can be built before the
// game loop starts.
type Library struct {
	tileSize int
	palette  Palette
	sheets   map[string]*image.RGBA
	images   map[string]*ebiten.Image
}

func NewLibrary(tileSize int) *Library {
	pal, err := LoadPalette()
	if err != nil {
		log.Printf("assets: palette: %v", err)
		pal = Palette{}
	}
	return &Library{
		tileSize: tileSize,
		palette:  pal,
		sheets:   make(map[string]*image.RGBA),
		images:   make(map[string]*ebiten.Image),
	}
}

func (l *Library) Palette() Palette {
	return l.palette
}

// SheetSize reports the pixel size of a sheet without generating it.
func (l *Library) SheetSize(name string) (int, int, bool) {
	cells, ok := component.SheetCells[name]
	if !ok {
		return 0, 0, false
	}
	return cells.X * l.tileSize, cells.Y * l.tileSize, true
}

// Sheet returns the generated RGBA sheet, or nil for unknown names.
func (l *Library) Sheet(name string) *image.RGBA {
	if img, ok := l.sheets[name]; ok {
		return img
	}
	img, ok := GenerateSheet(name, l.tileSize, l.palette)
	if !ok {
		return nil
	}
	l.sheets[name] = img
	return img
}

// Image returns the sheet as an ebiten image.
func (l *Library) Image(name string) *ebiten.Image {
	if img, ok := l.images[name]; ok {
		return img
	}
	sheet := l.Sheet(name)
	if sheet == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(sheet)
	l.images[name] = img
	return img
}

// Sprite returns the sub-image for a sprite, or nil when its sheet is unknown.
func (l *Library) Sprite(s component.Sprite) *ebiten.Image {
	sheet := l.Image(s.Sheet)
	if sheet == nil || s.Source.Empty() {
		return nil
	}
	return sheet.SubImage(s.Source).(*ebiten.Image)
}
