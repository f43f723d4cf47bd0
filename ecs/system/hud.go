package system

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// HUD shows collected keys and the level name in the top-left corner.
type HUD struct {
	face text.Face
}

func NewHUD() *HUD {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("hud: load font: %v", err)
		return &HUD{}
	}
	return &HUD{face: &text.GoTextFace{Source: s, Size: 14}}
}

// Status is the HUD line for a world.
func Status(w *ecs.World) string {
	if w == nil {
		return ""
	}
	name := w.LevelID
	if name == "h" {
		name = "hub"
	}
	return fmt.Sprintf("level %s  keys %d/4", name, w.Progress.KeyCount())
}

func (h *HUD) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil {
		return
	}
	for i, held := range w.Progress.Keys {
		c := color.Color(colornames.Dimgray)
		if held {
			c = colornames.Gold
		}
		vector.FillRect(screen, float32(8+i*14), 8, 10, 10, c, false)
	}
	if h.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(70, 6)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, Status(w), h.face, op)

	if saving(w) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 24)
		op.ColorScale.ScaleWithColor(colornames.Palegreen)
		text.Draw(screen, "saved", h.face, op)
	}
}

func saving(w *ecs.World) bool {
	found := false
	w.ForEach(func(_, _ int, e component.Entity) {
		if st, ok := e.(*component.SaveStation); ok && st.Flash > 0 {
			found = true
		}
	})
	return found
}
