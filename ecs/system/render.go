package system

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/adumbration/adumbration/assets"
	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/ecs/entity"
)

// RenderSystem draws the grid, free entities, beams, the lighting overlay and
// the HUD.
type RenderSystem struct {
	lib     *assets.Library
	overlay *LightOverlay
	hud     *HUD
	Debug   bool
	// Physics, when set, has its collision space outlined in debug mode.
	Physics *PlayerSystem
}

func NewRenderSystem(lib *assets.Library) *RenderSystem {
	return &RenderSystem{lib: lib, overlay: NewLightOverlay(), hud: NewHUD()}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(r.lib.Palette().Color("background"))

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	fx, fy := 0.0, 0.0
	if w.Player != nil {
		fx, fy = w.Player.Rect.Center()
	}
	camX, camY := CameraOffset(w.Bounds(), fx, fy, float64(sw), float64(sh))
	ts := int(w.TileSize)

	w.ForEach(func(_, _ int, e component.Entity) {
		r.drawSprite(screen, entity.SpriteFor(e, ts), e.Base().Rect, camX, camY)
	})
	for _, m := range w.Mirrors {
		r.drawSprite(screen, entity.SpriteFor(m, ts), m.Rect, camX, camY)
	}
	if w.Key != nil && !w.Key.Collected() {
		r.drawSprite(screen, entity.SpriteFor(w.Key, ts), w.Key.Rect, camX, camY)
	}

	beamColor := r.lib.Palette().Color("beam")
	for _, b := range w.Beams {
		if b == nil || b.Rect.Empty() {
			continue
		}
		vector.FillRect(screen, float32(b.Rect.X-camX), float32(b.Rect.Y-camY), float32(b.Rect.W), float32(b.Rect.H), beamColor, false)
	}

	if w.Player != nil {
		sprite := component.CellSprite(component.SheetPlayer, 0, 0, ts)
		r.drawSprite(screen, sprite, w.Player.Rect, camX, camY)
	}

	r.overlay.Draw(screen, w.Lights, w.Hulls, camX, camY)

	if r.Debug {
		r.drawDebug(w, screen, camX, camY)
	}
	r.hud.Draw(w, screen)
}

// drawSprite scales the sprite's source rect onto dst.
func (r *RenderSystem) drawSprite(screen *ebiten.Image, s component.Sprite, dst common.Rect, camX, camY float64) {
	img := r.lib.Sprite(s)
	if img == nil || dst.Empty() {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy()))
	op.GeoM.Translate(dst.X-camX, dst.Y-camY)
	screen.DrawImage(img, op)
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, camX, camY float64) {
	stroke := func(rect common.Rect, c color.Color) {
		vector.StrokeRect(screen, float32(rect.X-camX), float32(rect.Y-camY), float32(rect.W), float32(rect.H), 1, c, false)
	}
	w.ForEach(func(_, _ int, e component.Entity) {
		switch v := e.(type) {
		case *component.LevelDoor:
			stroke(v.Hitbox, colornames.Yellow)
		case *component.FinalDoor:
			stroke(v.Hitbox, colornames.Yellow)
		case *component.SaveStation:
			stroke(v.Hitbox, colornames.Lime)
		case *component.Receptor:
			c := colornames.Gray
			if v.Activated {
				c = colornames.Violet
			}
			stroke(v.Activation, c)
		}
	})
	for _, m := range w.Mirrors {
		stroke(m.Hitbox(), colornames.Cyan)
		cx, cy := m.Rect.Center()
		vector.StrokeLine(screen, float32(cx-camX-2), float32(cy-camY), float32(cx-camX+2), float32(cy-camY), 1, colornames.Cyan, false)
	}
	if w.Player != nil {
		stroke(w.Player.Rect, colornames.Red)
	}
	if r.Physics != nil {
		DrawPhysicsDebug(r.Physics.Space(), screen, camX, camY)
	}
	DrawWorldDebug(w, screen)
}

// CameraOffset centers levels smaller than the screen and otherwise follows
// the focus point, clamped to the level edges.
func CameraOffset(level common.Rect, focusX, focusY, screenW, screenH float64) (float64, float64) {
	axis := func(size, focus, screen float64) float64 {
		if size <= screen {
			return -(screen - size) / 2
		}
		return common.Clamp(focus-screen/2, 0, size-screen)
	}
	return axis(level.W, focusX, screenW), axis(level.H, focusY, screenH)
}

// LightOverlay darkens the screen and cuts soft holes for point lights.
// Shadow hulls are drawn back in at half darkness so walls stay dim.
type LightOverlay struct {
	layer    *ebiten.Image
	light    *ebiten.Image
	radius   int
	Darkness float64
}

func NewLightOverlay() *LightOverlay {
	return &LightOverlay{Darkness: 0.8}
}

func (o *LightOverlay) Draw(screen *ebiten.Image, lights []component.PointLight, hulls []component.Hull, camX, camY float64) {
	b := screen.Bounds()
	if o.layer == nil || o.layer.Bounds() != b {
		o.layer = ebiten.NewImage(b.Dx(), b.Dy())
	}
	o.layer.Fill(color.RGBA{A: uint8(255 * o.Darkness)})

	for _, l := range lights {
		img := o.lightImage(int(l.Radius))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(l.X-camX-l.Radius, l.Y-camY-l.Radius)
		op.Blend = ebiten.BlendDestinationOut
		o.layer.DrawImage(img, op)
	}

	shade := color.RGBA{A: uint8(128 * o.Darkness)}
	for _, h := range hulls {
		x, y := h[0].X-camX, h[0].Y-camY
		vector.FillRect(o.layer, float32(x), float32(y), float32(h[2].X-h[0].X), float32(h[2].Y-h[0].Y), shade, false)
	}

	screen.DrawImage(o.layer, nil)
}

// lightImage returns a radial falloff sprite, regenerated when the radius
// changes.
func (o *LightOverlay) lightImage(radius int) *ebiten.Image {
	if radius <= 0 {
		radius = 1
	}
	if o.light != nil && o.radius == radius {
		return o.light
	}
	o.radius = radius
	o.light = ebiten.NewImageFromImage(RadialFalloff(radius))
	return o.light
}

// RadialFalloff draws a white disc whose alpha falls off toward the rim.
func RadialFalloff(radius int) *image.RGBA {
	size := radius * 2
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x-radius) + 0.5
			dy := float64(y-radius) + 0.5
			d := (dx*dx + dy*dy) / float64(radius*radius)
			if d >= 1 {
				continue
			}
			a := uint8(common.Lerp(255, 0, d))
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}
