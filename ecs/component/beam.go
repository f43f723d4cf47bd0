package component

import "github.com/adumbration/adumbration/common"

// Beam is one directional light segment. Its rect always contains the origin
// edge; only the far edge moves.
type Beam struct {
	Rect      common.Rect
	Dir       Direction
	OriginX   float64
	OriginY   float64
	Thickness float64

	// Owner is set for beams emitted directly by an emitter.
	Owner *Emitter
	// Parent and Mirror are set for a reflected child.
	Parent *Beam
	Mirror *Mirror
	// Reflected is the single child produced when this beam hits a mirror.
	Reflected *Beam
}

func NewBeam(x, y, thickness float64, dir Direction) *Beam {
	b := &Beam{Dir: dir, OriginX: x, OriginY: y, Thickness: thickness}
	b.Reset()
	return b
}

// Reset collapses the beam to zero length at its origin.
func (b *Beam) Reset() {
	b.Rect = OriginRect(b.OriginX, b.OriginY, b.Thickness, b.Dir)
}

// Length is the extent along the beam's axis.
func (b *Beam) Length() float64 {
	if b.Dir.Horizontal() {
		return b.Rect.W
	}
	return b.Rect.H
}

// Tip returns the far end of the beam on its center line.
func (b *Beam) Tip() (float64, float64) {
	switch b.Dir {
	case DirRight:
		return b.Rect.Right(), b.OriginY
	case DirLeft:
		return b.Rect.X, b.OriginY
	case DirDown:
		return b.OriginX, b.Rect.Bottom()
	case DirUp:
		return b.OriginX, b.Rect.Y
	}
	return b.OriginX, b.OriginY
}

// OriginRect is a zero-length beam rect anchored at x,y.
func OriginRect(x, y, thickness float64, dir Direction) common.Rect {
	if dir.Horizontal() {
		return common.Rect{X: x, Y: y - thickness/2, W: 0, H: thickness}
	}
	return common.Rect{X: x - thickness/2, Y: y, W: thickness, H: 0}
}

type PointLight struct {
	X, Y   float64
	Radius float64
}

type Point struct {
	X, Y float64
}

// Hull is a shadow-casting quad handed to the lighting overlay.
type Hull [4]Point

func HullFromRect(r common.Rect) Hull {
	return Hull{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}
