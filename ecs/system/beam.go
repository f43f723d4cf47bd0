package system

import (
	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// BeamSystem grows every emitter's beam by one step per tick and rebuilds the
// light samples along them.
type BeamSystem struct{}

func NewBeamSystem() *BeamSystem { return &BeamSystem{} }

func (s *BeamSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Lights = w.Lights[:0]

	spec := w.Tuning.Beam
	obstacles := append(w.Obstacles(component.BlocksBeam), levelEdges(w.Bounds(), w.TileSize)...)
	for _, em := range w.Emitters() {
		b := em.Beam
		if b == nil {
			continue
		}
		w.AddBeam(b)

		if !em.Enabled {
			b.Reset()
			dropReflection(w, b)
			continue
		}

		b.Rect = GrowBeam(b.Rect, b.Dir, spec.GrowStep, obstacles)
		if spec.Reflect {
			reflectBeam(w, b, obstacles)
		}
		w.Lights = append(w.Lights, SampleLights(b, spec.LightStride, spec.LightRadius)...)
		if b.Reflected != nil {
			w.AddBeam(b.Reflected)
			w.Lights = append(w.Lights, SampleLights(b.Reflected, spec.LightStride, spec.LightRadius)...)
		}
	}
}

// GrowBeam extends r one step in dir. Right and Down move the far edge; Left
// and Up move the rect's origin back and grow it so the near edge stays put.
// If the grown rect hits an obstacle the far edge is snapped to the facing
// edge of the nearest one instead.
func GrowBeam(r common.Rect, dir component.Direction, step float64, obstacles []common.Rect) common.Rect {
	grown := r
	switch dir {
	case component.DirRight:
		grown.W += step
	case component.DirLeft:
		grown.X -= step
		grown.W += step
	case component.DirDown:
		grown.H += step
	case component.DirUp:
		grown.Y -= step
		grown.H += step
	default:
		return r
	}

	hit, ok := nearestObstacle(grown, dir, obstacles)
	if !ok {
		return grown
	}
	return snapTo(grown, dir, hit)
}

func nearestObstacle(r common.Rect, dir component.Direction, obstacles []common.Rect) (common.Rect, bool) {
	var best common.Rect
	found := false
	for _, o := range obstacles {
		if !r.Intersects(o) {
			continue
		}
		if !found || closer(o, best, dir) {
			best = o
			found = true
		}
	}
	return best, found
}

func closer(a, b common.Rect, dir component.Direction) bool {
	switch dir {
	case component.DirRight:
		return a.X < b.X
	case component.DirLeft:
		return a.Right() > b.Right()
	case component.DirDown:
		return a.Y < b.Y
	case component.DirUp:
		return a.Bottom() > b.Bottom()
	}
	return false
}

func snapTo(r common.Rect, dir component.Direction, o common.Rect) common.Rect {
	switch dir {
	case component.DirRight:
		r.W = max(0, o.X-r.X)
	case component.DirDown:
		r.H = max(0, o.Y-r.Y)
	case component.DirLeft:
		right := r.Right()
		far := min(o.Right(), right)
		r.X, r.W = far, right-far
	case component.DirUp:
		bottom := r.Bottom()
		far := min(o.Bottom(), bottom)
		r.Y, r.H = far, bottom-far
	}
	return r
}

// SampleLights places a point light every stride pixels from the beam's
// origin and one at its tip. A zero-length beam casts no light.
func SampleLights(b *component.Beam, stride, radius float64) []component.PointLight {
	if b == nil || b.Length() <= 0 || stride <= 0 {
		return nil
	}
	dx, dy := 0.0, 0.0
	switch b.Dir {
	case component.DirRight:
		dx = 1
	case component.DirLeft:
		dx = -1
	case component.DirDown:
		dy = 1
	case component.DirUp:
		dy = -1
	}

	length := b.Length()
	lights := make([]component.PointLight, 0, int(length/stride)+2)
	for d := 0.0; d < length; d += stride {
		lights = append(lights, component.PointLight{X: b.OriginX + dx*d, Y: b.OriginY + dy*d, Radius: radius})
	}
	tx, ty := b.Tip()
	return append(lights, component.PointLight{X: tx, Y: ty, Radius: radius})
}

// reflectBeam clamps b at the first mirror whose center it passes and grows a
// single child beam out of that mirror. Children never reflect.
func reflectBeam(w *ecs.World, b *component.Beam, obstacles []common.Rect) {
	m := firstMirror(b, w.Mirrors)
	if m == nil {
		dropReflection(w, b)
		return
	}
	cx, cy := m.Rect.Center()
	switch b.Dir {
	case component.DirRight:
		b.Rect.W = cx - b.Rect.X
	case component.DirLeft:
		b.Rect.W = b.Rect.Right() - cx
		b.Rect.X = cx
	case component.DirDown:
		b.Rect.H = cy - b.Rect.Y
	case component.DirUp:
		b.Rect.H = b.Rect.Bottom() - cy
		b.Rect.Y = cy
	}

	dir := component.Reflect(b.Dir, m.Type)
	child := b.Reflected
	if child == nil || child.Mirror != m || child.Dir != dir || child.OriginX != cx || child.OriginY != cy {
		dropReflection(w, b)
		child = component.NewBeam(cx, cy, b.Thickness, dir)
		child.Parent = b
		child.Mirror = m
		b.Reflected = child
	}
	child.Rect = GrowBeam(child.Rect, child.Dir, w.Tuning.Beam.GrowStep, obstacles)
}

// dropReflection unregisters b's child so receptors stop seeing it this tick.
func dropReflection(w *ecs.World, b *component.Beam) {
	if b.Reflected == nil {
		return
	}
	w.RemoveBeam(b.Reflected)
	b.Reflected = nil
}

// levelEdges returns solid bands just outside bounds so beams facing an open
// level edge stop at it.
func levelEdges(bounds common.Rect, pad float64) []common.Rect {
	if pad <= 0 {
		pad = 1
	}
	return []common.Rect{
		{X: -pad, Y: -pad, W: pad, H: bounds.H + 2*pad},
		{X: bounds.W, Y: -pad, W: pad, H: bounds.H + 2*pad},
		{X: -pad, Y: -pad, W: bounds.W + 2*pad, H: pad},
		{X: -pad, Y: bounds.H, W: bounds.W + 2*pad, H: pad},
	}
}

func firstMirror(b *component.Beam, mirrors []*component.Mirror) *component.Mirror {
	var best *component.Mirror
	bestDist := 0.0
	for _, m := range mirrors {
		if !b.Rect.Intersects(m.Rect) {
			continue
		}
		cx, cy := m.Rect.Center()
		var dist float64
		switch b.Dir {
		case component.DirRight:
			dist = cx - b.OriginX
		case component.DirLeft:
			dist = b.OriginX - cx
		case component.DirDown:
			dist = cy - b.OriginY
		case component.DirUp:
			dist = b.OriginY - cy
		default:
			continue
		}
		if dist <= 0 || dist > b.Length() {
			continue
		}
		if best == nil || dist < bestDist {
			best, bestDist = m, dist
		}
	}
	return best
}
