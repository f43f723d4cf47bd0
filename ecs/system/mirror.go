package system

import (
	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// MirrorSystem lets the player carry free mirrors while holding grab and
// rotate any mirror they stand next to.
type MirrorSystem struct{}

func NewMirrorSystem() *MirrorSystem { return &MirrorSystem{} }

func (s *MirrorSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	p := w.Player
	rotated, carried := false, false
	for _, m := range w.Mirrors {
		if !p.Rect.Intersects(m.Hitbox()) {
			continue
		}
		if !rotated && w.Input.Rotate.Pressed() {
			m.Type = m.Type.Flip()
			rotated = true
		}
		if carried || m.Stationary || !w.Input.Grab.Down {
			continue
		}
		moveMirror(w, m, p.DX, 0)
		moveMirror(w, m, 0, p.DY)
		carried = true
	}
}

// moveMirror translates m unless the move would overlap a wall, another
// mirror or leave the level.
func moveMirror(w *ecs.World, m *component.Mirror, dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	next := m.Rect.Translate(dx, dy)
	bounds := w.Bounds()
	if next.X < bounds.X || next.Y < bounds.Y || next.Right() > bounds.Right() || next.Bottom() > bounds.Bottom() {
		return false
	}
	if blocked(next, w.Obstacles(component.IsWall)) {
		return false
	}
	for _, other := range w.Mirrors {
		if other != m && next.Intersects(other.Rect) {
			return false
		}
	}
	m.Rect = next
	return true
}

func blocked(r common.Rect, obstacles []common.Rect) bool {
	for _, o := range obstacles {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
