package system

import (
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// LightingSystem rebuilds the shadow hulls: one quad per wall-class entity.
type LightingSystem struct{}

func NewLightingSystem() *LightingSystem { return &LightingSystem{} }

func (s *LightingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Hulls = w.Hulls[:0]
	w.ForEach(func(_, _ int, e component.Entity) {
		if component.IsWall(e) {
			w.Hulls = append(w.Hulls, component.HullFromRect(e.Base().Rect))
		}
	})
}
