package system

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// BeamPruneSystem drops beams whose emitter is no longer in the grid and
// reflected beams their parent no longer points at.
type BeamPruneSystem struct{}

func NewBeamPruneSystem() *BeamPruneSystem { return &BeamPruneSystem{} }

func (s *BeamPruneSystem) Update(w *ecs.World) {
	if w == nil || len(w.Beams) == 0 {
		return
	}
	owners := mapset.New[*component.Emitter]()
	w.ForEach(func(_, _ int, e component.Entity) {
		if em, ok := e.(*component.Emitter); ok {
			owners.Put(em)
		}
	})

	kept := mapset.New[*component.Beam]()
	beams := w.Beams[:0]
	for _, b := range w.Beams {
		switch {
		case b == nil:
			continue
		case b.Owner != nil:
			if !owners.Has(b.Owner) || b.Owner.Beam != b {
				continue
			}
		case b.Parent != nil:
			if !kept.Has(b.Parent) || b.Parent.Reflected != b {
				continue
			}
		default:
			continue
		}
		kept.Put(b)
		beams = append(beams, b)
	}
	clear(w.Beams[len(beams):])
	w.Beams = beams
}
