package system

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// ReceptorSystem marks each receptor activated while any registered beam
// touches its activation rect.
type ReceptorSystem struct{}

func NewReceptorSystem() *ReceptorSystem { return &ReceptorSystem{} }

func (s *ReceptorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, r := range w.Receptors() {
		r.Activated = false
		for _, b := range w.Beams {
			if b != nil && r.Activation.Intersects(b.Rect) {
				r.Activated = true
				break
			}
		}
	}
}

// SignalSystem routes receptor state to the emitters and doors on the same
// channel. It is level-triggered: every subscriber is recomputed each tick.
// A channel is active while any of its receptors is activated.
type SignalSystem struct{}

func NewSignalSystem() *SignalSystem { return &SignalSystem{} }

// ActiveChannels returns the channels with at least one activated receptor.
func ActiveChannels(w *ecs.World) mapset.Set[int] {
	active := mapset.New[int]()
	for _, r := range w.Receptors() {
		if r.Activated {
			active.Put(r.Channel)
		}
	}
	return active
}

func (s *SignalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	active := ActiveChannels(w)
	for channel, subs := range w.Channels {
		on := active.Has(channel)
		for _, sub := range subs {
			switch v := sub.(type) {
			case *component.Emitter:
				v.Enabled = on != v.StartEnabled
			case *component.Door:
				if on && !v.Open {
					w.PlaySound("door")
				}
				v.Open = on
			}
		}
	}
}
