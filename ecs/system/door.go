package system

import (
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// DoorSystem runs the level and final door interaction machines: Idle until
// the player presses interact inside the hitbox, then a fixed countdown, then
// a level change request. The countdown cannot be cancelled.
type DoorSystem struct {
	Rule UnlockRule
}

func NewDoorSystem(rule UnlockRule) *DoorSystem {
	if rule == nil {
		rule = AnyTwoKeys
	}
	return &DoorSystem{Rule: rule}
}

func (s *DoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pressed := w.Input.Interact.Pressed()
	var player component.Player
	if w.Player != nil {
		player = *w.Player
	}
	keys := w.Progress.Keys

	w.ForEach(func(_, _ int, e component.Entity) {
		switch d := e.(type) {
		case *component.LevelDoor:
			if d.State == component.DoorIdle && pressed && player.Rect.Intersects(d.Hitbox) {
				d.State = component.DoorInteracted
				d.Timer = w.Tuning.Door.DelayFrames
				w.PlaySound("door")
			}
			if s.countdown(&d.State, &d.Timer) {
				w.RequestLevel(d.Destination)
			}
		case *component.FinalDoor:
			d.Progress = min(w.Progress.KeyCount(), 2)
			d.Unlocked = s.Rule.Unlocked(keys)
			if d.State == component.DoorIdle && d.Unlocked && pressed && player.Rect.Intersects(d.Hitbox) {
				d.State = component.DoorInteracted
				d.Timer = w.Tuning.Door.DelayFrames
				w.PlaySound("unlock")
			}
			if s.countdown(&d.State, &d.Timer) {
				w.RequestLevel(d.Destination)
			}
		}
	})
}

// countdown ticks an interacted door and reports when it reaches zero.
func (s *DoorSystem) countdown(state *component.DoorState, timer *int) bool {
	if *state != component.DoorInteracted || *timer < 0 {
		return false
	}
	if *timer > 0 {
		*timer--
	}
	if *timer == 0 {
		*timer = -1
		return true
	}
	return false
}
