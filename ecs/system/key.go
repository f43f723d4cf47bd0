package system

import (
	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs"
)

// KeySystem collects the level key when the player touches it.
type KeySystem struct{}

func NewKeySystem() *KeySystem { return &KeySystem{} }

func (s *KeySystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil || w.Key == nil {
		return
	}
	k := w.Key
	if k.Collected() || !w.Player.Rect.Intersects(k.Rect) {
		return
	}
	cx, cy := k.Rect.Center()
	k.Rect = common.Rect{X: cx, Y: cy}
	if k.Index >= 0 && k.Index < len(w.Progress.Keys) {
		w.Progress.Keys[k.Index] = true
	}
	w.PlaySound("key")
	w.Events().Push(ecs.Event{Type: ecs.EventKeyCollected, Data: k.Index})
}
