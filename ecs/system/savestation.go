package system

import (
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

// SaveStationSystem records the station's cell as the level's spawn point when
// the player interacts with it.
type SaveStationSystem struct{}

func NewSaveStationSystem() *SaveStationSystem { return &SaveStationSystem{} }

func (s *SaveStationSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	pressed := w.Input.Interact.Pressed()
	w.ForEach(func(_, _ int, e component.Entity) {
		st, ok := e.(*component.SaveStation)
		if !ok {
			return
		}
		if st.Flash > 0 {
			st.Flash--
		}
		if !pressed || !w.Player.Rect.Intersects(st.Hitbox) {
			return
		}
		w.Progress.SetSpawn(w.LevelID, st.Cell)
		st.Flash = w.Tuning.Door.DelayFrames
		w.PlaySound("save")
		w.Events().Push(ecs.Event{Type: ecs.EventSaved, Data: w.LevelID})
	})
}
