package system

import (
	"github.com/adumbration/adumbration/ecs"
)

// SoundPlayer plays named sound effects without blocking.
type SoundPlayer interface {
	Play(name string)
}

// AudioSystem drains the tick's events and plays every queued sound.
type AudioSystem struct {
	player SoundPlayer
}

func NewAudioSystem(player SoundPlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventSound || a.player == nil {
			continue
		}
		if name, ok := evt.Data.(string); ok && name != "" {
			a.player.Play(name)
		}
	}
}
