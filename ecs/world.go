package ecs

import (
	"image"
	"slices"

	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

// World is the runtime state of one compiled level. Grid holds the placed
// entity for each cell (nil for empty tiles); free entities such as mirrors,
// the key and the player live beside it.
type World struct {
	LevelID  string
	Width    int
	Height   int
	TileSize float64
	Tuning   prefabs.Tuning
	Layout   *levels.Layout

	Grid     [][]component.Entity
	Mirrors  []*component.Mirror
	Key      *component.Key
	Beams    []*component.Beam
	Lights   []component.PointLight
	Hulls    []component.Hull
	Channels map[int][]component.Entity

	SpawnCell image.Point
	Player    *component.Player
	Input     component.Input
	Progress  *component.Progress
	Tick      int

	events      EventQueue
	levelChange *component.LevelChangeRequest
}

func NewWorld(id string, layout *levels.Layout, tuning prefabs.Tuning) *World {
	w := &World{
		LevelID:  id,
		Tuning:   tuning,
		TileSize: tuning.TileSize,
		Layout:   layout,
		Channels: make(map[int][]component.Entity),
		Progress: component.NewProgress(),
	}
	if layout != nil {
		w.Width = layout.Width
		w.Height = layout.Height
	}
	w.Grid = make([][]component.Entity, w.Height)
	for y := range w.Grid {
		w.Grid[y] = make([]component.Entity, w.Width)
	}
	return w
}

func (w *World) InBounds(x, y int) bool {
	return w != nil && x >= 0 && y >= 0 && x < w.Width && y < w.Height
}

// At returns the placed entity at a cell, or nil for empty or out-of-range
// cells.
func (w *World) At(x, y int) component.Entity {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.Grid[y][x]
}

func (w *World) Set(x, y int, e component.Entity) {
	if !w.InBounds(x, y) {
		return
	}
	w.Grid[y][x] = e
}

// ForEach visits placed entities in row-major order, skipping empty cells.
func (w *World) ForEach(fn func(x, y int, e component.Entity)) {
	if w == nil {
		return
	}
	for y, row := range w.Grid {
		for x, e := range row {
			if e != nil {
				fn(x, y, e)
			}
		}
	}
}

func (w *World) Emitters() []*component.Emitter {
	var out []*component.Emitter
	w.ForEach(func(_, _ int, e component.Entity) {
		if em, ok := e.(*component.Emitter); ok {
			out = append(out, em)
		}
	})
	return out
}

func (w *World) Receptors() []*component.Receptor {
	var out []*component.Receptor
	w.ForEach(func(_, _ int, e component.Entity) {
		if r, ok := e.(*component.Receptor); ok {
			out = append(out, r)
		}
	})
	return out
}

// Subscribe records that e listens on channel.
func (w *World) Subscribe(channel int, e component.Entity) {
	if w.Channels == nil {
		w.Channels = make(map[int][]component.Entity)
	}
	w.Channels[channel] = append(w.Channels[channel], e)
}

// Obstacles returns the rects of every placed entity matching keep.
func (w *World) Obstacles(keep func(component.Entity) bool) []common.Rect {
	var out []common.Rect
	w.ForEach(func(_, _ int, e component.Entity) {
		if keep(e) {
			out = append(out, e.Base().Rect)
		}
	})
	return out
}

// AddBeam registers a beam unless it is already known.
func (w *World) AddBeam(b *component.Beam) bool {
	if b == nil {
		return false
	}
	for _, existing := range w.Beams {
		if existing == b {
			return false
		}
	}
	w.Beams = append(w.Beams, b)
	return true
}

// RemoveBeam unregisters b.
func (w *World) RemoveBeam(b *component.Beam) {
	w.Beams = slices.DeleteFunc(w.Beams, func(x *component.Beam) bool { return x == b })
}

// Bounds is the level's world-space rectangle.
func (w *World) Bounds() common.Rect {
	return common.Rect{W: float64(w.Width) * w.TileSize, H: float64(w.Height) * w.TileSize}
}

// RequestLevel asks the game loop to load a level after the current tick.
// The first request in a tick wins.
func (w *World) RequestLevel(id string) {
	if w == nil || w.levelChange != nil {
		return
	}
	w.levelChange = &component.LevelChangeRequest{TargetLevel: id, FromLevel: w.LevelID}
}

// TakeLevelChange returns and clears the pending level change.
func (w *World) TakeLevelChange() (component.LevelChangeRequest, bool) {
	if w == nil || w.levelChange == nil {
		return component.LevelChangeRequest{}, false
	}
	req := *w.levelChange
	w.levelChange = nil
	return req, true
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// PlaySound queues a named sound effect for the audio system.
func (w *World) PlaySound(name string) {
	w.Events().Push(Event{Type: EventSound, Data: name})
}
