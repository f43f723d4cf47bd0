package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/ecs/entity"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

var ErrLevelUnavailable = errors.New("level manager: level unavailable")

// LevelManager owns the current world and the progress that outlives it. It
// is the only place levels are read and compiled; systems ask for a change
// through World.RequestLevel and the game loop applies it here.
type LevelManager struct {
	tuning   prefabs.Tuning
	sheets   entity.SheetSizer
	progress *component.Progress
	current  string
	world    *ecs.World
	loads    uint64

	// load is swapped in tests.
	load func(name string) (*levels.Layout, error)
}

func NewLevelManager(tuning prefabs.Tuning, sheets entity.SheetSizer) *LevelManager {
	return &LevelManager{
		tuning:   tuning,
		sheets:   sheets,
		progress: component.NewProgress(),
		load:     levels.Load,
	}
}

// Load reads and compiles a level and makes it current. On any error the
// previous world stays current.
func (m *LevelManager) Load(id string) (*ecs.World, error) {
	if m == nil {
		return nil, fmt.Errorf("nil level manager")
	}
	layout, err := m.load(id)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", id, err)
	}
	if layout.Degenerate() {
		return nil, fmt.Errorf("%w: %q", ErrLevelUnavailable, id)
	}
	w, err := entity.Compile(id, layout, entity.Options{Tuning: m.tuning, Progress: m.progress, Sheets: m.sheets})
	if err != nil {
		return nil, err
	}
	if m.world != nil {
		w.Input = m.world.Input
	}
	m.world = w
	m.current = id
	m.loads++
	log.Printf("levels: loaded %q (%dx%d)", id, w.Width, w.Height)
	return w, nil
}

// Reload recompiles the current level from its file.
func (m *LevelManager) Reload() (*ecs.World, error) {
	if m == nil || m.current == "" {
		return nil, fmt.Errorf("%w: nothing loaded", ErrLevelUnavailable)
	}
	return m.Load(m.current)
}

// Apply performs a pending level change request taken from the world.
func (m *LevelManager) Apply(req component.LevelChangeRequest) (*ecs.World, error) {
	if req.TargetLevel == "" {
		return nil, fmt.Errorf("%w: empty level id", ErrLevelUnavailable)
	}
	return m.Load(req.TargetLevel)
}

func (m *LevelManager) SetTuning(t prefabs.Tuning) {
	if m != nil {
		m.tuning = t
	}
}

func (m *LevelManager) World() *ecs.World {
	if m == nil {
		return nil
	}
	return m.world
}

func (m *LevelManager) Progress() *component.Progress {
	if m == nil {
		return nil
	}
	return m.progress
}

func (m *LevelManager) Current() string {
	if m == nil {
		return ""
	}
	return m.current
}

// Loads counts successful loads, including reloads.
func (m *LevelManager) Loads() uint64 {
	if m == nil {
		return 0
	}
	return m.loads
}
