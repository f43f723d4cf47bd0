package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/adumbration/adumbration/assets"
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/system"
	"github.com/adumbration/adumbration/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	debug bool

	tuning    prefabs.Tuning
	lib       *assets.Library
	levels    *system.LevelManager
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	watcher   *prefabs.Watcher
}

func NewGame(levelName string, debug bool) (*Game, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}

	lib := assets.NewLibrary(int(tuning.TileSize))
	g := &Game{
		debug:  debug,
		tuning: tuning,
		lib:    lib,
		levels: system.NewLevelManager(tuning, lib),
		render: system.NewRenderSystem(lib),
	}
	g.render.Debug = debug
	g.scheduler = g.newScheduler(tuning, assets.NewSounds(tuning.Audio))

	if levelName == "" {
		levelName = tuning.StartLevel
	}
	levelName = strings.TrimSuffix(levelName, ".txt")
	if _, err := g.levels.Load(levelName); err != nil {
		if levelName == tuning.StartLevel {
			return nil, fmt.Errorf("load start level: %w", err)
		}
		log.Printf("level %q: %v (falling back to %q)", levelName, err, tuning.StartLevel)
		if _, err := g.levels.Load(tuning.StartLevel); err != nil {
			return nil, fmt.Errorf("load start level: %w", err)
		}
	}

	if debug {
		w, err := prefabs.NewWatcher("prefabs", "levels")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) newScheduler(tuning prefabs.Tuning, sounds system.SoundPlayer) *ecs.Scheduler {
	systems := []ecs.System{system.NewInputSystem()}
	systems = append(systems, system.Gameplay(system.LoadUnlockRule(tuning.FinalDoor))...)
	systems = append(systems, system.NewAudioSystem(sounds))
	for _, s := range systems {
		if ps, ok := s.(*system.PlayerSystem); ok {
			g.render.Physics = ps
		}
	}
	return ecs.NewScheduler(systems...)
}

func (g *Game) Update() error {
	g.pollWatcher()

	w := g.levels.World()
	if w == nil {
		return nil
	}
	g.scheduler.Update(w)

	if w.Input.Restart.Pressed() {
		if _, err := g.levels.Reload(); err != nil {
			log.Printf("restart: %v", err)
		}
		return nil
	}
	if req, ok := w.TakeLevelChange(); ok {
		if _, err := g.levels.Apply(req); err != nil {
			log.Printf("level change %q -> %q: %v", req.FromLevel, req.TargetLevel, err)
		}
	}
	return nil
}

// pollWatcher applies pending file edits without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change := <-g.watcher.Events:
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	if change.Kind == prefabs.ChangeLevel {
		id := change.LevelID()
		if id != g.levels.Current() {
			return
		}
		if _, err := g.levels.Reload(); err != nil {
			log.Printf("reload level %q: %v", id, err)
			return
		}
		log.Printf("reloaded level %q", id)
		return
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("reload tuning: %v", err)
		return
	}
	g.tuning = tuning
	g.levels.SetTuning(tuning)
	g.scheduler = g.newScheduler(tuning, assets.NewSounds(tuning.Audio))
	if _, err := g.levels.Reload(); err != nil && !errors.Is(err, system.ErrLevelUnavailable) {
		log.Printf("reload level after tuning change: %v", err)
		return
	}
	log.Printf("reloaded tuning from %s", filepath.Base(change.Path))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.levels.World(), screen)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
