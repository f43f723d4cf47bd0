package system

import (
	"errors"
	"testing"

	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

func TestLevelManagerLoad(t *testing.T) {
	m := NewLevelManager(prefabs.DefaultTuning(), nil)
	w, err := m.Load("h")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	if m.World() != w || m.Current() != "h" || m.Loads() != 1 {
		t.Fatalf("manager did not adopt the hub world")
	}

	cases := []struct {
		name   string
		id     string
		stub   func(string) (*levels.Layout, error)
		target error
	}{
		{"missing_file", "nope", nil, ErrLevelUnavailable},
		{"malformed_device", "bad", func(string) (*levels.Layout, error) {
			return &levels.Layout{Width: 1, Height: 1, Tiles: [][]levels.Tile{{{Kind: levels.KindEmitterOn}}}}, nil
		}, levels.ErrMalformedLevelFile},
		{"parse_error", "bad", func(string) (*levels.Layout, error) {
			return levels.Parse("2,2\n_,_\n")
		}, levels.ErrMalformedLevelFile},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m.load = levels.Load
			if c.stub != nil {
				m.load = c.stub
			}
			if _, err := m.Load(c.id); !errors.Is(err, c.target) {
				t.Fatalf("expected %v, got %v", c.target, err)
			}
			if m.World() != w || m.Current() != "h" {
				t.Fatalf("failed load must keep the current world")
			}
		})
	}
}

func TestLevelManagerProgressSurvivesLoads(t *testing.T) {
	m := NewLevelManager(prefabs.DefaultTuning(), nil)
	w, err := m.Load("1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w.Player.Rect = w.Key.Rect
	NewKeySystem().Update(w)
	if !m.Progress().Keys[0] {
		t.Fatalf("key 1 should be recorded in progress")
	}

	if _, err := m.Load("h"); err != nil {
		t.Fatalf("load hub: %v", err)
	}
	w, err = m.Reload()
	if err != nil || m.Current() != "h" {
		t.Fatalf("reload: %v", err)
	}
	w, err = m.Apply(component.LevelChangeRequest{TargetLevel: "1"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !w.Key.Collected() {
		t.Fatalf("key should stay collected after returning to level 1")
	}
	if m.Loads() != 4 {
		t.Fatalf("expected 4 loads, got %d", m.Loads())
	}
}

func TestLevelManagerCarriesInput(t *testing.T) {
	m := NewLevelManager(prefabs.DefaultTuning(), nil)
	w, err := m.Load("h")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w.Input.Interact.Set(true)
	w, err = m.Load("1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w.Input.Interact.Set(true)
	if w.Input.Interact.Pressed() {
		t.Fatalf("a held interact key must not count as a new press after a level change")
	}
}

func TestLevelManagerReloadWithoutLevel(t *testing.T) {
	m := NewLevelManager(prefabs.DefaultTuning(), nil)
	if _, err := m.Reload(); !errors.Is(err, ErrLevelUnavailable) {
		t.Fatalf("expected ErrLevelUnavailable, got %v", err)
	}
	if _, err := m.Apply(component.LevelChangeRequest{}); !errors.Is(err, ErrLevelUnavailable) {
		t.Fatalf("expected ErrLevelUnavailable for empty request, got %v", err)
	}
}
