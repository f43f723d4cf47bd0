package system

import (
	"testing"

	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

func TestGameplayRunsEveryLevel(t *testing.T) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		t.Fatalf("tuning: %v", err)
	}
	for _, name := range levels.Names() {
		t.Run(name, func(t *testing.T) {
			m := NewLevelManager(tuning, nil)
			w, err := m.Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			s := ecs.NewScheduler(Gameplay(AnyTwoKeys)...)
			w.Input.MoveX = 1
			for i := 0; i < 300; i++ {
				s.Update(w)
			}
			if w.Tick != 300 {
				t.Fatalf("expected 300 ticks, got %d", w.Tick)
			}

			walls := 0
			w.ForEach(func(_, _ int, e component.Entity) {
				if component.IsWall(e) {
					walls++
				}
			})
			if len(w.Hulls) != walls {
				t.Fatalf("expected %d hulls, got %d", walls, len(w.Hulls))
			}
			for _, b := range w.Beams {
				if b.Owner == nil && b.Parent == nil {
					t.Fatalf("unowned beam survived pruning")
				}
			}
		})
	}
}

func TestCorridorScenario(t *testing.T) {
	w := compileText(t, "4,1\n0,_,_,0\n", prefabs.DefaultTuning())
	cases := []struct {
		x    int
		kind string
		dir  component.Direction
	}{
		{0, "wall", component.DirRight},
		{1, "floor", component.DirNone},
		{2, "floor", component.DirNone},
		{3, "wall", component.DirLeft},
	}
	for _, c := range cases {
		e := w.At(c.x, 0)
		switch e.(type) {
		case *component.Wall:
			if c.kind != "wall" {
				t.Fatalf("cell %d: unexpected wall", c.x)
			}
		case *component.Floor:
			if c.kind != "floor" || e.(*component.Floor).Decal != 0 {
				t.Fatalf("cell %d: unexpected floor", c.x)
			}
		default:
			t.Fatalf("cell %d: unexpected %T", c.x, e)
		}
		if got := component.DirectionOf(e); got != c.dir {
			t.Fatalf("cell %d: direction %v, want %v", c.x, got, c.dir)
		}
	}
}
