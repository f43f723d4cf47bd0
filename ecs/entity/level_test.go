package entity

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

func mustParse(t *testing.T, text string) *levels.Layout {
	t.Helper()
	layout, err := levels.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return layout
}

func TestInferDirection(t *testing.T) {
	cases := []struct {
		name string
		n    Neighbors
		want component.Direction
	}{
		{"none", Neighbors{}, component.DirNone},
		{"diagonal_only", Neighbors{DownRight: true}, component.DirNone},
		{"up", Neighbors{Up: true}, component.DirUp},
		{"up_beats_down", Neighbors{Up: true, Down: true}, component.DirUp},
		{"down_beats_left", Neighbors{Down: true, Left: true}, component.DirDown},
		{"left_beats_right", Neighbors{Left: true, Right: true}, component.DirLeft},
		{"right", Neighbors{Right: true}, component.DirRight},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InferDirection(c.n); got != c.want {
				t.Fatalf("InferDirection = %v, want %v", got, c.want)
			}
		})
	}
}

func TestWallCell(t *testing.T) {
	cases := []struct {
		name string
		n    Neighbors
		want image.Point
	}{
		{"solid", Neighbors{}, image.Pt(1, 1)},
		{"up", Neighbors{Up: true}, image.Pt(1, 2)},
		{"down", Neighbors{Down: true}, image.Pt(1, 0)},
		{"left", Neighbors{Left: true}, image.Pt(2, 1)},
		{"right", Neighbors{Right: true}, image.Pt(0, 1)},
		{"down_right", Neighbors{Down: true, Right: true}, image.Pt(0, 0)},
		{"down_left", Neighbors{Down: true, Left: true}, image.Pt(2, 0)},
		{"up_right", Neighbors{Up: true, Right: true}, image.Pt(0, 2)},
		{"up_left", Neighbors{Up: true, Left: true}, image.Pt(2, 2)},
		{"up_down", Neighbors{Up: true, Down: true}, image.Pt(3, 0)},
		{"left_right", Neighbors{Left: true, Right: true}, image.Pt(3, 1)},
		{"three", Neighbors{Up: true, Down: true, Left: true}, image.Pt(3, 2)},
		{"four", Neighbors{Up: true, Down: true, Left: true, Right: true}, image.Pt(3, 2)},
		{"corner_down_right", Neighbors{DownRight: true, UpLeft: true}, image.Pt(4, 0)},
		{"corner_down_left", Neighbors{DownLeft: true, UpRight: true}, image.Pt(5, 0)},
		{"corner_up_right", Neighbors{UpRight: true, UpLeft: true}, image.Pt(4, 1)},
		{"corner_up_left", Neighbors{UpLeft: true}, image.Pt(5, 1)},
		{"cardinal_beats_diagonal", Neighbors{Up: true, DownRight: true}, image.Pt(1, 2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WallCell(c.n); got != c.want {
				t.Fatalf("WallCell = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNeighborsOutOfBoundsAreNotFloor(t *testing.T) {
	layout := mustParse(t, "2,1\n0,_\n")
	n := NeighborsAt(layout, 0, 0)
	if n.Up || n.Down || n.Left || n.UpLeft || n.DownLeft {
		t.Fatalf("out of bounds neighbor counted as floor: %+v", n)
	}
	if !n.Right {
		t.Fatalf("expected right floor neighbor")
	}
}

func TestCompileSignalMap(t *testing.T) {
	layout := mustParse(t, "5,3\n0,E1,0,R1,0\n0,_,d1,_,0\n0,0,0,0,0\n")
	w, err := Compile("t", layout, Options{Tuning: prefabs.DefaultTuning()})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	subs := w.Channels[1]
	if len(subs) != 3 {
		t.Fatalf("expected 3 subscribers on channel 1, got %d", len(subs))
	}
	em, ok := subs[0].(*component.Emitter)
	if !ok || em.Cell != image.Pt(1, 0) {
		t.Fatalf("expected emitter first, got %T", subs[0])
	}
	if _, ok := subs[1].(*component.Receptor); !ok {
		t.Fatalf("expected receptor second, got %T", subs[1])
	}
	door, ok := subs[2].(*component.Door)
	if !ok {
		t.Fatalf("expected door third, got %T", subs[2])
	}

	if em.Dir != component.DirDown || !em.Enabled || !em.StartEnabled {
		t.Fatalf("unexpected emitter %+v", em)
	}
	if door.Dir != component.DirLeft || door.Open {
		t.Fatalf("unexpected door dir=%v open=%v", door.Dir, door.Open)
	}

	beam := em.Beam
	if beam == nil || beam.Owner != em {
		t.Fatalf("emitter should own its beam")
	}
	if beam.OriginX != 48 || beam.OriginY != 16 || beam.Length() != 0 {
		t.Fatalf("unexpected beam origin %.1f,%.1f len %.1f", beam.OriginX, beam.OriginY, beam.Length())
	}
}

func TestCompileFreeEntitiesPlaceFloor(t *testing.T) {
	layout := mustParse(t, "5,1\n/,\\,M,K,S\n")
	w, err := Compile("t", layout, Options{Tuning: prefabs.DefaultTuning()})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for x := 0; x < 5; x++ {
		if _, ok := w.At(x, 0).(*component.Floor); !ok {
			t.Fatalf("cell %d: expected floor, got %T", x, w.At(x, 0))
		}
	}
	if len(w.Mirrors) != 3 {
		t.Fatalf("expected 3 mirrors, got %d", len(w.Mirrors))
	}
	want := []struct {
		typ        component.MirrorType
		stationary bool
	}{
		{component.MirrorForward, false},
		{component.MirrorBackward, false},
		{component.MirrorForward, true},
	}
	for i, m := range w.Mirrors {
		if m.Type != want[i].typ || m.Stationary != want[i].stationary {
			t.Fatalf("mirror %d: type=%v stationary=%v", i, m.Type, m.Stationary)
		}
	}
	if w.Key == nil || w.Key.Index != -1 || w.Key.Collected() {
		t.Fatalf("unexpected key %+v", w.Key)
	}
	if w.SpawnCell != image.Pt(4, 0) {
		t.Fatalf("unexpected spawn %v", w.SpawnCell)
	}
}

func TestCompileSpawn(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		override *image.Point
		want     image.Point
	}{
		{"first_wins", "3,1\n_,S,S\n", nil, image.Pt(1, 0)},
		{"no_spawn", "2,1\n_,_\n", nil, image.Pt(0, 0)},
		{"save_override", "3,1\nS,_,s\n", &image.Point{X: 2, Y: 0}, image.Pt(2, 0)},
		{"override_out_of_bounds", "3,1\nS,_,_\n", &image.Point{X: 9, Y: 9}, image.Pt(0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			progress := component.NewProgress()
			if c.override != nil {
				progress.SetSpawn("t", *c.override)
			}
			w, err := Compile("t", mustParse(t, c.text), Options{Tuning: prefabs.DefaultTuning(), Progress: progress})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if w.SpawnCell != c.want {
				t.Fatalf("spawn = %v, want %v", w.SpawnCell, c.want)
			}
			cx, cy := w.Player.Rect.Center()
			if cx != float64(c.want.X)*32+16 || cy != float64(c.want.Y)*32+16 {
				t.Fatalf("player not centered on spawn: %.1f,%.1f", cx, cy)
			}
		})
	}
}

func TestCompileCollectedKey(t *testing.T) {
	progress := component.NewProgress()
	progress.Keys[1] = true
	layout := mustParse(t, "3,1\nK,_,K\n")

	w, err := Compile("2", layout, Options{Tuning: prefabs.DefaultTuning(), Progress: progress})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if w.Key == nil || w.Key.Index != 1 {
		t.Fatalf("expected key index 1, got %+v", w.Key)
	}
	if !w.Key.Collected() || w.Key.Cell != image.Pt(0, 0) {
		t.Fatalf("expected first key compiled collected, got %+v", w.Key)
	}

	w, err = Compile("3", layout, Options{Tuning: prefabs.DefaultTuning(), Progress: progress})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if w.Key.Collected() {
		t.Fatalf("key for level 3 should not be collected")
	}
}

func TestCompileMalformedDevice(t *testing.T) {
	cases := []struct {
		name string
		tile levels.Tile
	}{
		{"emitter_no_channel", levels.Tile{Kind: levels.KindEmitterOn}},
		{"receptor_bad_channel", levels.Tile{Kind: levels.KindReceptor, Param: 'x'}},
		{"door_no_channel", levels.Tile{Kind: levels.KindChannelDoor}},
		{"level_door_no_destination", levels.Tile{Kind: levels.KindLevelDoor}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layout := &levels.Layout{Width: 2, Height: 1, Tiles: [][]levels.Tile{{{Kind: levels.KindFloor}, c.tile}}}
			w, err := Compile("t", layout, Options{Tuning: prefabs.DefaultTuning()})
			if !errors.Is(err, levels.ErrMalformedLevelFile) {
				t.Fatalf("expected malformed error, got %v", err)
			}
			if w != nil {
				t.Fatalf("no world should be produced on error")
			}
		})
	}
}

func TestCompileNilLayout(t *testing.T) {
	if _, err := Compile("t", nil, Options{}); !errors.Is(err, ErrNilLayout) {
		t.Fatalf("expected ErrNilLayout, got %v", err)
	}
}

func describe(e component.Entity) string {
	if e == nil {
		return "nil"
	}
	b := e.Base()
	return fmt.Sprintf("%T %v %v %v %v", e, b.Cell, b.Rect, b.Sprite, component.DirectionOf(e))
}

func TestCompileIsDeterministic(t *testing.T) {
	for _, name := range levels.Names() {
		t.Run(name, func(t *testing.T) {
			layout, err := levels.Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			a, err := Compile(name, layout, Options{Tuning: prefabs.DefaultTuning()})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			b, err := Compile(name, layout, Options{Tuning: prefabs.DefaultTuning()})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if a.Width != layout.Width || a.Height != layout.Height {
				t.Fatalf("world %dx%d does not match layout %dx%d", a.Width, a.Height, layout.Width, layout.Height)
			}
			for y := 0; y < a.Height; y++ {
				for x := 0; x < a.Width; x++ {
					if da, db := describe(a.At(x, y)), describe(b.At(x, y)); da != db {
						t.Fatalf("cell (%d,%d) differs: %s vs %s", x, y, da, db)
					}
				}
			}
			if len(a.Mirrors) != len(b.Mirrors) || a.SpawnCell != b.SpawnCell {
				t.Fatalf("free entities differ")
			}
		})
	}
}

type fixedSheets map[string]image.Point

func (f fixedSheets) SheetSize(name string) (int, int, bool) {
	p, ok := f[name]
	return p.X, p.Y, ok
}

func TestSpriteForTracksState(t *testing.T) {
	em := &component.Emitter{Dir: component.DirLeft, Enabled: true}
	on := SpriteFor(em, 32)
	em.Enabled = false
	off := SpriteFor(em, 32)
	if on.Source.Min != image.Pt(64, 0) || off.Source.Min != image.Pt(64, 32) {
		t.Fatalf("unexpected emitter sprites %v %v", on.Source, off.Source)
	}

	fd := &component.FinalDoor{Progress: 2}
	if got := SpriteFor(fd, 32).Source.Min; got != image.Pt(64, 32) {
		t.Fatalf("final door progress sprite at %v", got)
	}
	fd.State = component.DoorInteracted
	if got := SpriteFor(fd, 32).Source.Min; got != image.Pt(96, 32) {
		t.Fatalf("final door open sprite at %v", got)
	}
}

func TestCompiledSpritesFitSheets(t *testing.T) {
	sheets := fixedSheets{}
	for name, cells := range component.SheetCells {
		sheets[name] = image.Pt(cells.X*32, cells.Y*32)
	}
	layout, err := levels.Load("h")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w, err := Compile("h", layout, Options{Tuning: prefabs.DefaultTuning(), Sheets: sheets})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	w.ForEach(func(x, y int, e component.Entity) {
		s := e.Base().Sprite
		sw, sh, ok := sheets.SheetSize(s.Sheet)
		if !ok {
			t.Fatalf("cell (%d,%d): unknown sheet %q", x, y, s.Sheet)
		}
		if !s.Source.In(image.Rect(0, 0, sw, sh)) {
			t.Fatalf("cell (%d,%d): sprite %v outside %q", x, y, s.Source, s.Sheet)
		}
	})
}
