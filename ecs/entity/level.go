package entity

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

var ErrNilLayout = errors.New("compile: nil layout")

// SheetSizer reports the pixel size of a sprite sheet. The compiler uses it to
// warn about sprites that fall outside their sheet.
type SheetSizer interface {
	SheetSize(name string) (w, h int, ok bool)
}

type Options struct {
	Tuning   prefabs.Tuning
	Progress *component.Progress
	Sheets   SheetSizer
}

// Compile turns a parsed layout into a runnable world. Compilation is
// deterministic: the same layout, tuning and progress always produce the same
// entities.
func Compile(id string, layout *levels.Layout, opts Options) (*ecs.World, error) {
	if layout == nil {
		return nil, ErrNilLayout
	}
	tuning := opts.Tuning
	if tuning.TileSize <= 0 {
		tuning = prefabs.DefaultTuning()
	}
	w := ecs.NewWorld(id, layout, tuning)
	if opts.Progress != nil {
		w.Progress = opts.Progress
	}

	c := compiler{world: w, layout: layout, tuning: tuning, ts: int(tuning.TileSize)}
	for y := 0; y < layout.Height; y++ {
		for x := 0; x < layout.Width; x++ {
			if err := c.place(x, y); err != nil {
				return nil, fmt.Errorf("compile %s: %w", id, err)
			}
		}
	}

	if cell, ok := w.Progress.SpawnOverrides[id]; ok && w.InBounds(cell.X, cell.Y) {
		w.SpawnCell = cell
	}
	w.Player = newPlayer(w.SpawnCell, tuning)

	if opts.Sheets != nil {
		checkSprites(w, opts.Sheets)
	}
	return w, nil
}

type compiler struct {
	world      *ecs.World
	layout     *levels.Layout
	tuning     prefabs.Tuning
	ts         int
	spawnFound bool
}

func (c *compiler) place(x, y int) error {
	tile := c.layout.At(x, y)
	cell := image.Pt(x, y)
	rect := common.Cell(x, y, c.tuning.TileSize)
	base := component.Placement{Cell: cell, Rect: rect}
	n := NeighborsAt(c.layout, x, y)
	w := c.world

	switch tile.Kind {
	case levels.KindEmpty:
		return nil
	case levels.KindWall:
		wc := WallCell(n)
		base.Sprite = component.CellSprite(component.SheetWalls, wc.X, wc.Y, c.ts)
		w.Set(x, y, &component.Wall{Placement: base, Dir: InferDirection(n)})
	case levels.KindFloor:
		c.floor(base, tile.Param)
	case levels.KindSpawn:
		c.floor(base, levels.DecalNone)
		if c.spawnFound {
			log.Printf("compile: %s: extra spawn at (%d,%d) ignored", w.LevelID, x, y)
			return nil
		}
		c.spawnFound = true
		w.SpawnCell = cell
	case levels.KindKey:
		c.floor(base, levels.DecalNone)
		if w.Key != nil {
			log.Printf("compile: %s: extra key at (%d,%d) ignored", w.LevelID, x, y)
			return nil
		}
		w.Key = c.key(base)
	case levels.KindMirrorForward, levels.KindMirrorBackward, levels.KindStationaryMirror:
		c.floor(base, levels.DecalNone)
		w.Mirrors = append(w.Mirrors, c.mirror(base, tile.Kind))
	case levels.KindEmitterOn, levels.KindEmitterOff:
		channel, err := channelOf(tile, x, y)
		if err != nil {
			return err
		}
		dir := InferDirection(n)
		cx, cy := rect.Center()
		em := &component.Emitter{
			Placement:    base,
			Channel:      channel,
			Dir:          dir,
			StartEnabled: tile.Kind == levels.KindEmitterOn,
			Enabled:      tile.Kind == levels.KindEmitterOn,
		}
		em.Beam = component.NewBeam(cx, cy, c.tuning.Beam.Thickness, dir)
		em.Beam.Owner = em
		c.device(x, y, em)
		w.Subscribe(channel, em)
	case levels.KindReceptor:
		channel, err := channelOf(tile, x, y)
		if err != nil {
			return err
		}
		r := &component.Receptor{
			Placement:  base,
			Channel:    channel,
			Dir:        InferDirection(n),
			Activation: rect.Inflate(c.tuning.Receptor.ActivationMargin),
		}
		c.device(x, y, r)
		w.Subscribe(channel, r)
	case levels.KindChannelDoor:
		channel, err := channelOf(tile, x, y)
		if err != nil {
			return err
		}
		d := &component.Door{Placement: base, Channel: channel, Dir: InferDirection(n)}
		c.device(x, y, d)
		w.Subscribe(channel, d)
	case levels.KindLevelDoor:
		dest, err := tile.Destination()
		if err != nil {
			return fmt.Errorf("%w: cell (%d,%d): %v", levels.ErrMalformedLevelFile, x, y, err)
		}
		c.device(x, y, &component.LevelDoor{
			Placement:   base,
			Dir:         InferDirection(n),
			Destination: dest,
			Hitbox:      rect.Inflate(c.tuning.Door.HitboxMargin),
		})
	case levels.KindFinalDoor:
		c.device(x, y, &component.FinalDoor{
			Placement:   base,
			Dir:         InferDirection(n),
			Destination: c.tuning.FinalDoor.Destination,
			Hitbox:      rect.Inflate(c.tuning.Door.HitboxMargin),
		})
	case levels.KindSaveStation:
		c.device(x, y, &component.SaveStation{
			Placement: base,
			Hitbox:    rect.Inflate(c.tuning.Door.HitboxMargin),
		})
	default:
		log.Printf("compile: %s: unknown tile %s at (%d,%d)", w.LevelID, tile.Kind, x, y)
	}
	return nil
}

func (c *compiler) floor(base component.Placement, decal rune) {
	f := &component.Floor{Placement: base, Decal: decal}
	f.Sprite = SpriteFor(f, c.ts)
	c.world.Set(base.Cell.X, base.Cell.Y, f)
}

func (c *compiler) device(x, y int, e component.Entity) {
	e.Base().Sprite = SpriteFor(e, c.ts)
	c.world.Set(x, y, e)
}

func (c *compiler) mirror(base component.Placement, kind levels.Kind) *component.Mirror {
	size := c.tuning.Mirror.Size
	cx, cy := base.Rect.Center()
	base.Rect = common.Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size}
	m := &component.Mirror{
		Placement:  base,
		Stationary: kind == levels.KindStationaryMirror,
		Margin:     c.tuning.Mirror.HitboxMargin,
	}
	if kind == levels.KindMirrorBackward {
		m.Type = component.MirrorBackward
	}
	m.Sprite = SpriteFor(m, c.ts)
	return m
}

func (c *compiler) key(base component.Placement) *component.Key {
	idx := component.KeyIndex(c.world.LevelID)
	cx, cy := base.Rect.Center()
	size := c.tuning.Key.Size
	base.Rect = common.Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size}
	if idx >= 0 && c.world.Progress.Keys[idx] {
		base.Rect = common.Rect{X: cx, Y: cy}
	}
	k := &component.Key{Placement: base, Index: idx}
	k.Sprite = SpriteFor(k, c.ts)
	return k
}

func channelOf(tile levels.Tile, x, y int) (int, error) {
	channel, err := tile.Channel()
	if err != nil {
		return 0, fmt.Errorf("%w: cell (%d,%d): %s: %v", levels.ErrMalformedLevelFile, x, y, tile.Kind, err)
	}
	return channel, nil
}

func newPlayer(spawn image.Point, tuning prefabs.Tuning) *component.Player {
	cx, cy := common.Cell(spawn.X, spawn.Y, tuning.TileSize).Center()
	pw, ph := tuning.Player.Width, tuning.Player.Height
	return &component.Player{Rect: common.Rect{X: cx - pw/2, Y: cy - ph/2, W: pw, H: ph}}
}

func checkSprites(w *ecs.World, sheets SheetSizer) {
	check := func(s component.Sprite) {
		sw, sh, ok := sheets.SheetSize(s.Sheet)
		if !ok {
			log.Printf("compile: %s: unknown sheet %q", w.LevelID, s.Sheet)
			return
		}
		if !s.Source.In(image.Rect(0, 0, sw, sh)) {
			log.Printf("compile: %s: sprite %v outside sheet %q", w.LevelID, s.Source, s.Sheet)
		}
	}
	w.ForEach(func(_, _ int, e component.Entity) { check(e.Base().Sprite) })
	for _, m := range w.Mirrors {
		check(m.Sprite)
	}
	if w.Key != nil {
		check(w.Key.Sprite)
	}
}
