package component

import (
	"image"

	"github.com/adumbration/adumbration/common"
)

// Entity is a placed level object. The implementations in this package form a
// closed set; systems dispatch on them with type switches.
type Entity interface {
	Base() *Placement
}

// Placement holds what every placed entity has: its grid cell, its world
// rectangle and the sprite it was compiled with.
type Placement struct {
	Cell   image.Point
	Rect   common.Rect
	Sprite Sprite
}

func (p *Placement) Base() *Placement { return p }

type Wall struct {
	Placement
	Dir Direction
}

type Floor struct {
	Placement
	Decal rune
}

// Door is a channel-gated door. It blocks light and the player while closed.
type Door struct {
	Placement
	Channel int
	Dir     Direction
	Open    bool
}

// DoorState is the interaction state shared by level and final doors.
type DoorState int

const (
	DoorIdle DoorState = iota
	DoorInteracted
)

type LevelDoor struct {
	Placement
	Dir         Direction
	Destination string
	Hitbox      common.Rect
	State       DoorState
	Timer       int
}

type FinalDoor struct {
	Placement
	Dir         Direction
	Destination string
	Hitbox      common.Rect
	State       DoorState
	Timer       int
	// Progress is the number of keys shown on the door, capped at 2.
	Progress int
	Unlocked bool
}

type Emitter struct {
	Placement
	Channel      int
	Dir          Direction
	StartEnabled bool
	Enabled      bool
	Beam         *Beam
}

type Receptor struct {
	Placement
	Channel    int
	Dir        Direction
	Activation common.Rect
	Activated  bool
}

type SaveStation struct {
	Placement
	Hitbox common.Rect
	Flash  int
}

type MirrorType int

const (
	MirrorForward MirrorType = iota
	MirrorBackward
)

func (m MirrorType) Flip() MirrorType {
	if m == MirrorForward {
		return MirrorBackward
	}
	return MirrorForward
}

// Mirror is a free entity. Stationary mirrors can be rotated but not carried.
type Mirror struct {
	Placement
	Type       MirrorType
	Stationary bool
	Margin     float64
}

// Hitbox is the interaction area around the mirror.
func (m *Mirror) Hitbox() common.Rect {
	return m.Rect.Inflate(m.Margin)
}

// Key is the level key. A collected key has a zero-area rect.
type Key struct {
	Placement
	Index int
}

func (k *Key) Collected() bool {
	return k.Rect.Empty()
}

// IsWall reports whether the entity is solid: it casts a hull, blocks the
// player, and (except for emitters) stops beams.
func IsWall(e Entity) bool {
	switch v := e.(type) {
	case *Wall, *LevelDoor, *FinalDoor, *Emitter, *Receptor:
		return true
	case *Door:
		return !v.Open
	default:
		return false
	}
}

// BlocksBeam reports whether a beam stops at the entity. Emitters never
// occlude beams.
func BlocksBeam(e Entity) bool {
	if _, ok := e.(*Emitter); ok {
		return false
	}
	return IsWall(e)
}

// DirectionOf returns the facing inferred for the entity at compile time.
func DirectionOf(e Entity) Direction {
	switch v := e.(type) {
	case *Wall:
		return v.Dir
	case *Door:
		return v.Dir
	case *LevelDoor:
		return v.Dir
	case *FinalDoor:
		return v.Dir
	case *Emitter:
		return v.Dir
	case *Receptor:
		return v.Dir
	default:
		return DirNone
	}
}
