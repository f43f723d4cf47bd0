package entity

import (
	"image"

	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/levels"
)

// Neighbors records which of the eight surrounding cells are floor-class.
type Neighbors struct {
	Up, Down, Left, Right                bool
	UpLeft, UpRight, DownLeft, DownRight bool
}

func NeighborsAt(layout *levels.Layout, x, y int) Neighbors {
	floor := func(dx, dy int) bool {
		return layout.At(x+dx, y+dy).Kind.FloorClass()
	}
	return Neighbors{
		Up:        floor(0, -1),
		Down:      floor(0, 1),
		Left:      floor(-1, 0),
		Right:     floor(1, 0),
		UpLeft:    floor(-1, -1),
		UpRight:   floor(1, -1),
		DownLeft:  floor(-1, 1),
		DownRight: floor(1, 1),
	}
}

func (n Neighbors) cardinals() int {
	count := 0
	for _, b := range []bool{n.Up, n.Down, n.Left, n.Right} {
		if b {
			count++
		}
	}
	return count
}

// InferDirection picks the facing of a wall-mounted tile from its floor
// neighbors. Up wins over Down, Down over Left, Left over Right.
func InferDirection(n Neighbors) component.Direction {
	switch {
	case n.Up:
		return component.DirUp
	case n.Down:
		return component.DirDown
	case n.Left:
		return component.DirLeft
	case n.Right:
		return component.DirRight
	}
	return component.DirNone
}

// WallCell returns the walls sheet cell for a wall with the given floor
// neighbors.
func WallCell(n Neighbors) image.Point {
	switch n.cardinals() {
	case 0:
		switch {
		case n.DownRight:
			return image.Pt(4, 0)
		case n.DownLeft:
			return image.Pt(5, 0)
		case n.UpRight:
			return image.Pt(4, 1)
		case n.UpLeft:
			return image.Pt(5, 1)
		}
		return image.Pt(1, 1)
	case 1:
		switch {
		case n.Up:
			return image.Pt(1, 2)
		case n.Down:
			return image.Pt(1, 0)
		case n.Left:
			return image.Pt(2, 1)
		default:
			return image.Pt(0, 1)
		}
	case 2:
		switch {
		case n.Down && n.Right:
			return image.Pt(0, 0)
		case n.Down && n.Left:
			return image.Pt(2, 0)
		case n.Up && n.Right:
			return image.Pt(0, 2)
		case n.Up && n.Left:
			return image.Pt(2, 2)
		case n.Up && n.Down:
			return image.Pt(3, 0)
		default:
			return image.Pt(3, 1)
		}
	}
	return image.Pt(3, 2)
}

// SpriteFor returns the sprite for an entity's current state. Walls and
// floors keep the sprite chosen at compile time.
func SpriteFor(e component.Entity, tileSize int) component.Sprite {
	switch v := e.(type) {
	case *component.Floor:
		return component.CellSprite(component.SheetFloors, decalColumn(v.Decal), 0, tileSize)
	case *component.LevelDoor:
		col := 0
		if v.State == component.DoorInteracted {
			col = 3
		}
		return component.CellSprite(component.SheetDoors, col, 0, tileSize)
	case *component.FinalDoor:
		col := v.Progress
		if v.State == component.DoorInteracted {
			col = 3
		}
		return component.CellSprite(component.SheetDoors, col, 1, tileSize)
	case *component.Door:
		col := 0
		if v.Open {
			col = 1
		}
		return component.CellSprite(component.SheetDoors, col, 2, tileSize)
	case *component.Emitter:
		row := 0
		if !v.Enabled {
			row = 1
		}
		return component.CellSprite(component.SheetEmitter, dirColumn(v.Dir), row, tileSize)
	case *component.Receptor:
		row := 0
		if v.Activated {
			row = 1
		}
		return component.CellSprite(component.SheetReceptor, dirColumn(v.Dir), row, tileSize)
	case *component.Mirror:
		row := 0
		if v.Stationary {
			row = 1
		}
		return component.CellSprite(component.SheetMirror, int(v.Type), row, tileSize)
	case *component.Key:
		return component.CellSprite(component.SheetKey, 0, 0, tileSize)
	case *component.SaveStation:
		col := 0
		if v.Flash > 0 {
			col = 1
		}
		return component.CellSprite(component.SheetSaveStation, col, 0, tileSize)
	}
	if e == nil {
		return component.Sprite{}
	}
	return e.Base().Sprite
}

func dirColumn(d component.Direction) int {
	switch d {
	case component.DirDown:
		return 1
	case component.DirLeft:
		return 2
	case component.DirRight:
		return 3
	}
	return 0
}

func decalColumn(decal rune) int {
	switch decal {
	case '1', '2', '3', '4':
		return int(decal-'1') + 1
	case levels.DecalMove:
		return 5
	case levels.DecalGrab:
		return 6
	case levels.DecalInteract:
		return 7
	case levels.DecalRestart:
		return 8
	case levels.DecalRotate:
		return 9
	case levels.DecalUse:
		return 10
	}
	return 0
}
