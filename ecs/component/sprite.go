package component

import "image"

// Sprite names a sheet and the source rectangle within it.
type Sprite struct {
	Sheet  string
	Source image.Rectangle
}

// Sheet names. Each sheet is a grid of tile-sized cells.
const (
	SheetWalls       = "walls"
	SheetFloors      = "floors"
	SheetDoors       = "doors"
	SheetEmitter     = "emitter"
	SheetReceptor    = "receptor"
	SheetMirror      = "mirror"
	SheetKey         = "key"
	SheetSaveStation = "savestation"
	SheetPlayer      = "player"
)

// SheetCells is the size of each sheet in cells.
var SheetCells = map[string]image.Point{
	SheetWalls:       {X: 6, Y: 3},
	SheetFloors:      {X: 11, Y: 1},
	SheetDoors:       {X: 4, Y: 3},
	SheetEmitter:     {X: 4, Y: 2},
	SheetReceptor:    {X: 4, Y: 2},
	SheetMirror:      {X: 2, Y: 2},
	SheetKey:         {X: 1, Y: 1},
	SheetSaveStation: {X: 2, Y: 1},
	SheetPlayer:      {X: 1, Y: 1},
}

// CellSprite returns the sprite for cell col,row of a sheet.
func CellSprite(sheet string, col, row, tileSize int) Sprite {
	return Sprite{
		Sheet:  sheet,
		Source: image.Rect(col*tileSize, row*tileSize, (col+1)*tileSize, (row+1)*tileSize),
	}
}
