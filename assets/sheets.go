package assets

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/adumbration/adumbration/ecs/component"
)

var floorLabels = []string{"", "1", "2", "3", "4", "m", "g", "e", "z", "T", "t"}

type edges struct {
	up, down, left, right bool
}

// Wall sheet cells keyed by position: which sides face floor.
var wallEdges = map[image.Point]edges{
	{X: 1, Y: 2}: {up: true},
	{X: 1, Y: 0}: {down: true},
	{X: 2, Y: 1}: {left: true},
	{X: 0, Y: 1}: {right: true},
	{X: 0, Y: 0}: {down: true, right: true},
	{X: 2, Y: 0}: {down: true, left: true},
	{X: 0, Y: 2}: {up: true, right: true},
	{X: 2, Y: 2}: {up: true, left: true},
	{X: 3, Y: 0}: {up: true, down: true},
	{X: 3, Y: 1}: {left: true, right: true},
	{X: 3, Y: 2}: {up: true, down: true, left: true, right: true},
}

// Wall sheet cells for diagonal-only floor: the corner that gets a notch.
var wallCorners = map[image.Point]image.Point{
	{X: 4, Y: 0}: {X: 1, Y: 1},
	{X: 5, Y: 0}: {X: 0, Y: 1},
	{X: 4, Y: 1}: {X: 1, Y: 0},
	{X: 5, Y: 1}: {X: 0, Y: 0},
}

// GenerateSheet draws the placeholder art for a sheet. ok is false for
// unknown sheet names.
func GenerateSheet(name string, tileSize int, pal Palette) (*image.RGBA, bool) {
	cells, ok := component.SheetCells[name]
	if !ok || tileSize <= 0 {
		return nil, false
	}
	img := image.NewRGBA(image.Rect(0, 0, cells.X*tileSize, cells.Y*tileSize))
	for row := 0; row < cells.Y; row++ {
		for col := 0; col < cells.X; col++ {
			r := image.Rect(col*tileSize, row*tileSize, (col+1)*tileSize, (row+1)*tileSize)
			drawCell(img, name, col, row, r, pal)
		}
	}
	return img, true
}

func drawCell(img *image.RGBA, sheet string, col, row int, r image.Rectangle, pal Palette) {
	ts := r.Dx()
	edge := max(2, ts/10)

	switch sheet {
	case component.SheetWalls:
		fill(img, r, pal.Color("wall"))
		cell := image.Pt(col, row)
		if e, ok := wallEdges[cell]; ok {
			c := pal.Color("wall_edge")
			if e.up {
				fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+edge), c)
			}
			if e.down {
				fill(img, image.Rect(r.Min.X, r.Max.Y-edge, r.Max.X, r.Max.Y), c)
			}
			if e.left {
				fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+edge, r.Max.Y), c)
			}
			if e.right {
				fill(img, image.Rect(r.Max.X-edge, r.Min.Y, r.Max.X, r.Max.Y), c)
			}
		}
		if corner, ok := wallCorners[cell]; ok {
			x := r.Min.X + corner.X*(ts-2*edge)
			y := r.Min.Y + corner.Y*(ts-2*edge)
			fill(img, image.Rect(x, y, x+2*edge, y+2*edge), pal.Color("wall_edge"))
		}
	case component.SheetFloors:
		fill(img, r, pal.Color("floor"))
		dot := pal.Color("floor_detail")
		fill(img, image.Rect(r.Min.X+ts/4, r.Min.Y+ts/4, r.Min.X+ts/4+2, r.Min.Y+ts/4+2), dot)
		fill(img, image.Rect(r.Max.X-ts/4, r.Max.Y-ts/4, r.Max.X-ts/4+2, r.Max.Y-ts/4+2), dot)
		if col < len(floorLabels) && floorLabels[col] != "" {
			label(img, r, floorLabels[col], pal.Color("decal"))
		}
	case component.SheetDoors:
		colors := []string{"level_door", "final_door", "channel_door"}
		c := pal.Color(colors[min(row, len(colors)-1)])
		open := col == 3 || (row == 2 && col == 1)
		if open {
			fill(img, r, pal.Color("floor"))
			border(img, r, edge, c)
			return
		}
		fill(img, r, c)
		border(img, r, edge, pal.Color("wall"))
		if row == 1 {
			for i := 0; i < 2; i++ {
				pip := pal.Color("wall")
				if i < col {
					pip = pal.Color("key")
				}
				x := r.Min.X + ts/3 + i*ts/3 - edge
				fill(img, image.Rect(x, r.Min.Y+ts/2-edge, x+2*edge, r.Min.Y+ts/2+edge), pip)
			}
		}
	case component.SheetEmitter, component.SheetReceptor:
		base, lens := "emitter", "lens"
		if row == 1 {
			base = "emitter_off"
		}
		if sheet == component.SheetReceptor {
			base, lens = "receptor", "wall_edge"
			if row == 1 {
				lens = "receptor_on"
			}
		}
		fill(img, r, pal.Color(base))
		border(img, r, 1, pal.Color("wall"))
		fill(img, facing(r, col, ts/4), pal.Color(lens))
	case component.SheetMirror:
		c := pal.Color("mirror")
		for i := 2; i < ts-2; i++ {
			y := r.Max.Y - 1 - i
			if col == 1 {
				y = r.Min.Y + i
			}
			fill(img, image.Rect(r.Min.X+i-1, y-1, r.Min.X+i+2, y+2), c)
		}
		if row == 1 {
			border(img, r, edge, pal.Color("mirror_frame"))
		}
	case component.SheetKey:
		c := pal.Color("key")
		cx, cy := r.Min.X+ts/2, r.Min.Y+ts/2
		circle(img, cx-ts/8, cy, ts/6, c)
		fill(img, image.Rect(cx-ts/8, cy-1, cx+ts/3, cy+2), c)
		fill(img, image.Rect(cx+ts/4, cy, cx+ts/4+2, cy+ts/6), c)
	case component.SheetSaveStation:
		c := pal.Color("save_station")
		if col == 1 {
			c = pal.Color("save_flash")
		}
		fill(img, r, pal.Color("floor"))
		fill(img, r.Inset(ts/6), c)
		border(img, r.Inset(ts/6), 1, pal.Color("wall_edge"))
	case component.SheetPlayer:
		circle(img, r.Min.X+ts/2, r.Min.Y+ts/2, ts/2-2, pal.Color("player"))
	default:
		log.Printf("assets: no placeholder art for sheet %q", sheet)
	}
}

// facing returns the strip of r on the side selected by a direction column
// (up, down, left, right).
func facing(r image.Rectangle, col, depth int) image.Rectangle {
	switch col {
	case 0:
		return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+depth)
	case 1:
		return image.Rect(r.Min.X, r.Max.Y-depth, r.Max.X, r.Max.Y)
	case 2:
		return image.Rect(r.Min.X, r.Min.Y, r.Min.X+depth, r.Max.Y)
	default:
		return image.Rect(r.Max.X-depth, r.Min.Y, r.Max.X, r.Max.Y)
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func border(img *image.RGBA, r image.Rectangle, w int, c color.RGBA) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func circle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
}

func label(img *image.RGBA, r image.Rectangle, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(s).Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()+basicfont.Face7x13.Ascent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}
