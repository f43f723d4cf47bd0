package common

// Rect is an axis-aligned rectangle in world pixels. X/Y is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Intersects reports strict overlap. Touching edges do not count, and an empty
// rect never intersects anything.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Cell returns the tile-aligned rect for grid cell (x, y).
func Cell(x, y int, tileSize float64) Rect {
	return Rect{X: float64(x) * tileSize, Y: float64(y) * tileSize, W: tileSize, H: tileSize}
}
