package component

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Horizontal reports whether the direction runs along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Reflect returns the direction a beam travelling in d leaves a mirror of
// type m. Forward is "/", Backward is "\".
func Reflect(d Direction, m MirrorType) Direction {
	if m == MirrorForward {
		switch d {
		case DirRight:
			return DirUp
		case DirUp:
			return DirRight
		case DirLeft:
			return DirDown
		case DirDown:
			return DirLeft
		}
		return DirNone
	}
	switch d {
	case DirRight:
		return DirDown
	case DirDown:
		return DirRight
	case DirLeft:
		return DirUp
	case DirUp:
		return DirLeft
	}
	return DirNone
}
