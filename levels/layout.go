package levels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrMalformedLevelFile     = errors.New("levels: malformed level file")
	ErrUnrecognizedTileToken  = errors.New("levels: unrecognized tile token")
	errMissingTileParam       = errors.New("missing parameter")
	errUnparsableChannelParam = errors.New("channel must be a digit 0-9")
)

// Kind is the tile code, i.e. the first character of a layout token.
type Kind rune

const (
	KindEmpty            Kind = 0
	KindWall             Kind = '0'
	KindFloor            Kind = '_'
	KindSpawn            Kind = 'S'
	KindKey              Kind = 'K'
	KindMirrorForward    Kind = '/'
	KindMirrorBackward   Kind = '\\'
	KindStationaryMirror Kind = 'M'
	KindEmitterOn        Kind = 'E'
	KindEmitterOff       Kind = 'e'
	KindReceptor         Kind = 'R'
	KindLevelDoor        Kind = 'D'
	KindChannelDoor      Kind = 'd'
	KindFinalDoor        Kind = 'F'
	KindSaveStation      Kind = 's'
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	case KindSpawn:
		return "spawn"
	case KindKey:
		return "key"
	case KindMirrorForward:
		return "mirror/"
	case KindMirrorBackward:
		return "mirror\\"
	case KindStationaryMirror:
		return "stationary_mirror"
	case KindEmitterOn:
		return "emitter"
	case KindEmitterOff:
		return "emitter_off"
	case KindReceptor:
		return "receptor"
	case KindLevelDoor:
		return "level_door"
	case KindChannelDoor:
		return "channel_door"
	case KindFinalDoor:
		return "final_door"
	case KindSaveStation:
		return "save_station"
	default:
		return fmt.Sprintf("kind(%q)", rune(k))
	}
}

// NeedsChannel reports whether the kind requires a channel digit parameter.
func (k Kind) NeedsChannel() bool {
	switch k {
	case KindEmitterOn, KindEmitterOff, KindReceptor, KindChannelDoor:
		return true
	}
	return false
}

// FloorClass reports whether the player can stand on the tile. Wall sprites
// and device directions are picked by looking for floor-class neighbors.
func (k Kind) FloorClass() bool {
	switch k {
	case KindFloor, KindSpawn, KindKey, KindMirrorForward, KindMirrorBackward,
		KindStationaryMirror, KindSaveStation:
		return true
	}
	return false
}

// Floor decals.
const (
	DecalNone     rune = 0
	DecalMove     rune = 'm'
	DecalGrab     rune = 'g'
	DecalInteract rune = 'e'
	DecalRestart  rune = 'z'
	DecalRotate   rune = 'T'
	DecalUse      rune = 't'
)

func validDecal(r rune) bool {
	switch r {
	case '1', '2', '3', '4', DecalMove, DecalGrab, DecalInteract, DecalRestart, DecalRotate, DecalUse:
		return true
	}
	return false
}

// Tile is one parsed layout cell.
type Tile struct {
	Kind  Kind
	Param rune
}

// Channel parses the tile parameter as a signal channel.
func (t Tile) Channel() (int, error) {
	if t.Param == 0 {
		return 0, errMissingTileParam
	}
	if t.Param < '0' || t.Param > '9' {
		return 0, errUnparsableChannelParam
	}
	return strconv.Atoi(string(t.Param))
}

// Destination returns the level identifier of a level door.
func (t Tile) Destination() (string, error) {
	if t.Param == 0 {
		return "", errMissingTileParam
	}
	if !unicode.IsLetter(t.Param) && !unicode.IsDigit(t.Param) {
		return "", fmt.Errorf("invalid level identifier %q", t.Param)
	}
	return string(t.Param), nil
}

// Layout is the parsed level grid, indexed Tiles[y][x].
type Layout struct {
	Width    int
	Height   int
	Tiles    [][]Tile
	Warnings []error
}

// At returns the tile at x,y or an empty tile when out of bounds.
func (l *Layout) At(x, y int) Tile {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Tile{}
	}
	return l.Tiles[y][x]
}

// Degenerate reports whether the layout is the 1x1 fallback returned when a
// level file could not be read.
func (l *Layout) Degenerate() bool {
	return l == nil || (l.Width == 1 && l.Height == 1 && l.Tiles[0][0].Kind == KindEmpty)
}

func degenerateLayout() *Layout {
	return &Layout{Width: 1, Height: 1, Tiles: [][]Tile{{{}}}}
}

// Parse reads the comma separated level format: a "width,height" header
// followed by one line per row.
func Parse(text string) (*Layout, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedLevelFile)
	}

	width, height, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	rows := lines[1:]
	if len(rows) != height {
		return nil, fmt.Errorf("%w: header says %d rows, found %d", ErrMalformedLevelFile, height, len(rows))
	}

	layout := &Layout{Width: width, Height: height, Tiles: make([][]Tile, height)}
	for y, line := range rows {
		tokens := strings.Split(line, ",")
		if len(tokens) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedLevelFile, y, len(tokens), width)
		}
		row := make([]Tile, width)
		for x, raw := range tokens {
			tile, warn, err := parseToken(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %v", ErrMalformedLevelFile, x, y, err)
			}
			if warn != nil {
				layout.Warnings = append(layout.Warnings, fmt.Errorf("cell (%d,%d): %w", x, y, warn))
			}
			row[x] = tile
		}
		layout.Tiles[y] = row
	}
	return layout, nil
}

func parseHeader(line string) (int, int, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: header %q is not width,height", ErrMalformedLevelFile, line)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: header width: %v", ErrMalformedLevelFile, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: header height: %v", ErrMalformedLevelFile, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid dimensions %dx%d", ErrMalformedLevelFile, w, h)
	}
	return w, h, nil
}

// parseToken returns a fatal error for missing or bad required parameters and
// a warning for tokens it does not understand.
func parseToken(tok string) (Tile, error, error) {
	if tok == "" || utf8.RuneCountInString(tok) > 2 {
		return Tile{}, fmt.Errorf("%w %q", ErrUnrecognizedTileToken, tok), nil
	}
	runes := []rune(tok)
	tile := Tile{Kind: Kind(runes[0])}
	if len(runes) == 2 {
		tile.Param = runes[1]
	}

	switch tile.Kind {
	case KindWall, KindSpawn, KindKey, KindMirrorForward, KindMirrorBackward,
		KindStationaryMirror, KindFinalDoor, KindSaveStation:
		tile.Param = 0
	case KindFloor:
		if tile.Param != 0 && !validDecal(tile.Param) {
			warn := fmt.Errorf("%w: floor decal %q", ErrUnrecognizedTileToken, tile.Param)
			tile.Param = 0
			return tile, warn, nil
		}
	case KindEmitterOn, KindEmitterOff, KindReceptor, KindChannelDoor:
		if _, err := tile.Channel(); err != nil {
			return Tile{}, nil, fmt.Errorf("%s %q: %w", tile.Kind, tok, err)
		}
	case KindLevelDoor:
		if _, err := tile.Destination(); err != nil {
			return Tile{}, nil, fmt.Errorf("%s %q: %w", tile.Kind, tok, err)
		}
	default:
		return Tile{}, fmt.Errorf("%w %q", ErrUnrecognizedTileToken, tok), nil
	}
	return tile, nil, nil
}
