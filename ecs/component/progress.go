package component

import "image"

// Progress survives level reloads: collected keys and save-station spawns.
type Progress struct {
	Keys           [4]bool
	SpawnOverrides map[string]image.Point
}

func NewProgress() *Progress {
	return &Progress{SpawnOverrides: make(map[string]image.Point)}
}

func (p *Progress) KeyCount() int {
	n := 0
	for _, k := range p.Keys {
		if k {
			n++
		}
	}
	return n
}

// KeyIndex maps a level identifier to its key slot, or -1 for levels
// without a tracked key.
func KeyIndex(levelID string) int {
	switch levelID {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	case "4":
		return 3
	}
	return -1
}

func (p *Progress) SetSpawn(levelID string, cell image.Point) {
	if p.SpawnOverrides == nil {
		p.SpawnOverrides = make(map[string]image.Point)
	}
	p.SpawnOverrides[levelID] = cell
}
