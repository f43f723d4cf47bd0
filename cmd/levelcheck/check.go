package main

import (
	"fmt"
	"slices"
	"sort"

	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/ecs/entity"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

type report struct {
	Warnings []string
	Errors   []error
}

type checker struct {
	tuning prefabs.Tuning
	sheets entity.SheetSizer
	known  []string
}

func (c checker) check(name string) report {
	layout, err := levels.Load(name)
	if err != nil {
		return report{Errors: []error{err}}
	}
	if layout.Degenerate() {
		return report{Errors: []error{fmt.Errorf("level %q could not be read", name)}}
	}
	return c.checkLayout(name, layout)
}

func (c checker) checkLayout(name string, layout *levels.Layout) report {
	var r report
	for _, warn := range layout.Warnings {
		r.Warnings = append(r.Warnings, warn.Error())
	}

	w, err := entity.Compile(name, layout, entity.Options{Tuning: c.tuning, Sheets: c.sheets})
	if err != nil {
		r.Errors = append(r.Errors, err)
		return r
	}

	spawns := 0
	for y := 0; y < layout.Height; y++ {
		for x := 0; x < layout.Width; x++ {
			if layout.At(x, y).Kind == levels.KindSpawn {
				spawns++
			}
		}
	}
	switch {
	case spawns == 0:
		r.Warnings = append(r.Warnings, "no spawn tile, player starts at (0,0)")
	case spawns > 1:
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d spawn tiles, only the first is used", spawns))
	}

	w.ForEach(func(x, y int, e component.Entity) {
		var dest string
		switch v := e.(type) {
		case *component.LevelDoor:
			dest = v.Destination
		case *component.FinalDoor:
			dest = v.Destination
		default:
			return
		}
		if !slices.Contains(c.known, dest) {
			r.Errors = append(r.Errors, fmt.Errorf("door at (%d,%d) leads to unknown level %q", x, y, dest))
		}
		if component.DirectionOf(e) == component.DirNone {
			r.Warnings = append(r.Warnings, fmt.Sprintf("door at (%d,%d) has no floor neighbor", x, y))
		}
	})

	channels := make([]int, 0, len(w.Channels))
	for ch := range w.Channels {
		channels = append(channels, ch)
	}
	sort.Ints(channels)
	for _, ch := range channels {
		var receptors, consumers int
		for _, e := range w.Channels[ch] {
			switch e.(type) {
			case *component.Receptor:
				receptors++
			case *component.Emitter, *component.Door:
				consumers++
			}
		}
		if receptors == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("channel %d has no receptor", ch))
		}
		if consumers == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("channel %d drives nothing", ch))
		}
	}
	return r
}
