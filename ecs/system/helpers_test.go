package system

import (
	"testing"

	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/entity"
	"github.com/adumbration/adumbration/levels"
	"github.com/adumbration/adumbration/prefabs"
)

func compileText(t *testing.T, text string, tuning prefabs.Tuning) *ecs.World {
	t.Helper()
	layout, err := levels.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w, err := entity.Compile("t", layout, entity.Options{Tuning: tuning})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return w
}

func run(w *ecs.World, ticks int, systems ...ecs.System) {
	for i := 0; i < ticks; i++ {
		for _, s := range systems {
			s.Update(w)
		}
	}
}

func soundNames(w *ecs.World) []string {
	var names []string
	for _, evt := range w.Events().Drain() {
		if evt.Type == ecs.EventSound {
			names = append(names, evt.Data.(string))
		}
	}
	return names
}
