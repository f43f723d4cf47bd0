package system

import "github.com/adumbration/adumbration/ecs"

// Gameplay returns the simulation systems in tick order. Input sampling runs
// before them and audio after them; both are added by the game loop.
//
// Beams grow before receptors read them, so emitters and doors react to a
// receptor in the same tick it changes. Mirrors move after beams and keys are
// checked last.
func Gameplay(rule UnlockRule) []ecs.System {
	return []ecs.System{
		NewPlayerSystem(),
		NewBeamSystem(),
		NewReceptorSystem(),
		NewSignalSystem(),
		NewDoorSystem(rule),
		NewSaveStationSystem(),
		NewMirrorSystem(),
		NewBeamPruneSystem(),
		NewKeySystem(),
		NewLightingSystem(),
	}
}
