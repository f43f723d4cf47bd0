package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning holds the gameplay constants shared by the level compiler and the
// per-tick systems.
type Tuning struct {
	TileSize   float64       `yaml:"tile_size"`
	StartLevel string        `yaml:"start_level"`
	Beam       BeamSpec      `yaml:"beam"`
	Receptor   ReceptorSpec  `yaml:"receptor"`
	Door       DoorSpec      `yaml:"door"`
	Mirror     MirrorSpec    `yaml:"mirror"`
	Player     PlayerSpec    `yaml:"player"`
	Key        KeySpec       `yaml:"key"`
	FinalDoor  FinalDoorSpec `yaml:"final_door"`
	Audio      []AudioSpec   `yaml:"audio"`
}

type BeamSpec struct {
	GrowStep    float64 `yaml:"grow_step"`
	Thickness   float64 `yaml:"thickness"`
	LightStride float64 `yaml:"light_stride"`
	LightRadius float64 `yaml:"light_radius"`
	Reflect     bool    `yaml:"reflect"`
}

type ReceptorSpec struct {
	ActivationMargin float64 `yaml:"activation_margin"`
}

type DoorSpec struct {
	HitboxMargin float64 `yaml:"hitbox_margin"`
	DelayFrames  int     `yaml:"delay_frames"`
}

type MirrorSpec struct {
	Size         float64 `yaml:"size"`
	HitboxMargin float64 `yaml:"hitbox_margin"`
}

type PlayerSpec struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type KeySpec struct {
	Size float64 `yaml:"size"`
}

type FinalDoorSpec struct {
	Script      string `yaml:"script"`
	Destination string `yaml:"destination"`
}

type AudioSpec struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
	Millis    int     `yaml:"millis"`
	Volume    float64 `yaml:"volume"`
}

// DefaultTuning mirrors tuning.yaml and is used when the file cannot be read.
func DefaultTuning() Tuning {
	return Tuning{
		TileSize:   32,
		StartLevel: "h",
		Beam: BeamSpec{
			GrowStep:    1,
			Thickness:   6,
			LightStride: 16,
			LightRadius: 24,
		},
		Receptor:  ReceptorSpec{ActivationMargin: 2},
		Door:      DoorSpec{HitboxMargin: 8, DelayFrames: 45},
		Mirror:    MirrorSpec{Size: 24, HitboxMargin: 8},
		Player:    PlayerSpec{Speed: 2.5, Width: 20, Height: 20, Mass: 1},
		Key:       KeySpec{Size: 16},
		FinalDoor: FinalDoorSpec{Script: "final_door.tengo", Destination: "end"},
	}
}

// LoadTuning reads tuning.yaml and fills any zero values from DefaultTuning.
func LoadTuning() (Tuning, error) {
	spec, err := LoadSpec[Tuning]("tuning.yaml")
	if err != nil {
		return DefaultTuning(), err
	}
	return spec.withDefaults(), nil
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.TileSize <= 0 {
		t.TileSize = d.TileSize
	}
	if t.StartLevel == "" {
		t.StartLevel = d.StartLevel
	}
	if t.Beam.GrowStep <= 0 {
		t.Beam.GrowStep = d.Beam.GrowStep
	}
	if t.Beam.Thickness <= 0 {
		t.Beam.Thickness = d.Beam.Thickness
	}
	if t.Beam.LightStride <= 0 {
		t.Beam.LightStride = d.Beam.LightStride
	}
	if t.Beam.LightRadius <= 0 {
		t.Beam.LightRadius = d.Beam.LightRadius
	}
	if t.Receptor.ActivationMargin <= 0 {
		t.Receptor.ActivationMargin = d.Receptor.ActivationMargin
	}
	if t.Door.HitboxMargin <= 0 {
		t.Door.HitboxMargin = d.Door.HitboxMargin
	}
	if t.Door.DelayFrames <= 0 {
		t.Door.DelayFrames = d.Door.DelayFrames
	}
	if t.Mirror.Size <= 0 {
		t.Mirror.Size = d.Mirror.Size
	}
	if t.Mirror.HitboxMargin <= 0 {
		t.Mirror.HitboxMargin = d.Mirror.HitboxMargin
	}
	if t.Player.Speed <= 0 {
		t.Player.Speed = d.Player.Speed
	}
	if t.Player.Width <= 0 || t.Player.Height <= 0 {
		t.Player.Width, t.Player.Height = d.Player.Width, d.Player.Height
	}
	if t.Player.Mass <= 0 {
		t.Player.Mass = d.Player.Mass
	}
	if t.Key.Size <= 0 {
		t.Key.Size = d.Key.Size
	}
	if t.FinalDoor.Script == "" {
		t.FinalDoor.Script = d.FinalDoor.Script
	}
	if t.FinalDoor.Destination == "" {
		t.FinalDoor.Destination = d.FinalDoor.Destination
	}
	return t
}
