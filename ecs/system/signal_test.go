package system

import (
	"testing"

	"github.com/adumbration/adumbration/ecs/component"
	"github.com/adumbration/adumbration/prefabs"
)

func TestSignalInversionAndDoorPolarity(t *testing.T) {
	w := compileText(t, "5,2\nE1,e1,d1,R1,_\n_,_,_,_,_\n", prefabs.DefaultTuning())
	on := w.At(0, 0).(*component.Emitter)
	off := w.At(1, 0).(*component.Emitter)
	door := w.At(2, 0).(*component.Door)
	receptor := w.At(3, 0).(*component.Receptor)
	signals := NewSignalSystem()

	cases := []struct {
		name      string
		activated bool
		onEnabled bool
		offEnable bool
		doorOpen  bool
	}{
		{"inactive", false, true, false, false},
		{"active", true, false, true, true},
		{"inactive_again", false, true, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			receptor.Activated = c.activated
			signals.Update(w)
			if on.Enabled != c.onEnabled {
				t.Fatalf("start-enabled emitter Enabled = %v, want %v", on.Enabled, c.onEnabled)
			}
			if off.Enabled != c.offEnable {
				t.Fatalf("start-disabled emitter Enabled = %v, want %v", off.Enabled, c.offEnable)
			}
			if door.Open != c.doorOpen {
				t.Fatalf("door Open = %v, want %v", door.Open, c.doorOpen)
			}
		})
	}
}

func TestSignalChannelIsOrOfReceptors(t *testing.T) {
	w := compileText(t, "4,2\nR3,R3,d3,R4\n_,_,_,_\n", prefabs.DefaultTuning())
	a := w.At(0, 0).(*component.Receptor)
	b := w.At(1, 0).(*component.Receptor)
	other := w.At(3, 0).(*component.Receptor)
	door := w.At(2, 0).(*component.Door)
	signals := NewSignalSystem()

	cases := []struct {
		name     string
		a, b, c  bool
		doorOpen bool
	}{
		{"none", false, false, false, false},
		{"first", true, false, false, true},
		{"second", false, true, false, true},
		{"both", true, true, false, true},
		{"other_channel_only", false, false, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a.Activated, b.Activated, other.Activated = c.a, c.b, c.c
			signals.Update(w)
			if door.Open != c.doorOpen {
				t.Fatalf("door Open = %v, want %v", door.Open, c.doorOpen)
			}
		})
	}
	if got := ActiveChannels(w); got.Has(3) || !got.Has(4) || got.Size() != 1 {
		t.Fatalf("unexpected active channels, size %d", got.Size())
	}
}

func TestDoorOpeningPlaysSoundOnce(t *testing.T) {
	w := compileText(t, "2,2\nd1,R1\n_,_\n", prefabs.DefaultTuning())
	receptor := w.At(1, 0).(*component.Receptor)
	signals := NewSignalSystem()

	receptor.Activated = true
	signals.Update(w)
	signals.Update(w)
	if got := soundNames(w); len(got) != 1 || got[0] != "door" {
		t.Fatalf("expected a single door sound, got %v", got)
	}
}

func TestReceptorActivation(t *testing.T) {
	w := compileText(t, "4,1\nE5,_,_,R5\n", prefabs.DefaultTuning())
	receptor := w.At(3, 0).(*component.Receptor)
	beam := w.Emitters()[0].Beam
	receptors := NewReceptorSystem()
	w.AddBeam(beam)

	beam.Rect.W = 77
	receptors.Update(w)
	if receptor.Activated {
		t.Fatalf("beam short of the activation margin should not activate")
	}
	beam.Rect.W = 80
	receptors.Update(w)
	if !receptor.Activated {
		t.Fatalf("beam snapped to the receptor face should activate it")
	}
}

func TestEmitterReceptorToggle(t *testing.T) {
	w := compileText(t, "4,1\nE5,_,_,R5\n", prefabs.DefaultTuning())
	em := w.Emitters()[0]
	receptor := w.At(3, 0).(*component.Receptor)
	beams, receptors, signals := NewBeamSystem(), NewReceptorSystem(), NewSignalSystem()

	activated := false
	for i := 0; i < 200 && !activated; i++ {
		beams.Update(w)
		receptors.Update(w)
		signals.Update(w)
		activated = receptor.Activated
	}
	if !activated {
		t.Fatalf("beam never reached the receptor")
	}
	if em.Enabled {
		t.Fatalf("emitter should switch off in the same tick the receptor activates")
	}

	beams.Update(w)
	if em.Beam.Length() != 0 {
		t.Fatalf("beam from a disabled emitter should collapse, length %.1f", em.Beam.Length())
	}
}
