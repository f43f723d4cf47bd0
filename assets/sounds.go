package assets

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/adumbration/adumbration/prefabs"
)

const SampleRate = 44100

// Tone renders a sine wave with a linear fade-out as 16-bit little-endian
// stereo PCM, the format ebiten audio players read.
func Tone(sampleRate int, freq float64, millis int, volume float64) []byte {
	n := sampleRate * millis / 1000
	if n <= 0 || freq <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * volume * fade
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}

// Sounds plays the tones described in tuning. The audio context is created on
// the first Play call.
type Sounds struct {
	specs   map[string]prefabs.AudioSpec
	ctx     *audio.Context
	players map[string]*audio.Player
}

func NewSounds(specs []prefabs.AudioSpec) *Sounds {
	s := &Sounds{
		specs:   make(map[string]prefabs.AudioSpec, len(specs)),
		players: make(map[string]*audio.Player),
	}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
	}
	return s
}

// Play starts a named sound from the beginning. Unknown names are logged.
func (s *Sounds) Play(name string) {
	if s == nil {
		return
	}
	player, ok := s.players[name]
	if !ok {
		spec, known := s.specs[name]
		if !known {
			log.Printf("assets: unknown sound %q", name)
			return
		}
		if s.ctx == nil {
			s.ctx = audio.CurrentContext()
			if s.ctx == nil {
				s.ctx = audio.NewContext(SampleRate)
			}
		}
		player = s.ctx.NewPlayerFromBytes(Tone(s.ctx.SampleRate(), spec.Frequency, spec.Millis, 1))
		player.SetVolume(spec.Volume)
		s.players[name] = player
	}
	if err := player.Rewind(); err != nil {
		log.Printf("assets: rewind %q: %v", name, err)
		return
	}
	player.Play()
}
