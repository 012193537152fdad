package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	toneHz    = 660.0
	toneDecay = 0.12 // seconds to fall to 1/e
	toneLen   = 0.4  // seconds until the tone is cut
)

// Synth renders a short decaying tone on a portaudio output stream. It is
// the fallback when no sound file can be played.
type Synth struct {
	stream *portaudio.Stream

	mu      sync.Mutex
	volume  float64
	playing bool
	t       float64
}

func newSynth() *Synth {
	return &Synth{volume: 1}
}

func NewSynth() (*Synth, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	s := newSynth()
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}

	s.stream = stream
	return s, nil
}

// Play restarts the tone.
func (s *Synth) Play() {
	s.mu.Lock()
	s.playing = true
	s.t = 0
	s.mu.Unlock()
}

func (s *Synth) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = Clamp(v)
	s.mu.Unlock()
}

func (s *Synth) process(out [][]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	for i := range out[0] {
		sample := 0.0
		if s.playing {
			env := math.Exp(-s.t / toneDecay)
			sample = s.volume * env * math.Sin(2*math.Pi*toneHz*s.t)
			s.t += dt
			if s.t >= toneLen {
				s.playing = false
			}
		}
		for ch := range out {
			out[ch][i] = float32(sample)
		}
	}
}

func (s *Synth) Close() error {
	if s.stream == nil {
		return nil
	}
	s.stream.Stop()
	err := s.stream.Close()
	portaudio.Terminate()
	s.stream = nil
	return err
}
