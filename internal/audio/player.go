// Package audio plays the collision sound. Backends own their output
// callbacks; callers only trigger playback and adjust volume.
package audio

import "math"

const (
	SampleRate = 44100
	BufferSize = 1024
)

type Player interface {
	Play()
	SetVolume(v float64)
	Close() error
}

// Nop is used when no audio device is available.
type Nop struct{}

func (Nop) Play()             {}
func (Nop) SetVolume(float64) {}
func (Nop) Close() error      { return nil }

// Clamp limits a volume to [0, 1].
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Gain converts a linear volume in [0, 1] to an exponent of base 2 as used
// by beep's effects.Volume. Silent reports a volume of zero.
func Gain(v float64) (gain float64, silent bool) {
	v = Clamp(v)
	if v == 0 {
		return 0, true
	}
	return math.Log2(v), false
}
