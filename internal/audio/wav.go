package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// The speaker is shared by every WAV player. It is opened by the first
// OpenWAV and closed when the last player is closed.
var (
	speakerMu    sync.Mutex
	speakerRate  beep.SampleRate
	speakerUsers int

	speakerInit  = speaker.Init
	speakerClose = speaker.Close
)

// acquireSpeaker registers a player, (re)initializing the speaker when it is
// closed or running at another rate.
func acquireSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerUsers == 0 || speakerRate != rate {
		if err := speakerInit(rate, rate.N(time.Second/20)); err != nil {
			return err
		}
		speakerRate = rate
	}
	speakerUsers++
	return nil
}

func releaseSpeaker() {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerUsers == 0 {
		return
	}
	speakerUsers--
	if speakerUsers == 0 {
		speakerClose()
		speakerRate = 0
	}
}

// WAV plays a decoded sound file from memory through beep's speaker.
type WAV struct {
	buffer *beep.Buffer

	mu     sync.Mutex
	volume float64
	closed bool
}

// LoadWAV decodes path into memory.
func LoadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func OpenWAV(path string) (*WAV, error) {
	buffer, err := LoadWAV(path)
	if err != nil {
		return nil, err
	}
	if err := acquireSpeaker(buffer.Format().SampleRate); err != nil {
		return nil, fmt.Errorf("speaker: %w", err)
	}
	return &WAV{buffer: buffer, volume: 1}, nil
}

func (w *WAV) Play() {
	w.mu.Lock()
	gain, silent := Gain(w.volume)
	closed := w.closed
	w.mu.Unlock()
	if silent || closed {
		return
	}

	speaker.Play(&effects.Volume{
		Streamer: w.buffer.Streamer(0, w.buffer.Len()),
		Base:     2,
		Volume:   gain,
	})
}

func (w *WAV) SetVolume(v float64) {
	w.mu.Lock()
	w.volume = Clamp(v)
	w.mu.Unlock()
}

// Close releases the shared speaker. Closing twice is a no-op.
func (w *WAV) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	releaseSpeaker()
	return nil
}
