package audio

import (
	"github.com/sirupsen/logrus"

	"github.com/san-kum/collide/internal/config"
)

// Open returns the best available player for cfg: the configured sound
// file, then the synthesized tone, then Nop. Failures are logged.
func Open(cfg config.SoundConfig, log logrus.FieldLogger) Player {
	var p Player = Nop{}

	if cfg.File != "" {
		w, err := OpenWAV(cfg.File)
		if err == nil {
			log.WithField("file", cfg.File).Debug("collision sound loaded")
			p = w
		} else {
			log.WithError(err).WithField("file", cfg.File).Warn("collision sound unavailable, falling back to synth")
		}
	}

	if _, ok := p.(Nop); ok {
		s, err := NewSynth()
		if err == nil {
			p = s
		} else {
			log.WithError(err).Warn("audio output unavailable, sound disabled")
		}
	}

	p.SetVolume(cfg.Volume)
	return p
}
