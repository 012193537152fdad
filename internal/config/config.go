package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/session"
)

const (
	DefaultViewportHeight = 670
	DefaultTickRate       = 60
	DefaultTicks          = 1200
	DefaultVolume         = 0.5
	DefaultSoundFile      = "sounds/collision.wav"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	ViewportWidth  float64     `yaml:"viewport_width"`
	ViewportHeight float64     `yaml:"viewport_height"`
	StartA         float64     `yaml:"start_a"`
	StartB         float64     `yaml:"start_b"`
	MinMass        float64     `yaml:"min_mass"`
	MaxVelocity    float64     `yaml:"max_velocity"`
	MinRadius      float64     `yaml:"min_radius"`
	MaxRadius      float64     `yaml:"max_radius"`
	TickRate       int         `yaml:"tick_rate"`
	Step           float64     `yaml:"step"`
	Ticks          int         `yaml:"ticks"`
	ErrorFrames    int         `yaml:"error_frames"`
	Sound          SoundConfig `yaml:"sound"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	File    string  `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		ViewportWidth:  physics.DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		StartA:         physics.DefaultStartA,
		StartB:         physics.DefaultStartB,
		MinMass:        params.DefaultMinMass,
		MaxVelocity:    params.DefaultMaxVelocity,
		MinRadius:      physics.DefaultMinRadius,
		MaxRadius:      physics.DefaultMaxRadius,
		TickRate:       DefaultTickRate,
		Step:           physics.DefaultStep,
		Ticks:          DefaultTicks,
		ErrorFrames:    session.DefaultErrorFrames,
		Sound: SoundConfig{
			Enabled: true,
			Volume:  DefaultVolume,
			File:    DefaultSoundFile,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if !(c.MaxVelocity > 0) {
		return fmt.Errorf("%w: max_velocity must be positive, got %v", ErrInvalidConfig, c.MaxVelocity)
	}
	if c.MinMass < 0 {
		return fmt.Errorf("%w: min_mass must not be negative, got %v", ErrInvalidConfig, c.MinMass)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("%w: sound.volume must be within [0, 1], got %v", ErrInvalidConfig, c.Sound.Volume)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Limits() params.Limits {
	return params.Limits{MinMass: c.MinMass, MaxVelocity: c.MaxVelocity}
}

func (c *Config) Layout() physics.Layout {
	return physics.Layout{
		StartA:        c.StartA,
		StartB:        c.StartB,
		ViewportWidth: c.ViewportWidth,
		MinRadius:     c.MinRadius,
		MaxRadius:     c.MaxRadius,
		Step:          c.Step,
	}
}

func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Limits:       c.Limits(),
		Layout:       c.Layout(),
		ErrorFrames:  c.ErrorFrames,
		SoundEnabled: c.Sound.Enabled,
		Volume:       c.Sound.Volume,
	}
}
