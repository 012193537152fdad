// Package session is the host-side state machine around a run: the setup
// form, start, pause and reset triggers, the transient error line and the
// sound settings. It is shared by the desktop and terminal hosts and has no
// I/O of its own.
package session

import (
	"fmt"
	"strconv"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
)

const DefaultErrorFrames = 180

type Options struct {
	Limits       params.Limits
	Layout       physics.Layout
	ErrorFrames  int
	SoundEnabled bool
	Volume       float64
}

// Session owns the current run. State is nil until the form has been
// accepted.
type Session struct {
	Form  Form
	State *physics.State

	SoundOn bool
	Volume  float64

	validator   *params.Validator
	layout      physics.Layout
	errorFrames int
	errMsg      string
	errTimer    int
	params      params.Set
}

func New(opts Options) *Session {
	frames := opts.ErrorFrames
	if frames <= 0 {
		frames = DefaultErrorFrames
	}
	return &Session{
		Form:        NewForm(),
		SoundOn:     opts.SoundEnabled,
		Volume:      clamp01(opts.Volume),
		validator:   params.NewValidator(opts.Limits),
		layout:      opts.Layout,
		errorFrames: frames,
	}
}

func (s *Session) Limits() params.Limits { return s.validator.Limits() }

func (s *Session) Phase() physics.Phase {
	if s.State == nil {
		return physics.Setup
	}
	return s.State.Phase
}

func (s *Session) Started() bool { return s.State != nil }

// Params returns the accepted parameters of the current run.
func (s *Session) Params() params.Set { return s.params }

// Start validates the form and, only if every rule passes, starts a run.
// On failure the session stays in Setup and shows the error message for
// ErrorFrames frames.
func (s *Session) Start() error {
	v := s.Form.Values()
	set, err := s.validator.Validate(v[0], v[1], v[2], v[3])
	if err != nil {
		s.errMsg = params.Message(err)
		s.errTimer = s.errorFrames
		return err
	}
	s.commit(set)
	return nil
}

// StartWith fills the form with values and starts.
func (s *Session) StartWith(values [4]string) error {
	s.Form.Fill(values)
	return s.Start()
}

func (s *Session) commit(set params.Set) {
	s.params = set
	s.errMsg, s.errTimer = "", 0
	if s.State == nil {
		s.State = physics.New(set, s.layout)
		return
	}
	s.State.Reset(set)
}

// Restart runs the accepted parameters again from the start layout.
func (s *Session) Restart() {
	if s.State != nil {
		s.State.Reset(s.params)
	}
}

// TogglePause flips pause; it has no effect before a run has started.
func (s *Session) TogglePause() {
	if s.State == nil {
		return
	}
	s.State.SetPaused(s.State.Phase == physics.Running)
}

// Reset drops the run and returns to an empty form.
func (s *Session) Reset() {
	s.State = nil
	s.params = params.Set{}
	s.errMsg, s.errTimer = "", 0
	s.Form.Clear()
}

func (s *Session) ToggleSound() { s.SoundOn = !s.SoundOn }

func (s *Session) SetVolume(v float64) { s.Volume = clamp01(v) }

// Error returns the message currently on display, if any.
func (s *Session) Error() string { return s.errMsg }

// FrameResult is what a host needs after advancing one frame.
type FrameResult struct {
	physics.TickEvents
	PlaySound bool
}

// Frame advances one rendered frame: ticks the run if it is running and
// ages the error message.
func (s *Session) Frame() FrameResult {
	var res FrameResult
	if s.State != nil && s.State.Phase == physics.Running {
		res.TickEvents = s.State.Tick()
		res.PlaySound = res.Collided && s.SoundOn
	}

	if s.errTimer > 0 {
		s.errTimer--
		if s.errTimer == 0 {
			s.errMsg = ""
		}
	}
	return res
}

// ObjectLine is the info line shown for body n while a run is on screen.
func ObjectLine(n int, b physics.Body) string {
	return fmt.Sprintf("Object %d | Mass: %s | Velocity: %.2f", n, strconv.FormatFloat(b.Mass, 'f', -1, 64), b.Velocity)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
