package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/collide/internal/params"
)

const (
	DefaultStartA        = 200.0
	DefaultStartB        = 800.0
	DefaultViewportWidth = 1080.0
	DefaultStep          = 1.0
)

type Phase int

const (
	Setup Phase = iota
	Running
	Paused
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Layout is the fixed geometry a run starts from. Step scales the velocity
// displacement per tick; 1 reproduces one velocity unit per frame.
type Layout struct {
	StartA        float64 `yaml:"start_a"`
	StartB        float64 `yaml:"start_b"`
	ViewportWidth float64 `yaml:"viewport_width"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	Step          float64 `yaml:"step"`
}

func DefaultLayout() Layout {
	return Layout{
		StartA:        DefaultStartA,
		StartB:        DefaultStartB,
		ViewportWidth: DefaultViewportWidth,
		MinRadius:     DefaultMinRadius,
		MaxRadius:     DefaultMaxRadius,
		Step:          DefaultStep,
	}
}

// Validate checks the layout geometry. The separation check assumes the
// largest radius either body can have, so a valid layout never starts in
// contact whatever masses are accepted later.
func (l Layout) Validate() error {
	if !(l.ViewportWidth > 0) || !(l.Step > 0) {
		return fmt.Errorf("%w: width %v, step %v", ErrInvalidLayout, l.ViewportWidth, l.Step)
	}
	if !(l.MinRadius > 0) || l.MinRadius > l.MaxRadius {
		return fmt.Errorf("%w: radius bounds [%v, %v]", ErrInvalidLayout, l.MinRadius, l.MaxRadius)
	}
	if math.Abs(l.StartA-l.StartB) < 2*l.MaxRadius {
		return fmt.Errorf("%w: |%v - %v| < %v", ErrOverlappingStart, l.StartA, l.StartB, 2*l.MaxRadius)
	}
	return nil
}

// ExchangeEvent records the velocities on either side of a collision.
type ExchangeEvent struct {
	BeforeA, BeforeB float64
	AfterA, AfterB   float64
}

// TickEvents reports what happened during one tick.
type TickEvents struct {
	Collided bool
	WallA    bool
	WallB    bool
	Exchange ExchangeEvent
}

// State is the authoritative model of a run. It is not safe for concurrent
// use; one host loop owns it and reads it only between ticks.
type State struct {
	A, B     Body
	Phase    Phase
	Debounce bool
	Ticks    int

	layout Layout
}

// New builds a running state from accepted parameters.
func New(p params.Set, layout Layout) *State {
	s := &State{layout: layout}
	s.Reset(p)
	return s
}

// Reset replaces the whole state with a fresh run of p.
func (s *State) Reset(p params.Set) {
	l := s.layout
	s.A = Body{Position: l.StartA, Velocity: p.Velocity1, Mass: p.Mass1, Radius: Radius(p.Mass1, l.MinRadius, l.MaxRadius)}
	s.B = Body{Position: l.StartB, Velocity: p.Velocity2, Mass: p.Mass2, Radius: Radius(p.Mass2, l.MinRadius, l.MaxRadius)}
	s.Phase = Running
	s.Debounce = false
	s.Ticks = 0
}

func (s *State) Layout() Layout { return s.layout }

func (s *State) Width() float64 { return s.layout.ViewportWidth }

// SetPaused toggles between Running and Paused. It does nothing in Setup.
func (s *State) SetPaused(paused bool) {
	switch {
	case s.Phase == Setup:
	case paused:
		s.Phase = Paused
	default:
		s.Phase = Running
	}
}

// Overlapping reports whether the bodies are currently in contact.
func (s *State) Overlapping() bool {
	return math.Abs(s.A.Position-s.B.Position) < s.A.Radius+s.B.Radius
}

func (s *State) Momentum() float64 { return s.A.Momentum() + s.B.Momentum() }

func (s *State) KineticEnergy() float64 { return s.A.KineticEnergy() + s.B.KineticEnergy() }

// Finite reports whether every numeric field is finite. Extreme masses can
// legitimately drive the state to infinities or NaN.
func (s *State) Finite() bool {
	for _, v := range []float64{s.A.Position, s.A.Velocity, s.B.Position, s.B.Velocity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Tick advances the model by one step. It is a no-op unless Running.
func (s *State) Tick() TickEvents {
	var ev TickEvents
	if s.Phase != Running {
		return ev
	}

	s.A.Position += s.A.Velocity * s.layout.Step
	s.B.Position += s.B.Velocity * s.layout.Step

	ev.WallA = s.reflect(&s.A)
	ev.WallB = s.reflect(&s.B)

	overlapping := s.Overlapping()
	if overlapping && !s.Debounce {
		va, vb := s.A.Velocity, s.B.Velocity
		s.A.Velocity, s.B.Velocity = Exchange(s.A.Mass, va, s.B.Mass, vb)
		s.Debounce = true
		ev.Collided = true
		ev.Exchange = ExchangeEvent{BeforeA: va, BeforeB: vb, AfterA: s.A.Velocity, AfterB: s.B.Velocity}
	}
	if !overlapping {
		s.Debounce = false
	}

	s.Ticks++
	return ev
}

// reflect flips the velocity of a body at or beyond a wall that is still
// moving into it. Positions are never corrected, so a body may overshoot the
// boundary by up to one step.
func (s *State) reflect(b *Body) bool {
	left := b.Position <= b.Radius && b.Velocity < 0
	right := b.Position >= s.layout.ViewportWidth-b.Radius && b.Velocity > 0
	if left || right {
		b.Velocity = -b.Velocity
		return true
	}
	return false
}
