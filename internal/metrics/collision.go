package metrics

import (
	"math"

	"github.com/san-kum/collide/internal/physics"
)

// MomentumError is the largest relative momentum error across exchanges.
// Walls change momentum, so only the exchange itself is measured.
type MomentumError struct {
	maxErr float64
}

func NewMomentumError() *MomentumError { return &MomentumError{} }

func (m *MomentumError) Name() string { return "momentum_error" }

func (m *MomentumError) Observe(st *physics.State, ev physics.TickEvents) {
	if !ev.Collided {
		return
	}
	x := ev.Exchange
	before := st.A.Mass*x.BeforeA + st.B.Mass*x.BeforeB
	after := st.A.Mass*x.AfterA + st.B.Mass*x.AfterB
	scale := math.Abs(st.A.Mass*x.BeforeA) + math.Abs(st.B.Mass*x.BeforeB)
	if scale == 0 {
		return
	}
	m.maxErr = math.Max(m.maxErr, math.Abs(after-before)/scale)
}

func (m *MomentumError) Value() float64 { return m.maxErr }

func (m *MomentumError) Reset() { m.maxErr = 0 }

// Counter counts ticks matching a predicate.
type Counter struct {
	name  string
	match func(physics.TickEvents) bool
	count int
}

func NewCollisions() *Counter {
	return &Counter{name: "collisions", match: func(ev physics.TickEvents) bool { return ev.Collided }}
}

func NewWallHits() *Counter {
	return &Counter{name: "wall_hits", match: func(ev physics.TickEvents) bool { return ev.WallA || ev.WallB }}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(st *physics.State, ev physics.TickEvents) {
	if c.match(ev) {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() { c.count = 0 }
