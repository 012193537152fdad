package sim

import (
	"fmt"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
)

type Observer interface {
	OnTick(st *physics.State, ev physics.TickEvents)
}

type Metric interface {
	Name() string
	Observe(st *physics.State, ev physics.TickEvents)
	Value() float64
	Reset()
}

type Config struct {
	Ticks int
	// Record keeps one Frame per tick in the result.
	Record bool
}

// Frame is a snapshot of both bodies after a tick.
type Frame struct {
	Tick      int     `json:"tick"`
	PositionA float64 `json:"xa"`
	PositionB float64 `json:"xb"`
	VelocityA float64 `json:"va"`
	VelocityB float64 `json:"vb"`
	Collided  bool    `json:"collided"`
}

func Capture(st *physics.State, ev physics.TickEvents) Frame {
	return Frame{
		Tick:      st.Ticks,
		PositionA: st.A.Position,
		PositionB: st.B.Position,
		VelocityA: st.A.Velocity,
		VelocityB: st.B.Velocity,
		Collided:  ev.Collided,
	}
}

type Result struct {
	Params     params.Set
	Frames     []Frame
	TicksTaken int
	Collisions int
	WallHits   int
	Metrics    map[string]float64
	Errors     []error
}

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
