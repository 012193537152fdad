package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
)

// Runner drives a state headlessly for a fixed number of ticks.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	return nil
}

// Run ticks st cfg.Ticks times. A state that turns non-finite is reported
// once in Result.Errors and the run continues.
func (r *Runner) Run(ctx context.Context, st *physics.State, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}
	if st.Phase != physics.Running {
		return nil, fmt.Errorf("state is %s, not running", st.Phase)
	}

	result := &Result{
		Params:  params.Set{Mass1: st.A.Mass, Mass2: st.B.Mass, Velocity1: st.A.Velocity, Velocity2: st.B.Velocity},
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	if cfg.Record {
		result.Frames = make([]Frame, 0, cfg.Ticks+1)
		result.Frames = append(result.Frames, Capture(st, physics.TickEvents{}))
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	reported := false
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		ev := st.Tick()
		result.TicksTaken++
		if ev.Collided {
			result.Collisions++
		}
		if ev.WallA {
			result.WallHits++
		}
		if ev.WallB {
			result.WallHits++
		}

		if !reported && !st.Finite() {
			result.Errors = append(result.Errors, SimError{Tick: st.Ticks, Message: "non-finite state"})
			reported = true
		}

		for _, m := range r.metrics {
			m.Observe(st, ev)
		}
		for _, obs := range r.observers {
			obs.OnTick(st, ev)
		}
		if cfg.Record {
			result.Frames = append(result.Frames, Capture(st, ev))
		}
	}

	r.collect(result)
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
