package sim_test

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/sim"
)

type countingObserver struct {
	ticks, collisions int
}

func (c *countingObserver) OnTick(st *physics.State, ev physics.TickEvents) {
	c.ticks++
	if ev.Collided {
		c.collisions++
	}
}

func TestRunnerRun(t *testing.T) {
	r := sim.New()
	obs := &countingObserver{}
	r.AddObserver(obs)
	for _, m := range metrics.Default() {
		r.AddMetric(m)
	}

	st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 5, Velocity2: -5}, physics.DefaultLayout())
	result, err := r.Run(context.Background(), st, sim.Config{Ticks: 100, Record: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 101 {
		t.Errorf("expected 101 frames, got %d", len(result.Frames))
	}
	if result.TicksTaken != 100 || obs.ticks != 100 {
		t.Errorf("ticks = %d / %d", result.TicksTaken, obs.ticks)
	}
	if result.Collisions != 1 || obs.collisions != 1 {
		t.Errorf("collisions = %d / %d", result.Collisions, obs.collisions)
	}
	if result.Metrics["collisions"] != 1 {
		t.Errorf("collision metric = %v", result.Metrics["collisions"])
	}
	if !result.Frames[59].Collided || result.Frames[59].Tick != 59 {
		t.Errorf("frame 59 = %+v", result.Frames[59])
	}
	if result.Frames[0].PositionA != physics.DefaultStartA {
		t.Errorf("first frame must be the start layout: %+v", result.Frames[0])
	}
	if result.Params.Velocity1 != 5 {
		t.Errorf("params = %+v", result.Params)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := sim.New()
	st := physics.New(params.Set{Mass1: 1, Mass2: 1}, physics.DefaultLayout())

	for _, ticks := range []int{0, -5} {
		if _, err := r.Run(context.Background(), st, sim.Config{Ticks: ticks}); err == nil {
			t.Errorf("ticks=%d: expected error", ticks)
		}
	}

	st.SetPaused(true)
	if _, err := r.Run(context.Background(), st, sim.Config{Ticks: 10}); err == nil {
		t.Error("expected error for paused state")
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 1}, physics.DefaultLayout())
	result, err := sim.New().Run(ctx, st, sim.Config{Ticks: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if result == nil || result.TicksTaken != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestRunnerReportsNonFiniteState(t *testing.T) {
	st := physics.New(params.Set{Mass1: 1e308, Mass2: 1e308, Velocity1: 5, Velocity2: -5}, physics.DefaultLayout())
	result, err := sim.New().Run(context.Background(), st, sim.Config{Ticks: 200})
	if err != nil {
		t.Fatalf("degenerate state must not abort the run: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v", result.Errors)
	}
	var se sim.SimError
	if !errors.As(result.Errors[0], &se) || se.Tick == 0 {
		t.Errorf("unexpected error %v", result.Errors[0])
	}
	if result.TicksTaken != 200 {
		t.Errorf("ticks = %d", result.TicksTaken)
	}
}

func TestSimError(t *testing.T) {
	err := sim.SimError{Tick: 150, Message: "test error"}
	if err.Error() != "tick 150: test error" {
		t.Errorf("SimError.Error() = %q", err.Error())
	}
}

func TestSweep(t *testing.T) {
	sets := []params.Set{
		{Mass1: 1, Mass2: 1, Velocity1: 5, Velocity2: -5},
		{Mass1: 3, Mass2: 1, Velocity1: 4, Velocity2: 0},
		{Mass1: 1, Mass2: 1, Velocity1: 0, Velocity2: 0},
	}
	sw := sim.NewSweep(physics.DefaultLayout(), metrics.Default)

	results, err := sw.Run(context.Background(), sets, sim.Config{Ticks: 150})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(sets) {
		t.Fatalf("results = %d", len(results))
	}
	for i, res := range results {
		if res.Params != sets[i] {
			t.Errorf("result %d params = %+v", i, res.Params)
		}
	}
	if results[0].Collisions != 1 || results[1].Collisions != 1 || results[2].Collisions != 0 {
		t.Errorf("collisions = %d %d %d", results[0].Collisions, results[1].Collisions, results[2].Collisions)
	}
	if results[2].Metrics["wall_hits"] != 0 {
		t.Error("resting bodies must not hit walls")
	}
}
