package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
)

func newState(p params.Set) *physics.State {
	return physics.New(p, physics.DefaultLayout())
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	st := newState(params.Set{Mass1: 2, Mass2: 1, Velocity1: 3, Velocity2: -4})

	m.Observe(st, physics.TickEvents{})
	expected := 0.5*2*9 + 0.5*1*16
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift_ElasticRun(t *testing.T) {
	m := NewEnergyDrift()
	st := newState(params.Set{Mass1: 3, Mass2: 1, Velocity1: 4, Velocity2: -7})

	for i := 0; i < 5000; i++ {
		ev := st.Tick()
		m.Observe(st, ev)
	}
	if m.Value() > 1e-9 {
		t.Errorf("energy drift %g, want rounding noise only", m.Value())
	}
}

func TestMomentumError(t *testing.T) {
	m := NewMomentumError()
	st := newState(params.Set{Mass1: 3, Mass2: 1, Velocity1: 4, Velocity2: 0})

	m.Observe(st, physics.TickEvents{})
	if m.Value() != 0 {
		t.Error("ticks without a collision must be ignored")
	}

	m.Observe(st, physics.TickEvents{
		Collided: true,
		Exchange: physics.ExchangeEvent{BeforeA: 4, BeforeB: 0, AfterA: 2, AfterB: 5},
	})
	if math.Abs(m.Value()-1.0/12) > 1e-12 {
		t.Errorf("momentum error = %v, want 1/12", m.Value())
	}

	m.Reset()
	for i := 0; i < 1000; i++ {
		m.Observe(st, st.Tick())
	}
	if m.Value() > 1e-12 {
		t.Errorf("exchange momentum error %g", m.Value())
	}
}

func TestCounters(t *testing.T) {
	collisions, walls := NewCollisions(), NewWallHits()
	events := []physics.TickEvents{
		{Collided: true},
		{WallA: true},
		{WallA: true, WallB: true},
		{},
	}
	for _, ev := range events {
		collisions.Observe(nil, ev)
		walls.Observe(nil, ev)
	}

	if collisions.Value() != 1 || collisions.Name() != "collisions" {
		t.Errorf("collisions = %v", collisions.Value())
	}
	if walls.Value() != 2 || walls.Name() != "wall_hits" {
		t.Errorf("wall hits = %v", walls.Value())
	}

	walls.Reset()
	if walls.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
