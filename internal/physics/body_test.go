package physics

import (
	"math"
	"math/rand"
	"testing"
)

func TestRadius(t *testing.T) {
	tests := []struct {
		mass float64
		want float64
	}{
		{1, 10},
		{3, 14},
		{0.1, 5},
		{1e-9, 4},
		{25, 34},
		{100, 45},
		{1e308, 45},
	}

	for _, tt := range tests {
		if got := Radius(tt.mass, DefaultMinRadius, DefaultMaxRadius); got != tt.want {
			t.Errorf("Radius(%v) = %v, want %v", tt.mass, got, tt.want)
		}
	}

	if got := Radius(1e-9, 6, 45); got != 6 {
		t.Errorf("lower clamp: got %v, want 6", got)
	}
}

func TestExchange_Scenario(t *testing.T) {
	va, vb := Exchange(3, 4, 1, 0)
	if va != 2 || vb != 6 {
		t.Errorf("Exchange(3,4,1,0) = (%v, %v), want (2, 6)", va, vb)
	}
}

func TestExchange_EqualMassSwap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		m := rng.Float64()*1000 + 1e-6
		v1 := rng.Float64()*40 - 20
		v2 := rng.Float64()*40 - 20
		a, b := Exchange(m, v1, m, v2)
		if a != v2 || b != v1 {
			t.Fatalf("m=%v v=(%v,%v): got (%v,%v)", m, v1, v2, a, b)
		}
	}
}

func TestExchange_ConservesMomentumAndEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		m1 := math.Pow(10, rng.Float64()*8-4)
		m2 := math.Pow(10, rng.Float64()*8-4)
		v1 := rng.Float64()*40 - 20
		v2 := rng.Float64()*40 - 20

		a, b := Exchange(m1, v1, m2, v2)

		scale := math.Abs(m1*v1) + math.Abs(m2*v2)
		if diff := math.Abs((m1*a + m2*b) - (m1*v1 + m2*v2)); diff > 1e-9*scale {
			t.Fatalf("momentum not conserved for m=(%v,%v) v=(%v,%v): diff %v", m1, m2, v1, v2, diff)
		}

		ke0 := 0.5*m1*v1*v1 + 0.5*m2*v2*v2
		ke1 := 0.5*m1*a*a + 0.5*m2*b*b
		if math.Abs(ke1-ke0) > 1e-9*ke0 {
			t.Fatalf("energy not conserved for m=(%v,%v) v=(%v,%v): %v vs %v", m1, m2, v1, v2, ke0, ke1)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Setup.String() != "setup" || Running.String() != "running" || Paused.String() != "paused" {
		t.Error("unexpected phase names")
	}
	if Phase(9).String() != "phase(9)" {
		t.Errorf("got %s", Phase(9).String())
	}
}

func TestSetPausedInSetup(t *testing.T) {
	var s State
	s.SetPaused(true)
	if s.Phase != Setup {
		t.Errorf("phase = %v, want setup", s.Phase)
	}
	if ev := s.Tick(); ev.Collided || s.Ticks != 0 {
		t.Error("tick in setup must be a no-op")
	}
}
