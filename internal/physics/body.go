package physics

import "math"

const (
	DefaultMinRadius = 1.0
	DefaultMaxRadius = 45.0
)

// Body is one point object. Mass is fixed for the lifetime of a run and
// Radius is derived from it.
type Body struct {
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
}

func (b Body) Momentum() float64 { return b.Mass * b.Velocity }

func (b Body) KineticEnergy() float64 { return 0.5 * b.Mass * b.Velocity * b.Velocity }

// Radius returns floor(4 + 6*sqrt(mass)) clamped to [lo, hi].
func Radius(mass, lo, hi float64) float64 {
	r := math.Floor(4 + 6*math.Sqrt(mass))
	return math.Max(lo, math.Min(hi, r))
}

// Exchange returns the post-collision velocities of a 1D elastic collision.
// Both results are computed from the incoming velocities. The formula is
// split into per-velocity coefficients so equal masses swap exactly.
func Exchange(mA, vA, mB, vB float64) (float64, float64) {
	total := mA + mB
	newVA := vA*((mA-mB)/total) + vB*((2*mB)/total)
	newVB := vB*((mB-mA)/total) + vA*((2*mA)/total)
	return newVA, newVB
}
