package metrics

import "github.com/san-kum/collide/internal/sim"

// Default is the metric set every run records.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentumError(),
		NewCollisions(),
		NewWallHits(),
	}
}
