package analysis

import (
	"math"

	"github.com/san-kum/collide/internal/sim"
)

type Stats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// CollisionIntervals returns the tick gaps between consecutive collisions.
func CollisionIntervals(frames []sim.Frame) []float64 {
	intervals := make([]float64, 0)
	last := -1
	for _, f := range frames {
		if !f.Collided {
			continue
		}
		if last >= 0 {
			intervals = append(intervals, float64(f.Tick-last))
		}
		last = f.Tick
	}
	return intervals
}

// Summarize returns count, mean and range of a sample, such as collision
// intervals or per-trial counts. An empty sample gives the zero Stats.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	s := Stats{Count: len(values), Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))
	return s
}

// Series extracts one column from frames: "xa", "xb", "va" or "vb".
func Series(frames []sim.Frame, column string) ([]float64, bool) {
	var pick func(sim.Frame) float64
	switch column {
	case "xa":
		pick = func(f sim.Frame) float64 { return f.PositionA }
	case "xb":
		pick = func(f sim.Frame) float64 { return f.PositionB }
	case "va":
		pick = func(f sim.Frame) float64 { return f.VelocityA }
	case "vb":
		pick = func(f sim.Frame) float64 { return f.VelocityB }
	default:
		return nil, false
	}

	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out, true
}
