package automation

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/collide/internal/analysis"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/sim"
)

// MonteCarloConfig perturbs both velocities of Base uniformly within
// ±Spread. Perturbed velocities are clamped to the velocity limit.
type MonteCarloConfig struct {
	Base   params.Set
	Spread float64
	Trials int
	Ticks  int
	Seed   int64
}

type Trial struct {
	Params     params.Set
	Collisions int
	WallHits   int
}

type MonteCarloResult struct {
	Trials     []Trial
	Collisions analysis.Stats
	WallHits   analysis.Stats
	// NoContact counts trials in which the bodies never met.
	NoContact int
}

// RunMonteCarlo runs all trials concurrently through a sweep.
func RunMonteCarlo(ctx context.Context, mc MonteCarloConfig, cfg *config.Config) (*MonteCarloResult, error) {
	if mc.Trials <= 0 {
		return nil, errors.New("trials must be positive")
	}
	if mc.Spread < 0 {
		return nil, errors.New("spread must not be negative")
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	limit := cfg.Limits().MaxVelocity
	perturb := func(v float64) float64 {
		v += (rng.Float64() - 0.5) * 2 * mc.Spread
		return math.Max(-limit, math.Min(limit, v))
	}

	sets := make([]params.Set, mc.Trials)
	for i := range sets {
		sets[i] = mc.Base
		sets[i].Velocity1 = perturb(mc.Base.Velocity1)
		sets[i].Velocity2 = perturb(mc.Base.Velocity2)
	}

	n := mc.Ticks
	if n <= 0 {
		n = cfg.Ticks
	}
	results, err := sim.NewSweep(cfg.Layout(), metrics.Default).Run(ctx, sets, sim.Config{Ticks: n})
	if err != nil {
		return nil, err
	}

	out := &MonteCarloResult{Trials: make([]Trial, len(results))}
	collisions := make([]float64, len(results))
	wallHits := make([]float64, len(results))
	for i, res := range results {
		out.Trials[i] = Trial{Params: sets[i], Collisions: res.Collisions, WallHits: res.WallHits}
		collisions[i] = float64(res.Collisions)
		wallHits[i] = float64(res.WallHits)
		if res.Collisions == 0 {
			out.NoContact++
		}
	}
	out.Collisions = analysis.Summarize(collisions)
	out.WallHits = analysis.Summarize(wallHits)
	return out, nil
}
