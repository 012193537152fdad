// Package optim searches parameter grids for the run that best scores on a
// metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/sim"
)

// Grid lists candidate values per parameter. An empty axis yields no points.
type Grid struct {
	Mass1     []float64
	Mass2     []float64
	Velocity1 []float64
	Velocity2 []float64
}

// Sets returns the cartesian product in axis order.
func (g Grid) Sets() []params.Set {
	axes := [4][]float64{g.Mass1, g.Mass2, g.Velocity1, g.Velocity2}
	sets := make([]params.Set, 0)
	var vals [4]float64
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(axes) {
			sets = append(sets, params.Set{Mass1: vals[0], Mass2: vals[1], Velocity1: vals[2], Velocity2: vals[3]})
			return
		}
		for _, v := range axes[depth] {
			vals[depth] = v
			walk(depth + 1)
		}
	}
	walk(0)
	return sets
}

type Best struct {
	Params params.Set
	Value  float64
	// Evaluated is the number of grid points that passed validation.
	Evaluated int
}

type GridSearch struct {
	grid       Grid
	layout     physics.Layout
	validator  *params.Validator
	newMetrics func() []sim.Metric
	maximize   bool
}

func NewGridSearch(grid Grid, layout physics.Layout, limits params.Limits, newMetrics func() []sim.Metric) *GridSearch {
	return &GridSearch{
		grid:       grid,
		layout:     layout,
		validator:  params.NewValidator(limits),
		newMetrics: newMetrics,
	}
}

// Maximize flips the search to prefer the largest metric value.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Search runs every valid grid point and returns the best by metricName.
// Points that fail the input rules are skipped. Ties keep the earliest
// point and NaN values never win.
func (g *GridSearch) Search(ctx context.Context, metricName string, cfg sim.Config) (Best, error) {
	sets := make([]params.Set, 0)
	for _, s := range g.grid.Sets() {
		if g.validator.Check(s) == nil {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		return Best{}, errors.New("no valid grid points")
	}

	results, err := sim.NewSweep(g.layout, g.newMetrics).Run(ctx, sets, cfg)
	if err != nil {
		return Best{}, err
	}

	best := Best{Value: math.Inf(1), Evaluated: len(sets)}
	if g.maximize {
		best.Value = math.Inf(-1)
	}
	found := false
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return Best{}, fmt.Errorf("unknown metric %q", metricName)
		}
		if math.IsNaN(val) {
			continue
		}
		if !found || g.better(val, best.Value) {
			best.Params = sets[i]
			best.Value = val
			found = true
		}
	}
	if !found {
		return Best{}, errors.New("every grid point produced NaN")
	}
	return best, nil
}

func (g *GridSearch) better(val, best float64) bool {
	if g.maximize {
		return val > best
	}
	return val < best
}
