package sim

import (
	"context"
	"sync"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
)

// Sweep runs one independent state per parameter set. Each goroutine owns
// its state and runner, so the single-writer rule holds per run.
type Sweep struct {
	layout     physics.Layout
	newMetrics func() []Metric
}

func NewSweep(layout physics.Layout, newMetrics func() []Metric) *Sweep {
	return &Sweep{layout: layout, newMetrics: newMetrics}
}

func (s *Sweep) Run(ctx context.Context, sets []params.Set, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sets))
	errs := make([]error, len(sets))

	var wg sync.WaitGroup
	for i := range sets {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := New()
			if s.newMetrics != nil {
				for _, m := range s.newMetrics() {
					r.AddMetric(m)
				}
			}
			st := physics.New(sets[idx], s.layout)
			results[idx], errs[idx] = r.Run(ctx, st, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
