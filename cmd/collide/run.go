package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/sim"
	"github.com/san-kum/collide/internal/storage"
)

var (
	ratios  []float64
	sweepV1 float64
	sweepV2 float64
)

// validated runs the input rules and turns a failure into the message the
// hosts show.
func validated(cfg *config.Config, raw [4]string) (params.Set, error) {
	set, err := params.NewValidator(cfg.Limits()).Validate(raw[0], raw[1], raw[2], raw[3])
	if err != nil {
		return params.Set{}, fmt.Errorf("%s: %w", params.Message(err), err)
	}
	return set, nil
}

func tickCount(cfg *config.Config) int {
	if ticks > 0 {
		return ticks
	}
	return cfg.Ticks
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lg, err := newLogger(false)
	if err != nil {
		return err
	}

	var raw [4]string
	switch {
	case preset != "" && len(args) > 0:
		return errors.New("use either --preset or four parameters")
	case preset != "":
		v, err := presetValues()
		if err != nil {
			return err
		}
		raw = *v
	case len(args) == 4:
		copy(raw[:], args)
	default:
		return errors.New("expected m1 m2 v1 v2 or --preset")
	}

	set, err := validated(cfg, raw)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := sim.New()
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	n := tickCount(cfg)
	lg.WithField("params", set).WithField("ticks", n).Debug("starting run")
	start := time.Now()

	result, err := runner.Run(ctx, physics.New(set, cfg.Layout()), sim.Config{Ticks: n, Record: true})
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		lg.WithError(e).Warn("degenerate state")
	}

	fmt.Printf("completed %d ticks in %v\n", result.TicksTaken, time.Since(start))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			TickRate:      cfg.TickRate,
			Step:          cfg.Step,
			ViewportWidth: cfg.ViewportWidth,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("collisions: %d\n", result.Collisions)
	fmt.Printf("wall hits: %d\n", result.WallHits)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func validateParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set, err := validated(cfg, [4]string{args[0], args[1], args[2], args[3]})
	if err != nil {
		return err
	}

	l := cfg.Layout()
	fmt.Printf("ok: m1=%g m2=%g v1=%g v2=%g\n", set.Mass1, set.Mass2, set.Velocity1, set.Velocity2)
	fmt.Printf("radii: %g %g\n",
		physics.Radius(set.Mass1, l.MinRadius, l.MaxRadius),
		physics.Radius(set.Mass2, l.MinRadius, l.MaxRadius))
	fmt.Printf("momentum: %g\n", set.Momentum())
	return nil
}

func sweepRatios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(ratios) == 0 {
		return errors.New("no ratios given")
	}

	v1 := strconv.FormatFloat(sweepV1, 'f', -1, 64)
	v2 := strconv.FormatFloat(sweepV2, 'f', -1, 64)
	sets := make([]params.Set, len(ratios))
	for i, r := range ratios {
		set, err := validated(cfg, [4]string{strconv.FormatFloat(r, 'f', -1, 64), "1", v1, v2})
		if err != nil {
			return fmt.Errorf("ratio %g: %w", r, err)
		}
		sets[i] = set
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sim.NewSweep(cfg.Layout(), metrics.Default).Run(ctx, sets, sim.Config{Ticks: tickCount(cfg)})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RATIO\tCOLLISIONS\tWALL HITS\tKE\tENERGY DRIFT\tMOMENTUM ERR")
	for i, res := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%.4f\t%.2e\t%.2e\n",
			ratios[i],
			res.Collisions,
			res.WallHits,
			res.Metrics["kinetic_energy"],
			res.Metrics["energy_drift"],
			res.Metrics["momentum_error"],
		)
	}
	return w.Flush()
}
