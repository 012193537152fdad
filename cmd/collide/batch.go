package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/collide/internal/automation"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/optim"
	"github.com/san-kum/collide/internal/sim"
	"github.com/san-kum/collide/internal/storage"
)

var (
	trials   int
	spread   float64
	seed     int64
	grid     [4][]float64
	metric   string
	maximize bool
)

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lg, err := newLogger(false)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	results, err := automation.RunScenario(ctx, sc, cfg, lg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tTICKS\tCOLLISIONS\tWALL HITS\tRUN ID")
	for i, r := range results {
		runID := "-"
		if r.Step.Save && !noSave {
			if err := st.Init(); err != nil {
				return err
			}
			runID, err = st.Save(storage.RunMetadata{
				TickRate:      cfg.TickRate,
				Step:          cfg.Step,
				ViewportWidth: cfg.ViewportWidth,
			}, r.Result)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n", i+1, r.Step.Name, r.Result.TicksTaken, r.Result.Collisions, r.Result.WallHits, runID)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var raw [4]string
	switch {
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
	base, err := validated(cfg, raw)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := automation.RunMonteCarlo(ctx, automation.MonteCarloConfig{
		Base:   base,
		Spread: spread,
		Trials: trials,
		Ticks:  tickCount(cfg),
		Seed:   seed,
	}, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("trials: %d  spread: ±%g\n", len(res.Trials), spread)
	fmt.Printf("collisions: mean=%.2f min=%.0f max=%.0f\n", res.Collisions.Mean, res.Collisions.Min, res.Collisions.Max)
	fmt.Printf("wall hits:  mean=%.2f min=%.0f max=%.0f\n", res.WallHits.Mean, res.WallHits.Min, res.WallHits.Max)
	fmt.Printf("no contact: %d (%.1f%%)\n", res.NoContact, 100*float64(res.NoContact)/float64(len(res.Trials)))
	return nil
}

func searchGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(optim.Grid{
		Mass1:     grid[0],
		Mass2:     grid[1],
		Velocity1: grid[2],
		Velocity2: grid[3],
	}, cfg.Layout(), cfg.Limits(), metrics.Default)
	if maximize {
		gs.Maximize()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, err := gs.Search(ctx, metric, sim.Config{Ticks: tickCount(cfg)})
	if err != nil {
		return err
	}

	fmt.Printf("evaluated: %d points\n", best.Evaluated)
	fmt.Printf("best %s: %.6g\n", metric, best.Value)
	p := best.Params
	fmt.Printf("params: %s %s %s %s\n", fmtFloat(p.Mass1), fmtFloat(p.Mass2), fmtFloat(p.Velocity1), fmtFloat(p.Velocity2))
	return nil
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func batchCommands() []*cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario file.yaml",
		Short: "run the steps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store runs even if a step asks")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [m1 m2 v1 v2]",
		Short: "perturb the velocities and summarize the outcomes",
		Args:  cobra.RangeArgs(0, 4),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&spread, "spread", 1, "velocity perturbation")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	monteCarloCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search the parameters for the best metric value",
		Args:  cobra.NoArgs,
		RunE:  searchGrid,
	}
	searchCmd.Flags().Float64SliceVar(&grid[0], "m1", []float64{1}, "candidate masses of object 1")
	searchCmd.Flags().Float64SliceVar(&grid[1], "m2", []float64{1}, "candidate masses of object 2")
	searchCmd.Flags().Float64SliceVar(&grid[2], "v1", []float64{5}, "candidate velocities of object 1")
	searchCmd.Flags().Float64SliceVar(&grid[3], "v2", []float64{-5}, "candidate velocities of object 2")
	searchCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to optimize")
	searchCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")
	searchCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")

	return []*cobra.Command{scenarioCmd, monteCarloCmd, searchCmd}
}

