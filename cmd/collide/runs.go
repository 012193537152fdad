package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/collide/internal/analysis"
	"github.com/san-kum/collide/internal/braille"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/export"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/storage"
)

var (
	body     string
	outFile  string
	force    bool
	snapTick int
	svgSize  [2]int
)

// resolveRun returns the run named in args, or the latest run.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}

// output returns stdout or the file named by --output.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tM1\tM2\tV1\tV2\tTICKS\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Mass1,
			run.Params.Mass2,
			run.Params.Velocity1,
			run.Params.Velocity2,
			run.Ticks,
			run.Collisions,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(frames))

	xa, _ := analysis.Series(frames, "xa")
	xb, _ := analysis.Series(frames, "xb")
	va, _ := analysis.Series(frames, "va")
	vb, _ := analysis.Series(frames, "vb")

	for _, plot := range []struct {
		caption string
		series  [][]float64
	}{
		{"positions (object 1 blue, object 2 red)", [][]float64{xa, xb}},
		{"velocities (object 1 blue, object 2 red)", [][]float64{va, vb}},
	} {
		graph := asciigraph.PlotMany(plot.series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plot.caption),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	if body != "a" && body != "b" {
		return fmt.Errorf("body must be a or b, got %q", body)
	}

	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	rate := float64(meta.TickRate)
	if rate <= 0 {
		rate = config.DefaultTickRate
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("collisions: %d  wall hits: %d\n\n", meta.Collisions, meta.WallHits)

	s := analysis.Summarize(analysis.CollisionIntervals(frames))
	if s.Count == 0 {
		fmt.Println("fewer than two collisions, no intervals")
	} else {
		fmt.Printf("collision intervals (ticks): n=%d mean=%.1f min=%.0f max=%.0f\n", s.Count, s.Mean, s.Min, s.Max)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSERIES\tDOMINANT FREQ (Hz)\tPERIOD (s)")
	for _, col := range []string{"xa", "xb"} {
		series, _ := analysis.Series(frames, col)
		hz := analysis.DominantFrequency(series, rate)
		period := "-"
		if hz > 0 {
			period = fmt.Sprintf("%.2f", 1/hz)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%s\n", col, hz, period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nphase portrait, object %s (position vs velocity):\n", body)
	fmt.Print(analysis.NewPhasePortrait(frames, body).ASCII(70, 16))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.WriteFrames(out, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return st.Export(out, runID)
}

// exportSVG writes a world-line diagram of the run, or a single-frame
// snapshot when --tick is given.
func exportSVG(cmd *cobra.Command, args []string) error {
	if svgSize[0] < 16 || svgSize[1] < 16 {
		return fmt.Errorf("image must be at least 16x16, got %dx%d", svgSize[0], svgSize[1])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	width := meta.ViewportWidth
	if width <= 0 {
		width = cfg.ViewportWidth
	}

	var svg string
	if snapTick >= 0 {
		idx := -1
		for i, f := range frames {
			if f.Tick == snapTick {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("tick %d not in run %s", snapTick, meta.ID)
		}
		f := frames[idx]
		a := physics.Body{Position: f.PositionA, Mass: meta.Params.Mass1, Radius: physics.Radius(meta.Params.Mass1, cfg.MinRadius, cfg.MaxRadius)}
		b := physics.Body{Position: f.PositionB, Mass: meta.Params.Mass2, Radius: physics.Radius(meta.Params.Mass2, cfg.MinRadius, cfg.MaxRadius)}

		c := braille.NewCanvas(svgSize[0]/8, svgSize[1]/16)
		braille.DrawScene(c, width, a, b)
		svg = export.CanvasToSVG(c, 4)
	} else {
		svg = export.WorldLinesSVG(frames, width, svgSize[0], svgSize[1])
	}
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, svg)
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tM1\tM2\tV1\tV2\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", name, p.Values[0], p.Values[1], p.Values[2], p.Values[3], p.Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "collide.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
