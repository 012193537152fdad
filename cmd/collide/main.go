package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/collide/internal/audio"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/gui"
	"github.com/san-kum/collide/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFile    string
	preset     string
	ticks      int
	noSave     bool
	theme      string
)

// main registers the commands and launches the desktop window when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "collide",
		Short:         "1D elastic collision simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".collide", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")

	for _, c := range []*cobra.Command{rootCmd, guiCmd, tuiCmd} {
		c.Flags().StringVar(&preset, "preset", "", "start immediately with a preset")
	}

	runCmd := &cobra.Command{
		Use:   "run [m1 m2 v1 v2]",
		Short: "run a simulation headlessly and save it",
		Args:  cobra.RangeArgs(0, 4),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	validateCmd := &cobra.Command{
		Use:   "validate m1 m2 v1 v2",
		Short: "check parameters against the input rules",
		Args:  cobra.ExactArgs(4),
		RunE:  validateParams,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run mass ratios side by side",
		Args:  cobra.NoArgs,
		RunE:  sweepRatios,
	}
	sweepCmd.Flags().Float64SliceVar(&ratios, "ratios", []float64{0.1, 0.5, 1, 2, 10}, "mass ratios m1/m2")
	sweepCmd.Flags().Float64Var(&sweepV1, "v1", 5, "velocity of object 1")
	sweepCmd.Flags().Float64Var(&sweepV2, "v2", -5, "velocity of object 2")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot positions and velocities of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "collision intervals and frequency analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&body, "body", "a", "body for the phase portrait (a or b)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&snapTick, "tick", -1, "snapshot a single tick instead of world lines")
	exportSVGCmd.Flags().IntVar(&svgSize[0], "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgSize[1], "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, validateCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, configCmd)
	rootCmd.AddCommand(batchCommands()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. quiet discards output unless a log
// file was given, so it does not draw over the terminal host.
func newLogger(quiet bool) (*logrus.Logger, error) {
	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	lg.Level = level

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		lg.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
		lg.SetOutput(f)
	case quiet:
		lg.SetOutput(io.Discard)
	}
	return lg, nil
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func presetValues() (*[4]string, error) {
	if preset == "" {
		return nil, nil
	}
	p, ok := config.GetPreset(preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	v := p.Values
	return &v, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lg, err := newLogger(false)
	if err != nil {
		return err
	}
	values, err := presetValues()
	if err != nil {
		return err
	}

	gui.Run(gui.Options{
		Config: cfg,
		Player: audio.Open(cfg.Sound, lg),
		Log:    lg,
		Values: values,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lg, err := newLogger(true)
	if err != nil {
		return err
	}
	values, err := presetValues()
	if err != nil {
		return err
	}

	player := audio.Open(cfg.Sound, lg)
	defer player.Close()

	return viz.Run(viz.Options{
		Config: cfg,
		Player: player,
		Log:    lg,
		Theme:  theme,
		Values: values,
	})
}
