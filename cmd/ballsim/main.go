package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/viz"
)

var (
	configFile string
	ticks      int
	frameRate  int
	theme      string
	logLevel   string
	logFile    string
	// run
	csvOut bool
	// plot
	series    string
	bodyIndex int
	every     int
	spectrum  bool
	// sweep
	workers int
	// config
	outFile string
	// snapshot
	canvasMode bool
	trails     bool
	scale      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ballsim",
		Short:        "2D ball physics sandbox",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks for headless commands")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "tick rate for live views")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "terminal color theme")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs here instead of stderr")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run the simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run the simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()
			return gui.Run(cfg, logger)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run headless and print metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "stream body states to stdout as csv")

	plotCmd := &cobra.Command{
		Use:   "plot [preset]",
		Short: "plot a series from a headless run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "energy", "vy, speed, energy or momentum")
	plotCmd.Flags().IntVar(&bodyIndex, "body", -1, "body index, -1 for the whole scene")
	plotCmd.Flags().IntVar(&every, "every", 1, "sample every n ticks")
	plotCmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the power spectrum instead")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset] [terminal velocities...]",
		Short: "compare terminal velocities in parallel",
		Args:  cobra.ArbitraryArgs,
		RunE:  sweepRun,
	}
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel simulations (0 = all cpus)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tBODIES\tGRAVITY\tTERMINAL")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n", name, len(cfg.Bodies), cfg.Physics.Gravity, cfg.Physics.TerminalVelocity)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if outFile != "" {
				return config.Save(outFile, cfg)
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
	configCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "render the scene after --ticks ticks as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().BoolVar(&canvasMode, "braille", false, "render through the terminal canvas")
	snapshotCmd.Flags().BoolVar(&trails, "trails", false, "draw each body's path")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "dot spacing for --braille")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, plotCmd, sweepCmd, presetsCmd, configCmd, snapshotCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the named preset (or the default), replaces it
// with --config when given, then applies flags the user actually set.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		p, err := config.GetPreset(args[0])
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Render.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to --log-file when set, otherwise to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	w, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ballsim",
		Level:           level,
	})
	return logger, closeFn, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	// stderr would tear the alt screen
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cols, rows := viz.CanvasSize(120, 40)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = viz.CanvasSize(w, h)
	}
	m, err := viz.NewModel(cfg, cols, rows, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running live view: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
