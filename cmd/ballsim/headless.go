package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/shapes"
	"github.com/san-kum/ballsim/internal/viz"
)

// csvTrace writes one row per body per tick.
type csvTrace struct {
	w   *csv.Writer
	err error
}

func newCSVTrace(w io.Writer) *csvTrace {
	t := &csvTrace{w: csv.NewWriter(w)}
	t.err = t.w.Write([]string{"tick", "body", "x", "y", "vx", "vy"})
	return t
}

func (t *csvTrace) OnTick(tick int, bodies []dynamo.Body) {
	if t.err != nil {
		return
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for i, b := range bodies {
		t.err = t.w.Write([]string{
			strconv.Itoa(tick), strconv.Itoa(i),
			f(b.Pos.X), f(b.Pos.Y), f(b.Vel.X), f(b.Vel.Y),
		})
		if t.err != nil {
			return
		}
	}
}

func (t *csvTrace) Flush() error {
	t.w.Flush()
	if t.err != nil {
		return t.err
	}
	return t.w.Error()
}

// newHeadless builds the simulation for cfg with the default metrics.
func newHeadless(cfg *config.Config, opts ...dynamo.Option) (*dynamo.Simulation, error) {
	sim, err := cfg.NewSimulation(opts...)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults() {
		sim.AddMetric(m)
	}
	return sim, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []dynamo.Option{dynamo.WithLogger(logger)}
	var trace *csvTrace
	out := io.Writer(os.Stdout)
	if csvOut {
		trace = newCSVTrace(os.Stdout)
		opts = append(opts, dynamo.WithObserver(trace))
		out = os.Stderr
	}

	sim, err := newHeadless(cfg, opts...)
	if err != nil {
		return err
	}
	if trace != nil {
		trace.OnTick(0, sim.Bodies())
	}

	logger.Info("running", "bodies", sim.Len(), "ticks", cfg.Render.Ticks)
	res, runErr := sim.Run(cmd.Context(), cfg.Render.Ticks, dynamo.RunOptions{})
	if trace != nil {
		if err := trace.Flush(); err != nil {
			return err
		}
	}
	if res != nil {
		printResult(out, res)
	}
	return runErr
}

func printResult(out io.Writer, res *dynamo.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "ticks\t%d\n", res.TicksTaken)
	fmt.Fprintf(w, "bodies\t%d\n", len(res.Final))
	for _, k := range sortedKeys(res.Metrics) {
		fmt.Fprintf(w, "%s\t%.4f\n", k, res.Metrics[k])
	}
	w.Flush()
}

// seriesValue extracts one plotted value from a frame. body < 0 means the
// whole scene.
func seriesValue(name string, bodies []dynamo.Body, body int) (float64, error) {
	if body >= 0 {
		if body >= len(bodies) {
			return 0, fmt.Errorf("body %d out of range (%d bodies)", body, len(bodies))
		}
		b := bodies[body]
		switch name {
		case "vy":
			return b.Vel.Y, nil
		case "speed":
			return b.Speed(), nil
		case "energy":
			return b.KineticEnergy(), nil
		case "momentum":
			return b.Momentum().Len(), nil
		}
		return 0, fmt.Errorf("unknown series: %s", name)
	}

	switch name {
	case "vy":
		if len(bodies) == 0 {
			return 0, nil
		}
		sum := 0.0
		for _, b := range bodies {
			sum += b.Vel.Y
		}
		return sum / float64(len(bodies)), nil
	case "speed":
		top := 0.0
		for _, b := range bodies {
			top = math.Max(top, b.Speed())
		}
		return top, nil
	case "energy":
		return metrics.Total(bodies), nil
	case "momentum":
		return metrics.TotalMomentum(bodies).Len(), nil
	}
	return 0, fmt.Errorf("unknown series: %s", name)
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sim, err := newHeadless(cfg, dynamo.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := sim.Run(cmd.Context(), cfg.Render.Ticks, dynamo.RunOptions{Record: true, Every: every})
	if err != nil {
		return err
	}

	data := make([]float64, 0, len(res.Frames))
	for _, f := range res.Frames {
		v, err := seriesValue(series, f.Bodies, bodyIndex)
		if err != nil {
			return err
		}
		data = append(data, v)
	}
	if len(data) < 2 {
		return fmt.Errorf("not enough samples to plot (%d)", len(data))
	}

	caption := series + " (scene)"
	if bodyIndex >= 0 {
		caption = fmt.Sprintf("%s (body %d)", series, bodyIndex)
	}
	if spectrum {
		if period, ok := analysis.DominantPeriod(data); ok {
			fmt.Printf("dominant period: %.1f ticks\n\n", period*float64(max(every, 1)))
		}
		data = analysis.PowerSpectrum(data)
		caption = "power spectrum of " + caption
		if len(data) < 2 {
			return fmt.Errorf("not enough samples for a spectrum")
		}
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
	return nil
}

var defaultSweep = []float64{10, 20, 30, 60}

func sweepRun(cmd *cobra.Command, args []string) error {
	var presetArgs []string
	velocities := defaultSweep
	if len(args) > 0 {
		if _, err := strconv.ParseFloat(args[0], 64); err != nil {
			presetArgs, args = args[:1], args[1:]
		}
	}
	if len(args) > 0 {
		velocities = make([]float64, 0, len(args))
		for _, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid terminal velocity %q: %w", a, err)
			}
			velocities = append(velocities, v)
		}
	}

	cfg, err := loadConfig(cmd, presetArgs)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	variants := make([]dynamo.Variant, len(velocities))
	for i, tv := range velocities {
		c := *cfg
		c.Physics.TerminalVelocity = tv
		variants[i] = dynamo.Variant{
			Name: strconv.FormatFloat(tv, 'g', -1, 64),
			Build: func() (*dynamo.Simulation, error) {
				return newHeadless(&c, dynamo.WithLogger(logger.With("terminal", tv)))
			},
		}
	}

	ens := dynamo.NewEnsemble(cfg.Render.Ticks, dynamo.RunOptions{}, variants...)
	ens.SetWorkers(workers)
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERMINAL\tKE\tMAX SPEED\tTERMINAL RATIO\tCOLLISIONS")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%d\n",
			variants[i].Name,
			res.Metrics["kinetic_energy"],
			res.Metrics["max_speed"],
			res.Metrics["terminal_ratio"],
			res.Collisions,
		)
	}
	return w.Flush()
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	decor, err := shapes.Decor(cfg.Decor)
	if err != nil {
		return err
	}
	sim, err := cfg.NewSimulation(dynamo.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := sim.Run(cmd.Context(), cfg.Render.Ticks, dynamo.RunOptions{Record: trails})
	if err != nil {
		return err
	}
	if trails {
		decor = append(decor, export.Trails(res.Frames)...)
	}

	if canvasMode {
		cols, rows := 160, 90
		canvas := viz.NewCanvas(cols, rows)
		canvas.View = viz.FitViewport(cfg.World.Width, cfg.World.Height, cols, rows)
		shapes.DrawFrame(canvas, decor, res.Final)
		fmt.Println(export.CanvasToSVG(canvas, scale))
		return nil
	}
	fmt.Println(export.SceneToSVG(cfg.World.Width, cfg.World.Height, decor, res.Final))
	return nil
}
