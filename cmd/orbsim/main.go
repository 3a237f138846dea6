package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/automation"
	"github.com/san-kum/orbsim/internal/classifier"
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/compute"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/render"
	"github.com/san-kum/orbsim/internal/sampler"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string

	points     uint32
	cubeWidth  float32
	seed       int64
	threshold  float32
	speed      float32
	nProp      float32
	speedScale float64
	clockName  string
	formula    string
	workers    int
	fastTrig   bool
	fps        int
	theme      string
	axes       bool
	grid       bool

	frames      int
	dt          float64
	duration    time.Duration
	metricsAddr string
	plotSVG     string

	sweepPhase float64
	sweepMin   float32
	sweepMax   float32
	sweepSteps int

	numTrials int
	parallel  int

	outPath   string
	svgWidth  int
	svgHeight int
	maxPoints int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orbsim",
		Short: "hydrogen 1s/2pz interference point cloud",
		Long: "orbsim samples the hydrogen 1s and 2pz wavefunctions on a point cloud and animates\n" +
			"the time-dependent interference between them. Without a subcommand it opens the live view.",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.Uint32Var(&points, "points", config.DefaultPoints, "number of sample points")
	pf.Float32Var(&cubeWidth, "width", config.DefaultWidth, "edge length of the sampling cube")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.Float32Var(&threshold, "threshold", cloud.DefaultThreshold, "visibility threshold (0.01-0.999)")
	pf.Float32Var(&speed, "speed", cloud.DefaultSpeed, "animation speed (0-1)")
	pf.Float32Var(&nProp, "n-proportion", cloud.DefaultN, "1s share of the superposition; the 2pz share is 1-n")
	pf.Float64Var(&speedScale, "speed-scale", classifier.DefaultSpeedScale, "phase advance per second at speed 1")
	pf.StringVar(&clockName, "clock", config.ClockElapsed, "frame clock (elapsed, epoch)")
	pf.StringVar(&formula, "formula", compute.FormulaInterference.String(), "classification formula (interference, mixed)")
	pf.IntVar(&workers, "workers", 0, "classification workers (0 = all cpus)")
	pf.BoolVar(&fastTrig, "fast-trig", false, "use a cosine lookup table")

	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.Flags().BoolVar(&axes, "axes", true, "draw axes")
	rootCmd.Flags().BoolVar(&grid, "grid", true, "draw the bounding cube")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless frames and summarize",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 300, "number of frames")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/30, "elapsed seconds per frame")
	runCmd.Flags().DurationVar(&duration, "duration", 0, "run against the wall clock for this long instead of fixed frames")
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate with --duration")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	runCmd.Flags().StringVar(&plotSVG, "plot-svg", "", "write the visible-count series as svg")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "visible points across a threshold range",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepPhase, "phase", 0, "phase to classify at")
	sweepCmd.Flags().Float32Var(&sweepMin, "min", cloud.MinThreshold, "lowest threshold")
	sweepCmd.Flags().Float32Var(&sweepMax, "max", cloud.MaxThreshold, "highest threshold")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of thresholds")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render one frame to svg",
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "orbital.svg", "output file")
	exportSVGCmd.Flags().IntVar(&frames, "frames", 1, "frames to advance before export")
	exportSVGCmd.Flags().Float64Var(&dt, "dt", 1.0/30, "elapsed seconds per frame")
	exportSVGCmd.Flags().IntVar(&svgWidth, "px-width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "px-height", 800, "image height")
	exportSVGCmd.Flags().IntVar(&maxPoints, "max-points", 50000, "draw at most this many points (0 = all)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "write every point and its flags to csv",
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportCSVCmd.Flags().IntVar(&frames, "frames", 1, "frames to advance before export")
	exportCSVCmd.Flags().Float64Var(&dt, "dt", 1.0/30, "elapsed seconds per frame")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare classification backends",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 20, "classifications per backend")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	saveConfigCmd := &cobra.Command{
		Use:   "save-config [file]",
		Short: "write the effective configuration (defaults, preset, file and flags) as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of tunable changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat a run over several sampling seeds",
		RunE:  runTrials,
	}
	trialsCmd.Flags().IntVar(&numTrials, "trials", 5, "number of seeds")
	trialsCmd.Flags().IntVar(&frames, "frames", 30, "frames per trial")
	trialsCmd.Flags().Float64Var(&dt, "dt", 1.0/30, "elapsed seconds per frame")
	trialsCmd.Flags().IntVar(&parallel, "parallel", 1, "trials run at once")

	rootCmd.AddCommand(runCmd, sweepCmd, exportSVGCmd, exportCSVCmd, benchCmd, presetsCmd, saveConfigCmd, scenarioCmd, trialsCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file and changed flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("points") {
		cfg.Sampling.Points = points
	}
	if flags.Changed("width") {
		cfg.Sampling.CubeWidth = cubeWidth
	}
	if flags.Changed("seed") {
		cfg.Sampling.Seed = seed
	}
	if flags.Changed("threshold") {
		cfg.Simulation.Threshold = threshold
	}
	if flags.Changed("speed") {
		cfg.Simulation.Speed = speed
	}
	if flags.Changed("n-proportion") {
		cfg.Simulation.SetNProportion(nProp)
	}
	if flags.Changed("speed-scale") {
		cfg.Animation.SpeedScale = speedScale
	}
	if flags.Changed("clock") {
		cfg.Animation.Clock = clockName
	}
	if flags.Changed("formula") {
		cfg.Animation.Formula = formula
	}
	if flags.Changed("workers") {
		cfg.Compute.Workers = workers
	}
	if flags.Changed("fast-trig") {
		cfg.Compute.FastTrig = fastTrig
	}
	if flags.Changed("fps") {
		cfg.View.FPS = fps
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Lookup("axes") != nil && flags.Changed("axes") {
		cfg.View.Axes = axes
	}
	if flags.Lookup("grid") != nil && flags.Changed("grid") {
		cfg.View.Grid = grid
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, logOut io.Writer) (*config.Config, *slog.Logger, func() error, error) {
	logger, closeLog, err := newLogger(logLevel, logFormat, logFile, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.SetDefault(logger)

	cfg, err := loadConfig(cmd)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

func buildSession(cfg *config.Config, logger *slog.Logger, sink classifier.Sink, opts ...sim.Option) (*sim.Session, error) {
	start := time.Now()
	samples, err := sampler.New(cfg.Compute.Workers).Generate(cfg.Sampling.Points, cfg.Sampling.CubeWidth, cfg.Sampling.Seed)
	if err != nil {
		return nil, fmt.Errorf("sample cloud: %w", err)
	}
	logger.Info("sampled point cloud",
		slog.Int("points", samples.Len()),
		slog.Float64("width", float64(cfg.Sampling.CubeWidth)),
		slog.Int64("seed", cfg.Sampling.Seed),
		slog.Duration("took", time.Since(start)))

	copts := []classifier.Option{
		classifier.WithBackend(cfg.Backend()),
		classifier.WithSpeedScale(cfg.Animation.SpeedScale),
		classifier.WithFormula(cfg.Formula()),
		classifier.WithLogger(logger),
	}
	if sink != nil {
		copts = append(copts, classifier.WithSink(sink))
	}
	c := classifier.New(copts...)
	opts = append([]sim.Option{sim.WithLogger(logger)}, opts...)
	return sim.NewSession(samples, cfg.Simulation, c, opts...)
}

func runLive(cmd *cobra.Command, args []string) error {
	// stdout belongs to the screen; logs go to --log-file or nowhere
	cfg, logger, closeLog, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	geom := render.NewGeometry()
	session, err := buildSession(cfg, logger, geom)
	if err != nil {
		return err
	}
	if cfg.Animation.Clock == config.ClockElapsed {
		if rate := analysis.PhaseRate(cfg.Simulation.Speed, cfg.Animation.SpeedScale); rate > 0 && rate < 1e-6 {
			logger.Warn("phase advances too slowly to see; try --preset lively or --preset legacy",
				slog.Float64("rad_per_second", rate))
		}
	}
	return viz.Run(session, viz.Options{
		Geometry: geom,
		FPS:      cfg.View.FPS,
		Theme:    cfg.View.Theme,
		Axes:     cfg.View.Axes,
		Grid:     cfg.View.Grid,
		Clock:    sim.NewClock(cfg.Animation.Clock),
		Extent:   float64(cfg.Sampling.CubeWidth) / 2,
		Logger:   logger,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := buildSession(cfg, logger, nil)
	if err != nil {
		return err
	}

	summary := []metrics.Metric{
		metrics.NewVisibleFraction(session.Samples().Len()),
		metrics.NewLobeBalance(),
		metrics.NewFrameTime(),
	}
	for _, m := range summary {
		session.AddObserver(m)
	}

	var history []int
	session.AddObserver(sim.ObserverFunc(func(f sim.Frame) { history = append(history, f.Visible) }))

	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		session.AddObserver(metrics.NewCollectors(reg))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var srv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			logger.Info("serving metrics", slog.String("addr", metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	start := time.Now()
	g.Go(func() error {
		defer func() {
			if srv != nil {
				shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
				defer done()
				srv.Shutdown(shutdownCtx)
			}
		}()
		if duration > 0 {
			runCtx, stop := context.WithTimeout(gctx, duration)
			defer stop()
			if err := session.RunRealtime(runCtx, cfg.View.FPS, sim.NewClock(cfg.Animation.Clock)); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		}
		result, err := session.Run(gctx, sim.RunConfig{Frames: frames, Dt: dt})
		if err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			logger.Warn("frames skipped", slog.Int("count", len(result.Errors)))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	series := analysis.IntsToFloats(history)
	stats := analysis.Summarize(series)
	p := session.Params()

	fmt.Printf("completed %d frames in %v\n", session.Frames(), elapsed.Round(time.Millisecond))
	fmt.Printf("points: %d  backend: %s  formula: %s\n", session.Samples().Len(),
		session.Classifier().Backend().Name(), session.Classifier().Formula())
	fmt.Printf("final phase: %.6g rad  (period %.4g s at speed %.2f)\n", session.Phase(),
		analysis.Period(p.Speed, cfg.Animation.SpeedScale), p.Speed)
	fmt.Printf("visible: mean %.1f  sd %.1f  min %.0f  max %.0f\n", stats.Mean, stats.StdDev, stats.Min, stats.Max)
	if period := analysis.DominantPeriod(series, dt); period > 0 && duration == 0 {
		fmt.Printf("dominant period in visible count: %.4g s\n", period)
	}
	fmt.Println("\nmetrics:")
	for _, m := range summary {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("visible points per frame")))
	}

	if plotSVG != "" && len(series) > 1 {
		f, err := os.Create(plotSVG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.SeriesSVG(f, series, 800, 300, "#00ff88"); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", plotSVG)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	samples, err := sampler.New(cfg.Compute.Workers).Generate(cfg.Sampling.Points, cfg.Sampling.CubeWidth, cfg.Sampling.Seed)
	if err != nil {
		return err
	}
	logger.Debug("sweeping thresholds", slog.Int("steps", sweepSteps), slog.Float64("phase", sweepPhase))

	results, err := analysis.ThresholdSweep(samples, sweepPhase, analysis.LinearThresholds(sweepMin, sweepMax, sweepSteps), cfg.Backend())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THRESHOLD\tVISIBLE\tLOBE A\tLOBE B\tFRACTION")
	counts := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.3f\t%d\t%d\t%d\t%.4f\n", r.Threshold, r.Visible, r.LobeA, r.Visible-r.LobeA,
			float64(r.Visible)/float64(samples.Len()))
		counts[i] = float64(r.Visible)
	}
	w.Flush()

	if len(counts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(counts, asciigraph.Height(10), asciigraph.Caption("visible points vs threshold")))
	}
	return nil
}

// advance builds a session and steps it n times so exports reflect a
// moved phase.
func advance(cmd *cobra.Command, logOut io.Writer) (*sim.Session, *config.Config, func() error, error) {
	cfg, logger, closeLog, err := setup(cmd, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	session, err := buildSession(cfg, logger, nil)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	if _, err := session.Run(cmd.Context(), sim.RunConfig{Frames: max(frames, 1), Dt: dt}); err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return session, cfg, closeLog, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	session, cfg, closeLog, err := advance(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cam := render.NewCamera(float64(cfg.Sampling.CubeWidth) / 2)
	if err := export.CloudSVG(f, session.Samples(), session.Snapshot(), cam, svgWidth, svgHeight, maxPoints); err != nil {
		return err
	}
	fmt.Printf("wrote %s (phase %.6g)\n", outPath, session.Phase())
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	session, _, closeLog, err := advance(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.WriteCSV(w, session.Samples(), session.Snapshot())
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	samples, err := sampler.New(cfg.Compute.Workers).Generate(cfg.Sampling.Points, cfg.Sampling.CubeWidth, cfg.Sampling.Seed)
	if err != nil {
		return err
	}

	backends := []compute.Backend{
		compute.NewSerialBackend(),
		compute.NewCPUBackend(cfg.Compute.Workers),
		compute.NewCPUBackend(cfg.Compute.Workers).WithTrigTable(compute.NewTrigTable(compute.DefaultTableSize)),
	}

	reference := cloud.NewVisualState(samples.Len())
	state := cloud.FrameState{Phase: 1.234, Threshold: cfg.Simulation.Threshold}
	job := compute.Job{
		Samples: samples,
		Phase:   state.Phase,
		Cutoff:  state.Cutoff(),
		Formula: cfg.Formula(),
		N:       float64(cfg.Simulation.NProportion),
		M:       float64(cfg.Simulation.MProportion),
	}
	job.Out = reference
	backends[0].Classify(job)

	fmt.Printf("benchmarking %d points, %d frames per backend\n\n", samples.Len(), frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tFRAME\tPOINTS/SEC\tAGREEMENT")

	for _, b := range backends {
		out := cloud.NewVisualState(samples.Len())
		job.Out = out
		start := time.Now()
		for i := 0; i < frames; i++ {
			b.Classify(job)
		}
		per := time.Since(start) / time.Duration(max(frames, 1))
		rate := float64(samples.Len()) / per.Seconds()
		agreement := analysis.Overlap(reference.Visible, out.Visible)
		fmt.Fprintf(w, "%s\t%v\t%.3g\t%.5f\n", b.Name(), per.Round(time.Microsecond), rate, agreement)
		logger.Debug("bench", slog.String("backend", b.Name()), slog.Duration("frame", per))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	session, err := buildSession(cfg, logger, nil)
	if err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, session, logger)
	if err != nil {
		return err
	}

	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTHRESHOLD\tSPEED\tPHASE\tMEAN VISIBLE\tSD\tSKIPPED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%.2f\t%.4g\t%.1f\t%.1f\t%d\n", r.Step, r.Params.Threshold, r.Params.Speed,
			r.Phase, r.Summary.Mean, r.Summary.StdDev, r.Skipped)
	}
	return w.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	build := func(seed int64) (*sim.Session, error) {
		trialCfg := *cfg
		trialCfg.Sampling.Seed = seed
		return buildSession(&trialCfg, logger, nil)
	}
	results, err := automation.RunTrials(cmd.Context(), automation.TrialConfig{
		NumTrials: numTrials,
		BaseSeed:  cfg.Sampling.Seed,
		Frames:    frames,
		Dt:        dt,
		Parallel:  parallel,
	}, build)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tVISIBLE\tLOBE A")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.5f\t%.4f\n", r.TrialID, r.Seed, r.VisibleFraction, r.LobeAFraction)
	}
	w.Flush()

	spread := automation.TrialSpread(results)
	fmt.Printf("\nvisible fraction: mean %.5f  sd %.5f  range [%.5f, %.5f]\n", spread.Mean, spread.StdDev, spread.Min, spread.Max)
	return nil
}
