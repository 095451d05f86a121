package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/bench"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/gui/ebitenui"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/trace"
	"github.com/san-kum/orrery/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const maxSnapshotCells = 1 << 20

var (
	configFile string
	preset     string
	stepHz     float64
	maxSteps   int
	logFile    string
	metricsOut string
	theme      string

	backend string

	steps     int
	traceSVG  bool
	traceBody string

	snapCols  int
	snapRows  int
	snapScale float64

	benchFrames     int
	benchFPS        []float64
	benchStallEvery int
	benchStall      time.Duration
)

// main runs the terminal view when no subcommand is given. It exits with
// status 1 if the command fails.
func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("orrery: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Defining the flags resets the
// package-level flag variables to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "orbital scene with a fixed-timestep loop",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scene file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset scene")
	rootCmd.PersistentFlags().Float64Var(&stepHz, "step-hz", config.DefaultStepHz, "simulation steps per second")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "most steps one frame may run")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&logFile, "log", "", "write logs to this file")
		c.Flags().StringVar(&metricsOut, "metrics", "", "write frame metrics (prometheus text) to this file on exit")
		c.Flags().StringVar(&theme, "theme", "", "starting theme: "+strings.Join(tui.ThemeNames(), ", "))
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend: raylib or ebiten")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "step the scene headless and print positions as CSV",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&steps, "steps", 600, "number of steps")
	traceCmd.Flags().BoolVar(&traceSVG, "svg", false, "print the path of one body as SVG instead")
	traceCmd.Flags().StringVar(&traceBody, "body", "earth", "body to follow with --svg (or \"ship\")")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "print one braille-rendered frame as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&steps, "steps", 0, "steps to run before the frame")
	snapshotCmd.Flags().IntVar(&snapCols, "cols", 120, "canvas width in cells")
	snapshotCmd.Flags().IntVar(&snapRows, "rows", 40, "canvas height in cells")
	snapshotCmd.Flags().Float64Var(&snapScale, "scale", 4, "pixels per dot")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "drive the frame loop from a synthetic clock",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames to run")
	benchCmd.Flags().Float64SliceVar(&benchFPS, "fps", []float64{60}, "simulated display rates, run in parallel")
	benchCmd.Flags().IntVar(&benchStallEvery, "stall-every", 0, "insert a stall every N frames")
	benchCmd.Flags().DurationVar(&benchStall, "stall", 250*time.Millisecond, "length of each stall")
	benchCmd.Flags().StringVar(&metricsOut, "metrics", "", "write frame metrics (prometheus text) to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tROOT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				n := 0
				p.Root.Walk(func(*config.BodyConfig) { n++ })
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, n, p.Root.Name)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, traceCmd, snapshotCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig resolves the scene, then applies the loop flags the user set
// explicitly. With both --config and --preset, the file is applied on top of
// the preset, which replaces any `preset:` key in the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.LoadOnto(configFile, preset)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "loaded config from %s\n", configFile)
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %s)", config.ErrUnknownPreset, preset, strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("step-hz") {
		cfg.Loop.StepHz = stepHz
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.Loop.MaxSteps = maxSteps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg, tui.Options{LogPath: logFile, MetricsPath: metricsOut, Theme: theme})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	switch backend {
	case "raylib":
		return gui.Run(cfg)
	case "ebiten":
		return ebitenui.Run(cfg)
	default:
		return fmt.Errorf("unknown backend: %s (available: raylib, ebiten)", backend)
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := scene.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dt := cfg.Step().Seconds()
	if !traceSVG {
		return trace.Write(ctx, os.Stdout, sc, steps, dt)
	}
	pts, err := trace.Track(sc, traceBody, steps, dt)
	if err != nil {
		return err
	}
	return trace.PathSVG(os.Stdout, pts, cfg.Width, cfg.Height, "#00ff88")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := scene.New(cfg)
	if err != nil {
		return err
	}
	if steps < 0 {
		return trace.ErrInvalidSteps
	}
	if snapCols < 1 || snapRows < 1 || snapCols > maxSnapshotCells/snapRows {
		return fmt.Errorf("snapshot canvas must be at least 1x1 and at most %d cells, got %dx%d", maxSnapshotCells, snapCols, snapRows)
	}
	for i := 0; i < steps; i++ {
		sc.Update(cfg.Step().Seconds())
	}

	canvas := render.NewBraille(snapCols, snapRows)
	canvas.SetViewport(sc.Size())
	sc.Draw(canvas)
	return trace.CanvasSVG(os.Stdout, canvas, snapScale)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := bench.DefaultOptions()
	opts.Frames = benchFrames
	opts.StallEvery = benchStallEvery
	opts.Stall = benchStall
	if metricsOut != "" {
		opts.Metrics = metrics.NewCollector()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %s, step %v, cap %d\n\n", cfg.Name, cfg.Step(), cfg.Loop.MaxSteps)
	reports, err := bench.Sweep(ctx, cfg, opts, benchFPS)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DISPLAY\tFRAMES\tSTEPS\tCAPPED\tDROPPED\tSIM TIME\tFPS\tWALL\tFRAMES/SEC")
	for _, r := range reports {
		st := r.Stats
		fmt.Fprintf(w, "%.0f\t%d\t%d\t%d\t%v\t%.2fs\t%.1f\t%v\t%.0f\n",
			r.FPS, st.Frames, st.Steps, st.CappedFrames, st.Dropped, st.SimTime, st.FPS,
			r.Wall.Round(time.Microsecond), r.FramesPerSecond())
		if st.CappedFrames > 0 {
			log.Printf("%.0f fps: %d frames hit the %d-step cap", r.FPS, st.CappedFrames, cfg.Loop.MaxSteps)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if opts.Metrics != nil {
		if err := opts.Metrics.WriteFile(metricsOut); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if len(reports) == 1 && len(reports[0].StepsPerFrame) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(reports[0].StepsPerFrame, asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("steps per frame")))
	}
	return nil
}
