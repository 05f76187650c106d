package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/compute"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/gpu"
	"github.com/san-kum/particles/internal/logging"
	"github.com/san-kum/particles/internal/render"
	"github.com/san-kum/particles/internal/viz"
	"github.com/san-kum/particles/internal/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string

	particles int
	workGroup int
	width     int
	height    int
	vsync     bool
	seed      int64
)

// GL calls must stay on the main thread.
func init() { runtime.LockOSThread() }

// main registers the commands and exits with status 1 when any of them
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "particles",
		Short:        "gpu particle attractor",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", config.DefaultParticles, "particle count")
	rootCmd.PersistentFlags().IntVar(&workGroup, "work-group", config.DefaultWorkGroupSize, "compute work group size")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	rootCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	rootCmd.Flags().BoolVar(&vsync, "vsync", false, "sync buffer swaps to the display")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the simulation headless on the cpu and report",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 300, "steps to simulate")
	benchCmd.Flags().Float64Var(&benchDt, "dt", 1.0/60, "timestep in seconds")
	benchCmd.Flags().BoolVar(&benchCoast, "coast", false, "leave the attractor off for the whole run")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the simulation on the cpu and draw it in the terminal",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here instead of discarding them")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(benchCmd, watchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, the preset or config file, and finally
// any flag set on the command line. fallback is the preset used when
// neither --preset nor --config is given.
func resolveConfig(cmd *cobra.Command, fallback string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", config.ErrInvalid, preset)
		}
	default:
		cfg = config.GetPreset(fallback)
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Simulation.Particles = particles
	}
	if flags.Changed("work-group") {
		cfg.Simulation.WorkGroupSize = workGroup
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("vsync") {
		cfg.Window.VSync = vsync
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "default")
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signalContext(cmd)
	defer stop()

	queue := attractor.NewQueue()
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))

	var win *window.Window
	orch := frame.New(frame.Options{
		Queue:     queue,
		Attractor: attractor.New(cfg.Attractor.Attract, cfg.Attractor.Repel),
		Clock:     glfw.GetTime,
		Logger:    log,
		OnFrameRate: func(fps int) {
			win.ShowFrameRate(fps, cfg.Simulation.Particles)
		},
	})

	log.Info("starting",
		zap.Int("particles", cfg.Simulation.Particles),
		zap.Int("work_group_size", cfg.Simulation.WorkGroupSize),
		zap.Int("work_groups", cfg.WorkGroups()))

	err = orch.Run(ctx, func() (frame.Stages, error) {
		var st frame.Stages

		w, err := window.Open(cfg.Window, queue, log)
		if err != nil {
			return st, err
		}
		win, st.Surface = w, w

		ww, wh := w.Size()
		backend, err := compute.NewOpenGLBackend(cfg.Simulation.Particles, cfg.Simulation.WorkGroupSize,
			float32(ww), float32(wh), rng, log)
		if err != nil {
			return st, err
		}
		st.Simulator = backend

		r, err := render.NewRenderer(backend.Positions(), backend.Velocities(), cfg.Render.PointSize, log)
		if err != nil {
			return st, err
		}
		st.Renderer = r
		st.Barrier = gpu.StorageBarrier{}
		return st, nil
	})
	if err != nil {
		return err
	}

	log.Info("stopped", zap.Uint64("frames", orch.Frames()), zap.Uint64("failures", orch.Failures()))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "tiny")
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs go to a file or nowhere
	log := zap.NewNop()
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if log, err = logging.NewWriter(cfg.LogLevel, f); err != nil {
			return err
		}
		defer log.Sync()
	}

	ctx, stop := signalContext(cmd)
	defer stop()
	return viz.Run(ctx, cfg, log)
}

func listPresets(cmd *cobra.Command, args []string) error {
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Printf("%-8s %9d particles  work group %d\n", name, p.Particles, p.WorkGroupSize)
	}
	return nil
}
