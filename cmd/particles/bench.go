package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/compute"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/logging"
	"github.com/san-kum/particles/internal/metrics"
	"github.com/san-kum/particles/internal/particle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	benchSteps int
	benchDt    float64
	benchCoast bool
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff642e")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type benchResult struct {
	steps     int
	elapsed   time.Duration
	speeds    []float64
	values    map[string]float64
	finite    bool
	gain      float64
	particles int
}

// runBench holds the attractor at the center for the first half of the
// run and releases it for the second, so the report shows both the pull
// and the coasting phase.
func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "small")
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := bench(cfg, benchSteps, float32(benchDt), !benchCoast, log)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(res.speeds,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("mean speed (px/s) per step")))
	fmt.Println()
	fmt.Println(report(res))
	return nil
}

func bench(cfg *config.Config, steps int, dt float32, attract bool, log *zap.Logger) (*benchResult, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", config.ErrInvalid, steps)
	}

	bounds := mgl32.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)}
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	store, err := particle.NewStore(cfg.Simulation.Particles, bounds[0], bounds[1], rng)
	if err != nil {
		return nil, err
	}
	backend, err := compute.NewCPUBackend(store, cfg.Simulation.WorkGroupSize)
	if err != nil {
		return nil, err
	}
	defer backend.Cleanup()

	a := attractor.New(cfg.Attractor.Attract, cfg.Attractor.Repel)
	a.Apply(attractor.Move(bounds[0]/2, bounds[1]/2))
	if attract {
		a.Apply(attractor.Click(attractor.Primary, attractor.Press))
	}

	energy := metrics.NewKineticEnergy()
	set := metrics.Set{energy, metrics.NewMeanSpeed(), metrics.NewMaxSpeed(), metrics.NewContainment()}

	res := &benchResult{steps: steps, particles: store.Len(), speeds: make([]float64, 0, steps)}
	log.Info("bench",
		zap.String("backend", backend.Name()),
		zap.Int("particles", store.Len()),
		zap.Int("steps", steps),
		zap.Bool("attract", attract))

	start := time.Now()
	for i := 0; i < steps; i++ {
		if i == steps/2 {
			a.Apply(attractor.Click(attractor.Primary, attractor.Release))
			// energy gain is measured over the coasting half only
			energy.Reset()
		}
		err := backend.Step(compute.Params{
			Dt:                dt,
			FrameBufferSize:   bounds,
			AttractorPosition: a.Position,
			AttractorForce:    a.Force,
		})
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		set.Observe(store, bounds, float64(i+1)*float64(dt))
		res.speeds = append(res.speeds, metrics.Speed(store))
	}
	res.elapsed = time.Since(start)
	res.values = set.Values()
	res.gain = energy.Gain()
	res.finite = store.IsValid()

	log.Debug("bench done", zap.Duration("elapsed", res.elapsed), zap.Any("metrics", res.values))
	return res, nil
}

// Bounded reports whether the run kept every particle finite and inside
// the bounds and did not gain energy while coasting.
func (r *benchResult) Bounded() bool {
	return r.finite && r.values["containment"] == 1 && r.gain <= 1+1e-4
}

func report(r *benchResult) string {
	secs := r.elapsed.Seconds()
	if secs <= 0 {
		secs = 1e-9
	}
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("BENCH") + "\n")
	s.WriteString(row("particles", fmt.Sprintf("%d", r.particles)) + "\n")
	s.WriteString(row("steps", fmt.Sprintf("%d in %s", r.steps, r.elapsed.Round(time.Millisecond))) + "\n")
	s.WriteString(row("steps/s", fmt.Sprintf("%.1f", float64(r.steps)/secs)) + "\n")
	s.WriteString(row("particle steps/s", fmt.Sprintf("%.3g", float64(r.steps)*float64(r.particles)/secs)) + "\n")
	s.WriteString(row("kinetic energy", fmt.Sprintf("%.1f", r.values["kinetic_energy"])) + "\n")
	s.WriteString(row("max speed", fmt.Sprintf("%.1f px/s", r.values["max_speed"])) + "\n")
	s.WriteString(row("containment", fmt.Sprintf("%.4f", r.values["containment"])) + "\n")
	if r.Bounded() {
		s.WriteString(row("bounded", okStyle.Render("yes")))
	} else {
		s.WriteString(row("bounded", failStyle.Render("NO")))
	}
	return boxStyle.Render(s.String())
}
