package viz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/compute"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/particle"
	"go.uber.org/zap"
)

// Run simulates cfg on the CPU backend and shows it in the terminal until
// the user quits or ctx is done.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	w, h := cfg.Window.Width, cfg.Window.Height

	var (
		term  *Terminal
		store *particle.Store
	)

	start := time.Now()
	orch := frame.New(frame.Options{
		Attractor: attractor.New(cfg.Attractor.Attract, cfg.Attractor.Repel),
		Clock:     func() float64 { return time.Since(start).Seconds() },
		Logger:    log,
	})

	err := orch.Start(func() (frame.Stages, error) {
		var err error
		store, err = particle.NewStore(cfg.Simulation.Particles, float32(w), float32(h), rng)
		if err != nil {
			return frame.Stages{}, err
		}
		backend, err := compute.NewCPUBackend(store, cfg.Simulation.WorkGroupSize)
		if err != nil {
			return frame.Stages{}, err
		}
		term = NewTerminal(store, w, h, 80, 24)
		return frame.Stages{
			Surface:   term,
			Simulator: backend,
			Renderer:  term,
			Barrier:   frame.NoBarrier{},
		}, nil
	})
	if err != nil {
		return fmt.Errorf("watch setup: %w", err)
	}
	defer orch.Shutdown()

	log.Info("watching",
		zap.Int("particles", store.Len()),
		zap.Int("work_group_size", cfg.Simulation.WorkGroupSize))

	p := tea.NewProgram(
		NewModel(orch, term, store, rng),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
