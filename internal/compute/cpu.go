package compute

import (
	"fmt"
	"runtime"

	"github.com/san-kum/particles/internal/particle"
	"golang.org/x/sync/errgroup"
)

// CPUBackend runs the simulation kernel on the host. It processes the store
// work group by work group, the same partition the GPU dispatch uses, and
// spreads groups over all cores.
type CPUBackend struct {
	store     *particle.Store
	groupSize int
	groups    int
	workers   int
}

func NewCPUBackend(store *particle.Store, groupSize int) (*CPUBackend, error) {
	groups, err := Groups(store.Len(), groupSize)
	if err != nil {
		return nil, err
	}
	return &CPUBackend{
		store:     store,
		groupSize: groupSize,
		groups:    int(groups),
		workers:   runtime.NumCPU(),
	}, nil
}

func (c *CPUBackend) Name() string { return "cpu" }
func (c *CPUBackend) Len() int     { return c.store.Len() }
func (c *CPUBackend) Cleanup()     {}

// Store exposes the particle state for observers. It is only consistent
// between calls to Step.
func (c *CPUBackend) Store() *particle.Store { return c.store }

func (c *CPUBackend) Step(p Params) error {
	if c.groups < 16 {
		c.stepGroups(0, c.groups, p)
		return nil
	}

	var g errgroup.Group
	g.SetLimit(c.workers)

	chunk := (c.groups + c.workers - 1) / c.workers
	for start := 0; start < c.groups; start += chunk {
		end := min(start+chunk, c.groups)
		g.Go(func() error {
			c.stepGroups(start, end, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("cpu step: %w", err)
	}
	return nil
}

func (c *CPUBackend) stepGroups(from, to int, p Params) {
	pos := c.store.Positions
	vel := c.store.Velocities
	for i := from * c.groupSize; i < to*c.groupSize; i++ {
		pos[i], vel[i] = advance(uint32(i), pos[i], vel[i], p)
	}
}
