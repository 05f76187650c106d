// Package metrics observes a particle store between steps.
package metrics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/particle"
)

// Metric accumulates over successive observations of the same store.
type Metric interface {
	Name() string
	Observe(s *particle.Store, bounds mgl32.Vec2, t float64)
	Value() float64
	Reset()
}

// Set observes several metrics at once.
type Set []Metric

func (ms Set) Observe(s *particle.Store, bounds mgl32.Vec2, t float64) {
	for _, m := range ms {
		m.Observe(s, bounds, t)
	}
}

func (ms Set) Values() map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

func (ms Set) Reset() {
	for _, m := range ms {
		m.Reset()
	}
}
