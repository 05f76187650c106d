package metrics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/particle"
)

// KineticEnergy is the mean per-particle kinetic energy (unit mass) of the
// latest observation.
type KineticEnergy struct {
	name    string
	current float64
	initial float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *particle.Store, _ mgl32.Vec2, _ float64) {
	e.current = Energy(s)
	if e.samples == 0 {
		e.initial = e.current
	}
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }

// Gain is the ratio of the latest to the first observed energy. It is 1
// until the second observation and 0 when the first observation was at
// rest.
func (e *KineticEnergy) Gain() float64 {
	if e.samples == 0 {
		return 1
	}
	if e.initial == 0 {
		if e.current == 0 {
			return 1
		}
		return 0
	}
	return e.current / e.initial
}

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.initial = 0
	e.samples = 0
}

// Energy is 0.5*|v|^2 averaged over the store.
func Energy(s *particle.Store) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Velocities {
		sum += 0.5 * float64(v.Dot(v))
	}
	return sum / float64(n)
}
