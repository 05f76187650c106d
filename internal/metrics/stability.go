package metrics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/particle"
)

// Containment is the lowest fraction of particles found inside the bounds
// at any observation. Reflection at the edges keeps it at 1.
type Containment struct {
	name    string
	lowest  float64
	samples int
}

func NewContainment() *Containment {
	return &Containment{name: "containment", lowest: 1}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(s *particle.Store, bounds mgl32.Vec2, _ float64) {
	c.samples++
	if f := Inside(s, bounds); f < c.lowest {
		c.lowest = f
	}
}

func (c *Containment) Value() float64 { return c.lowest }

func (c *Containment) Reset() {
	c.lowest = 1
	c.samples = 0
}

// Inside is the fraction of positions within [0, bounds] on both axes.
func Inside(s *particle.Store, bounds mgl32.Vec2) float64 {
	n := s.Len()
	if n == 0 {
		return 1
	}
	in := 0
	for _, p := range s.Positions {
		if p[0] >= 0 && p[0] <= bounds[0] && p[1] >= 0 && p[1] <= bounds[1] {
			in++
		}
	}
	return float64(in) / float64(n)
}
