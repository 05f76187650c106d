package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/particle"
)

// MeanSpeed averages particle speed over every observation.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(s *particle.Store, _ mgl32.Vec2, _ float64) {
	m.sum += Speed(s)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// MaxSpeed is the highest single-particle speed seen so far.
type MaxSpeed struct {
	name string
	peak float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s *particle.Store, _ mgl32.Vec2, _ float64) {
	for _, v := range s.Velocities {
		m.peak = math.Max(m.peak, float64(v.Len()))
	}
}

func (m *MaxSpeed) Value() float64 { return m.peak }
func (m *MaxSpeed) Reset()         { m.peak = 0 }

// Speed is the mean particle speed of s.
func Speed(s *particle.Store) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Velocities {
		sum += float64(v.Len())
	}
	return sum / float64(n)
}
