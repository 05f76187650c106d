package particle

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Store is host-resident particle state.
type Store struct {
	Positions  []mgl32.Vec2
	Velocities []mgl32.Vec2
}

// NewStore allocates n particles and spawns them uniformly inside
// [0,width)x[0,height) at rest.
func NewStore(n int, width, height float32, rng *rand.Rand) (*Store, error) {
	if n <= 0 {
		return nil, fmt.Errorf("new store (n=%d): %w", n, ErrInvalidCount)
	}
	s := &Store{
		Positions:  make([]mgl32.Vec2, n),
		Velocities: make([]mgl32.Vec2, n),
	}
	if err := s.Fill(width, height, rng); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Len() int { return len(s.Positions) }

// Fill respawns every particle in place.
func (s *Store) Fill(width, height float32, rng *rand.Rand) error {
	return Fill(s.Positions, s.Velocities, width, height, rng)
}

// Clone returns a deep copy, mostly useful for comparing two steps.
func (s *Store) Clone() *Store {
	c := &Store{
		Positions:  make([]mgl32.Vec2, len(s.Positions)),
		Velocities: make([]mgl32.Vec2, len(s.Velocities)),
	}
	copy(c.Positions, s.Positions)
	copy(c.Velocities, s.Velocities)
	return c
}

// IsValid reports whether every component is finite.
func (s *Store) IsValid() bool {
	for i := range s.Positions {
		if !finite(s.Positions[i]) || !finite(s.Velocities[i]) {
			return false
		}
	}
	return true
}

// Fill writes uniform random positions in [0,width)x[0,height) and zero
// velocities. It is used for host slices and for mapped GPU memory alike.
func Fill(positions, velocities []mgl32.Vec2, width, height float32, rng *rand.Rand) error {
	if len(positions) != len(velocities) {
		return fmt.Errorf("fill %d/%d: %w", len(positions), len(velocities), ErrLengthMismatch)
	}
	if err := Spawn(positions, width, height, rng); err != nil {
		return err
	}
	Rest(velocities)
	return nil
}

// Spawn places every position uniformly inside [0,width)x[0,height).
func Spawn(positions []mgl32.Vec2, width, height float32, rng *rand.Rand) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("spawn %gx%g: %w", width, height, ErrInvalidBounds)
	}
	for i := range positions {
		positions[i] = mgl32.Vec2{spawn(rng, width), spawn(rng, height)}
	}
	return nil
}

// Rest zeroes every velocity.
func Rest(velocities []mgl32.Vec2) {
	for i := range velocities {
		velocities[i] = mgl32.Vec2{}
	}
}

// spawn draws from [0, limit). Float32 rounding can land exactly on limit for
// large extents, so that case is pulled back to the closest smaller value.
func spawn(rng *rand.Rand, limit float32) float32 {
	v := rng.Float32() * limit
	if v >= limit {
		v = math.Nextafter32(limit, 0)
	}
	return v
}

func finite(v mgl32.Vec2) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
