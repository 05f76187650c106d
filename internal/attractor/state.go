// Package attractor owns the pointer-driven force source.
//
// Input never writes the state directly. Event sources push into a [Queue]
// and the frame loop drains it once per frame, so the simulation always sees
// a state that cannot change underneath it.
package attractor

import "github.com/go-gl/mathgl/mgl32"

const (
	// DefaultAttract is the force applied while the primary button is held.
	DefaultAttract float32 = 1.0
	// DefaultRepel is the force applied while the secondary button is held.
	DefaultRepel float32 = -1.2
)

// State is the attractor as seen by the simulation.
// Force is 0 when inactive, positive to attract and negative to repel.
type State struct {
	Position mgl32.Vec2
	Force    float32

	attract float32
	repel   float32
}

// New returns an inactive attractor at the origin.
func New(attract, repel float32) *State {
	return &State{attract: attract, repel: repel}
}

func (s *State) Active() bool { return s.Force != 0 }

// Apply folds a single event into the state. The last button event wins.
func (s *State) Apply(ev Event) {
	switch ev.Kind {
	case PointerMove:
		s.Position = mgl32.Vec2{ev.X, ev.Y}
	case ButtonChange:
		s.Force = 0
		if ev.Action != Press {
			return
		}
		switch ev.Button {
		case Primary:
			s.Force = s.attract
		case Secondary:
			s.Force = s.repel
		}
	}
}
