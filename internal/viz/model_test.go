package viz

import (
	"math"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/compute"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/particle"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	now := 0.0
	return newClockedModel(t, func() float64 { now += 1.0 / 60; return now })
}

func newClockedModel(t *testing.T, clock frame.Clock) Model {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	store, err := particle.NewStore(200, 800, 600, rng)
	if err != nil {
		t.Fatal(err)
	}
	backend, err := compute.NewCPUBackend(store, 20)
	if err != nil {
		t.Fatal(err)
	}
	term := NewTerminal(store, 800, 600, 40, 10)

	orch := frame.New(frame.Options{Clock: clock})
	err = orch.Start(func() (frame.Stages, error) {
		return frame.Stages{Surface: term, Simulator: backend, Renderer: term}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(orch.Shutdown)
	return NewModel(orch, term, store, rng)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTickRunsFrames(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.orch.Frames() != 1 {
		t.Errorf("expected one frame, got %d", m.orch.Frames())
	}
	if m.term.Screen() == "" {
		t.Error("frame should have been presented")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m, _ = update(m, TickMsg(time.Now()))
	if m.orch.Frames() != 1 {
		t.Errorf("paused model advanced to frame %d", m.orch.Frames())
	}
}

func TestModelMouseDrivesAttractor(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(m, tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.orch.Attractor().Force != 0 {
		t.Error("input must wait for the frame to drain it")
	}

	m, _ = update(m, TickMsg(time.Now()))
	a := m.orch.Attractor()
	if a.Force != attractor.DefaultAttract {
		t.Errorf("force = %f, want %f", a.Force, attractor.DefaultAttract)
	}
	if a.Position[0] != 410 || a.Position[1] != 330 {
		t.Errorf("position = %v", a.Position)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, TickMsg(time.Now()))
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestModelResumeSkipsPausedTime(t *testing.T) {
	now := 0.0
	m := newClockedModel(t, func() float64 { return now })
	m.store.Positions[0] = mgl32.Vec2{400, 300}
	m.store.Velocities[0] = mgl32.Vec2{50, 0}

	now = 1.0 / 60
	m, _ = update(m, TickMsg(time.Now()))

	space := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	m, _ = update(m, space)
	now += 30
	m, _ = update(m, TickMsg(time.Now()))
	m, _ = update(m, space)

	before := m.store.Positions[0]
	now += 1.0 / 60
	m, _ = update(m, TickMsg(time.Now()))

	if dt := m.orch.Timing().DeltaTime; math.Abs(dt-1.0/60) > 1e-9 {
		t.Errorf("dt after resume = %v, want one frame", dt)
	}
	if moved := m.store.Positions[0].Sub(before).Len(); moved > 1 {
		t.Errorf("particle jumped %v px from %v to %v", moved, before, m.store.Positions[0])
	}
}
