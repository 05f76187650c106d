package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/metrics"
	"github.com/san-kum/particles/internal/particle"
)

const (
	statsWidth     = 30
	minCols        = 10
	minRows        = 5
	ticksPerSecond = 60
)

type TickMsg time.Time

// Model drives a running orchestrator from Bubble Tea ticks. The
// orchestrator must already be started with term as surface and renderer.
type Model struct {
	orch   *frame.Orchestrator
	term   *Terminal
	store  *particle.Store
	rng    *rand.Rand
	paused bool
	err    error
}

func NewModel(orch *frame.Orchestrator, term *Terminal, store *particle.Store, rng *rand.Rand) Model {
	return Model{orch: orch, term: term, store: store, rng: rng}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/ticksPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused {
				if err := m.orch.Resume(); err != nil {
					m.err = err
				}
			}
		case "r":
			w, h := m.term.Size()
			if err := m.store.Fill(float32(w), float32(h), m.rng); err != nil {
				m.err = err
			}
		}
	case tea.MouseMsg:
		for _, ev := range MouseEvents(m.term, msg) {
			m.orch.Queue().Push(ev)
		}
	case tea.WindowSizeMsg:
		m.term.Resize(max(msg.Width-statsWidth, minCols), max(msg.Height-1, minRows))
	case TickMsg:
		if !m.paused {
			if err := m.orch.Frame(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, tick()
	}
	return m, nil
}

// Err is the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(Title.Render("PARTICLES") + "\n")
	if m.paused {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	timing := m.orch.Timing()
	a := m.orch.Attractor()
	s.WriteString(Metric("particles", fmt.Sprintf("%d", m.store.Len())) + "\n")
	s.WriteString(Metric("fps", fmt.Sprintf("%d", timing.FrameRate)) + "\n")
	s.WriteString(Metric("frames", fmt.Sprintf("%d", m.orch.Frames())) + "\n")
	s.WriteString(Metric("speed", fmt.Sprintf("%.1f px/s", metrics.Speed(m.store))) + "\n")
	s.WriteString(MetricLabel.Render("force") + forceLabel(a) + "\n")
	if n := m.orch.Failures(); n > 0 {
		s.WriteString(Metric("errors", fmt.Sprintf("%d", n)) + "\n")
	}
	if m.err != nil {
		s.WriteString(Repel.Render(m.err.Error()) + "\n")
	}
	s.WriteString(KeyHint.Render("\nLMB attract  RMB repel\nSPC pause  R respawn  Q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, m.term.Screen(), Panel.Render(s.String()))
}

func forceLabel(a attractor.State) string {
	switch {
	case !a.Active():
		return MetricValue.Render("off")
	case a.Force > 0:
		return Attract.Render(fmt.Sprintf("attract %.1f", a.Force))
	}
	return Repel.Render(fmt.Sprintf("repel %.1f", a.Force))
}

// MouseEvents translates a terminal mouse message into attractor events.
// Positions outside the canvas only release buttons.
func MouseEvents(t *Terminal, msg tea.MouseMsg) []attractor.Event {
	x, y, inside := t.Cell(msg.X, msg.Y)

	var out []attractor.Event
	if inside && (msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress) {
		out = append(out, attractor.Move(x, y))
	}

	switch msg.Action {
	case tea.MouseActionPress:
		b, ok := mouseButton(msg.Button)
		if ok && inside {
			out = append(out, attractor.Click(b, attractor.Press))
		}
	case tea.MouseActionRelease:
		b, _ := mouseButton(msg.Button)
		out = append(out, attractor.Click(b, attractor.Release))
	}
	return out
}

func mouseButton(b tea.MouseButton) (attractor.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return attractor.Primary, true
	case tea.MouseButtonRight:
		return attractor.Secondary, true
	case tea.MouseButtonMiddle:
		return attractor.Middle, true
	case tea.MouseButtonNone:
		// legacy terminals report releases without a button
		return attractor.Other, true
	}
	return attractor.Other, false
}
