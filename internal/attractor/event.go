package attractor

import "sync"

type Kind int

const (
	PointerMove Kind = iota
	ButtonChange
)

type Button int

const (
	Primary Button = iota
	Secondary
	Middle
	Other
)

type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is a single input sample in window coordinates.
type Event struct {
	Kind   Kind
	X, Y   float32
	Button Button
	Action Action
}

func Move(x, y float32) Event {
	return Event{Kind: PointerMove, X: x, Y: y}
}

func Click(b Button, a Action) Event {
	return Event{Kind: ButtonChange, Button: b, Action: a}
}

// Queue buffers events between drains. Push may be called from any
// goroutine; Drain is meant for the frame loop only.
type Queue struct {
	mu      sync.Mutex
	pending []Event
	spare   []Event
}

func NewQueue() *Queue {
	return &Queue{pending: make([]Event, 0, 64), spare: make([]Event, 0, 64)}
}

func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain applies all pending events to s in arrival order and returns how
// many were applied.
func (q *Queue) Drain(s *State) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.mu.Unlock()

	for _, ev := range batch {
		s.Apply(ev)
	}

	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}
