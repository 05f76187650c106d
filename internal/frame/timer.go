package frame

// Timing is the per-frame clock snapshot.
type Timing struct {
	DeltaTime   float64
	CurrentTime float64
	// FrameRate counts the frames of the last complete second. It only
	// changes once per second.
	FrameRate int
}

// Clock returns monotonic seconds.
type Clock func() float64

type Timer struct {
	prev       float64
	lastSample float64
	counter    int
	timing     Timing
}

func NewTimer(now float64) *Timer {
	return &Timer{prev: now, lastSample: now, timing: Timing{CurrentTime: now}}
}

// Tick advances the timer to now. sampled is true when a new frame rate
// was taken on this tick.
func (t *Timer) Tick(now float64) (timing Timing, sampled bool) {
	dt := now - t.prev
	if dt < 0 {
		dt = 0
	}
	t.prev = now
	t.counter++

	if now-t.lastSample >= 1.0 {
		t.timing.FrameRate = t.counter
		t.counter = 0
		t.lastSample += 1.0
		// after a stall skip the missed seconds instead of emitting a
		// burst of near-empty samples
		for now-t.lastSample >= 1.0 {
			t.lastSample += 1.0
		}
		sampled = true
	}

	t.timing.DeltaTime = dt
	t.timing.CurrentTime = now
	return t.timing, sampled
}

func (t *Timer) Timing() Timing { return t.timing }

// Reset restarts timing at now without publishing the gap. The next Tick
// measures from now and the frame counter starts a fresh second.
func (t *Timer) Reset(now float64) {
	t.prev = now
	t.lastSample = now
	t.counter = 0
	t.timing.DeltaTime = 0
	t.timing.CurrentTime = now
}
