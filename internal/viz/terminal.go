package viz

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/particle"
)

// Terminal is a frame surface and renderer backed by a braille canvas. The
// simulation keeps its own pixel space of Width x Height; the canvas is
// scaled onto it by the projection, so the terminal can be resized without
// touching particle state.
type Terminal struct {
	store  *particle.Store
	width  int
	height int

	mu     sync.Mutex
	canvas *Canvas
	screen string
	closed bool
}

func NewTerminal(store *particle.Store, width, height, cols, rows int) *Terminal {
	return &Terminal{
		store:  store,
		width:  width,
		height: height,
		canvas: NewCanvas(cols, rows),
	}
}

func (t *Terminal) ShouldClose() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Terminal) Size() (int, int)            { return t.width, t.height }
func (t *Terminal) FramebufferSize() (int, int) { return t.width, t.height }

// SwapBuffers publishes the drawn canvas for View.
func (t *Terminal) SwapBuffers() {
	t.mu.Lock()
	t.screen = t.canvas.String()
	t.mu.Unlock()
}

// PollEvents has nothing to fetch: bubbletea pushes input into the queue
// from its own goroutine.
func (t *Terminal) PollEvents() {}

func (t *Terminal) Terminate() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// Resize swaps the canvas for one of cols x rows cells.
func (t *Terminal) Resize(cols, rows int) {
	if cols < 1 || rows < 1 {
		return
	}
	t.mu.Lock()
	t.canvas = NewCanvas(cols, rows)
	t.mu.Unlock()
}

// Screen is the last presented frame.
func (t *Terminal) Screen() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen
}

func (t *Terminal) Canvas() *Canvas {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canvas
}

// Cell maps a terminal cell to simulation pixels, at the cell center.
func (t *Terminal) Cell(col, row int) (float32, float32, bool) {
	t.mu.Lock()
	cols, rows := t.canvas.Width, t.canvas.Height
	t.mu.Unlock()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return 0, 0, false
	}
	x := (float32(col) + 0.5) * float32(t.width) / float32(cols)
	y := (float32(row) + 0.5) * float32(t.height) / float32(rows)
	return x, y, true
}

// Viewport is fixed by the canvas.
func (t *Terminal) Viewport(w, h int) {}

func (t *Terminal) Clear() {
	t.mu.Lock()
	t.canvas.Clear()
	t.mu.Unlock()
}

// Draw projects every particle to clip space and then onto the dot grid,
// the same path a vertex shader takes to the viewport.
func (t *Terminal) Draw(projection mgl32.Mat4) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	dw, dh := t.canvas.Dots()
	for i, p := range t.store.Positions {
		clip := projection.Mul4x1(mgl32.Vec4{p[0], p[1], 0, 1})
		if !inClip(clip[0]) || !inClip(clip[1]) {
			continue
		}
		x := min(max(int((clip[0]+1)/2*float32(dw)), 0), dw-1)
		y := min(max(int((1-clip[1])/2*float32(dh)), 0), dh-1)
		t.canvas.Set(x, y, t.store.Velocities[i].Len())
	}
	return nil
}

func (t *Terminal) Cleanup() {}

// inClip allows for rounding at the viewport edges.
func inClip(v float32) bool {
	const edge = 1e-5
	return v >= -1-edge && v <= 1+edge
}
