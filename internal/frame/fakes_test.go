package frame_test

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/compute"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(call string) { r.calls = append(r.calls, call) }

type fakeSurface struct {
	rec        *recorder
	w, h       int
	closeAfter int
	checks     int
	onPoll     func()
	terminated bool
}

func (s *fakeSurface) ShouldClose() bool {
	s.checks++
	return s.checks > s.closeAfter
}

func (s *fakeSurface) Size() (int, int)            { return s.w, s.h }
func (s *fakeSurface) FramebufferSize() (int, int) { return s.w, s.h }
func (s *fakeSurface) SwapBuffers()                { s.rec.add("swap") }
func (s *fakeSurface) Terminate() {
	s.terminated = true
	s.rec.add("terminate")
}

func (s *fakeSurface) PollEvents() {
	s.rec.add("poll")
	if s.onPoll != nil {
		s.onPoll()
	}
}

// fakeSimulator wraps a real backend so the particle state can be
// inspected while still recording the call order.
type fakeSimulator struct {
	rec     *recorder
	backend compute.Backend
	params  []compute.Params
	err     error
	cleaned bool
}

func (f *fakeSimulator) Step(p compute.Params) error {
	f.rec.add("simulate")
	f.params = append(f.params, p)
	if f.backend != nil {
		if err := f.backend.Step(p); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeSimulator) Cleanup() {
	f.cleaned = true
	f.rec.add("cleanup simulator")
}

type fakeRenderer struct {
	rec         *recorder
	viewports   [][2]int
	projections []mgl32.Mat4
	err         error
	cleaned     bool
}

func (f *fakeRenderer) Viewport(w, h int) { f.viewports = append(f.viewports, [2]int{w, h}) }
func (f *fakeRenderer) Clear()            { f.rec.add("clear") }

func (f *fakeRenderer) Draw(m mgl32.Mat4) error {
	f.rec.add("draw")
	f.projections = append(f.projections, m)
	return f.err
}

func (f *fakeRenderer) Cleanup() {
	f.cleaned = true
	f.rec.add("cleanup renderer")
}

type fakeBarrier struct{ rec *recorder }

func (b fakeBarrier) Wait() { b.rec.add("barrier") }

type fakeClock struct {
	now, step float64
}

func (c *fakeClock) Now() float64 {
	t := c.now
	c.now += c.step
	return t
}
