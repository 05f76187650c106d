package frame

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/compute"
	"github.com/san-kum/particles/internal/render"
	"go.uber.org/zap"
)

type State int

const (
	Initializing State = iota
	Running
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrNotRunning = errors.New("frame: orchestrator is not running")
	ErrIncomplete = errors.New("frame: setup returned incomplete stages")
)

// Surface is the drawable window.
type Surface interface {
	ShouldClose() bool
	// Size is the window size in the coordinates pointer events use.
	Size() (width, height int)
	FramebufferSize() (width, height int)
	SwapBuffers()
	// PollEvents delivers pending input, typically by pushing into the
	// orchestrator's queue.
	PollEvents()
	Terminate()
}

type Simulator interface {
	Step(p compute.Params) error
	Cleanup()
}

type Renderer interface {
	Viewport(width, height int)
	Clear()
	Draw(projection mgl32.Mat4) error
	Cleanup()
}

// Barrier orders the simulation's writes before the renderer's reads.
type Barrier interface {
	Wait()
}

// NoBarrier is for simulators that finish their writes before Step returns.
type NoBarrier struct{}

func (NoBarrier) Wait() {}

// Stages are the collaborators produced by setup. A failing setup returns
// whatever it managed to build so it can be released.
type Stages struct {
	Surface   Surface
	Simulator Simulator
	Renderer  Renderer
	Barrier   Barrier
}

type SetupFunc func() (Stages, error)

type Options struct {
	Queue     *attractor.Queue
	Attractor *attractor.State
	Clock     Clock
	Logger    *zap.Logger
	// OnFrameRate is called whenever a new frame rate sample is taken.
	OnFrameRate func(fps int)
}

type Orchestrator struct {
	opts   Options
	stages Stages
	state  State
	timer  *Timer
	log    *zap.Logger

	width, height int
	projection    mgl32.Mat4
	frames        uint64
	failures      uint64
}

func New(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Queue == nil {
		opts.Queue = attractor.NewQueue()
	}
	if opts.Attractor == nil {
		opts.Attractor = attractor.New(attractor.DefaultAttract, attractor.DefaultRepel)
	}
	return &Orchestrator{opts: opts, state: Initializing, log: opts.Logger}
}

func (o *Orchestrator) State() State               { return o.state }
func (o *Orchestrator) Queue() *attractor.Queue    { return o.opts.Queue }
func (o *Orchestrator) Attractor() attractor.State { return *o.opts.Attractor }
func (o *Orchestrator) Projection() mgl32.Mat4     { return o.projection }
func (o *Orchestrator) Frames() uint64             { return o.frames }
func (o *Orchestrator) Failures() uint64           { return o.failures }

func (o *Orchestrator) Timing() Timing {
	if o.timer == nil {
		return Timing{}
	}
	return o.timer.Timing()
}

// Start runs setup and enters Running. On failure it releases the partial
// stages, enters ShuttingDown and returns the setup error.
func (o *Orchestrator) Start(setup SetupFunc) error {
	if o.state != Initializing {
		return fmt.Errorf("start in state %s: %w", o.state, ErrNotRunning)
	}
	if o.opts.Clock == nil {
		return fmt.Errorf("%w: no clock", ErrIncomplete)
	}

	stages, err := setup()
	o.stages = stages
	if err == nil && (stages.Surface == nil || stages.Simulator == nil || stages.Renderer == nil) {
		err = ErrIncomplete
	}
	if err != nil {
		o.log.Error("setup failed", zap.Error(err))
		o.Shutdown()
		return err
	}
	if o.stages.Barrier == nil {
		o.stages.Barrier = NoBarrier{}
	}

	o.timer = NewTimer(o.opts.Clock())
	o.setState(Running)
	return nil
}

// Run starts, loops until the surface asks to close or ctx is done, and
// shuts down.
func (o *Orchestrator) Run(ctx context.Context, setup SetupFunc) error {
	if err := o.Start(setup); err != nil {
		return err
	}
	defer o.Shutdown()

	for !o.stages.Surface.ShouldClose() {
		select {
		case <-ctx.Done():
			o.log.Info("loop canceled", zap.Error(ctx.Err()))
			return nil
		default:
		}
		if err := o.Frame(); err != nil {
			return err
		}
	}
	o.log.Info("close requested", zap.Uint64("frames", o.frames))
	return nil
}

// Frame runs one iteration of the loop. Stage failures are logged and
// counted; the frame still completes.
func (o *Orchestrator) Frame() error {
	if o.state != Running {
		return ErrNotRunning
	}

	timing, sampled := o.timer.Tick(o.opts.Clock())
	if sampled {
		o.log.Debug("frame rate", zap.Int("fps", timing.FrameRate), zap.Uint64("frame", o.frames))
		if o.opts.OnFrameRate != nil {
			o.opts.OnFrameRate(timing.FrameRate)
		}
	}

	s := o.stages
	w, h := s.Surface.Size()
	if w != o.width || h != o.height {
		o.log.Debug("viewport", zap.Int("width", w), zap.Int("height", h))
		o.width, o.height = w, h
	}
	s.Renderer.Viewport(s.Surface.FramebufferSize())

	// a minimized window reports 0x0; there is nothing to bound or project
	visible := w > 0 && h > 0

	if visible {
		a := o.opts.Attractor
		err := s.Simulator.Step(compute.Params{
			Dt:                float32(timing.DeltaTime),
			FrameBufferSize:   mgl32.Vec2{float32(w), float32(h)},
			AttractorPosition: a.Position,
			AttractorForce:    a.Force,
		})
		if err != nil {
			o.report("simulate", err)
		}
		o.projection = render.Projection(w, h)
	}

	s.Renderer.Clear()

	if visible {
		s.Barrier.Wait()
		if err := s.Renderer.Draw(o.projection); err != nil {
			o.report("draw", err)
		}
	}

	s.Surface.SwapBuffers()
	s.Surface.PollEvents()
	o.opts.Queue.Drain(o.opts.Attractor)

	o.frames++
	return nil
}

// Resume forgets the time spent since the last frame. Callers that stop
// calling Frame for a while use it before the next one so the pause is not
// integrated as a single step.
func (o *Orchestrator) Resume() error {
	if o.state != Running {
		return ErrNotRunning
	}
	o.timer.Reset(o.opts.Clock())
	return nil
}

// Shutdown releases every stage that was built. It is safe to call more
// than once.
func (o *Orchestrator) Shutdown() {
	if o.state == ShuttingDown {
		return
	}
	o.setState(ShuttingDown)

	if o.stages.Simulator != nil {
		o.stages.Simulator.Cleanup()
	}
	if o.stages.Renderer != nil {
		o.stages.Renderer.Cleanup()
	}
	if o.stages.Surface != nil {
		o.stages.Surface.Terminate()
	}
	o.stages = Stages{}

	if o.failures > 0 {
		o.log.Warn("frames with errors", zap.Uint64("failures", o.failures), zap.Uint64("frames", o.frames))
	}
}

func (o *Orchestrator) report(stage string, err error) {
	o.failures++
	o.log.Warn("frame stage failed",
		zap.String("stage", stage),
		zap.Uint64("frame", o.frames),
		zap.Error(err))
}

func (o *Orchestrator) setState(s State) {
	o.log.Debug("state", zap.Stringer("from", o.state), zap.Stringer("to", s))
	o.state = s
}
