package frame_test

import (
	"context"
	"errors"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/compute"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/particle"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func clipOf(m mgl32.Mat4, x, y float32) mgl32.Vec2 {
	v := m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return mgl32.Vec2{v[0] / v[3], v[1] / v[3]}
}

var _ = Describe("Orchestrator", func() {
	var (
		rec      *recorder
		surface  *fakeSurface
		sim      *fakeSimulator
		renderer *fakeRenderer
		clock    *fakeClock
		logs     *observer.ObservedLogs
		orch     *frame.Orchestrator
		setup    frame.SetupFunc
	)

	BeforeEach(func() {
		rec = &recorder{}
		surface = &fakeSurface{rec: rec, w: 800, h: 600, closeAfter: 3}
		sim = &fakeSimulator{rec: rec}
		renderer = &fakeRenderer{rec: rec}
		clock = &fakeClock{now: 100, step: 0.016}

		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		orch = frame.New(frame.Options{
			Clock:  clock.Now,
			Logger: zap.New(core),
		})
		setup = func() (frame.Stages, error) {
			return frame.Stages{
				Surface:   surface,
				Simulator: sim,
				Renderer:  renderer,
				Barrier:   fakeBarrier{rec: rec},
			}, nil
		}
	})

	Describe("state machine", func() {
		It("starts in Initializing", func() {
			Expect(orch.State()).To(Equal(frame.Initializing))
		})

		It("moves to Running after setup", func() {
			Expect(orch.Start(setup)).To(Succeed())
			Expect(orch.State()).To(Equal(frame.Running))
		})

		It("goes straight to ShuttingDown when setup fails", func() {
			boom := errors.New("no context")
			err := orch.Start(func() (frame.Stages, error) {
				return frame.Stages{Surface: surface}, boom
			})
			Expect(err).To(MatchError(boom))
			Expect(orch.State()).To(Equal(frame.ShuttingDown))
			Expect(surface.terminated).To(BeTrue())
			Expect(orch.Frame()).To(MatchError(frame.ErrNotRunning))
		})

		It("rejects incomplete stages", func() {
			err := orch.Start(func() (frame.Stages, error) {
				return frame.Stages{Surface: surface}, nil
			})
			Expect(err).To(MatchError(frame.ErrIncomplete))
			Expect(orch.State()).To(Equal(frame.ShuttingDown))
		})

		It("runs until close is requested and releases everything in order", func() {
			Expect(orch.Run(context.Background(), setup)).To(Succeed())
			Expect(orch.State()).To(Equal(frame.ShuttingDown))
			Expect(orch.Frames()).To(BeEquivalentTo(3))

			n := len(rec.calls)
			Expect(rec.calls[n-3:]).To(Equal([]string{"cleanup simulator", "cleanup renderer", "terminate"}))
			Expect(sim.cleaned).To(BeTrue())
			Expect(renderer.cleaned).To(BeTrue())
		})

		It("stops when the context is canceled", func() {
			surface.closeAfter = 1 << 30
			ctx, cancel := context.WithCancel(context.Background())
			surface.onPoll = func() {
				if orch.Frames() == 4 {
					cancel()
				}
			}
			Expect(orch.Run(ctx, setup)).To(Succeed())
			Expect(orch.Frames()).To(BeEquivalentTo(5))
			Expect(surface.terminated).To(BeTrue())
		})

		It("resumes without integrating the gap", func() {
			Expect(orch.Resume()).To(MatchError(frame.ErrNotRunning))
			Expect(orch.Start(setup)).To(Succeed())
			Expect(orch.Frame()).To(Succeed())

			clock.now += 30
			Expect(orch.Resume()).To(Succeed())
			Expect(orch.Frame()).To(Succeed())

			Expect(sim.params).To(HaveLen(2))
			Expect(sim.params[1].Dt).To(BeNumerically("~", 0.016, 1e-6))
		})

		It("shuts down only once", func() {
			Expect(orch.Start(setup)).To(Succeed())
			orch.Shutdown()
			orch.Shutdown()
			terminates := 0
			for _, c := range rec.calls {
				if c == "terminate" {
					terminates++
				}
			}
			Expect(terminates).To(Equal(1))
		})
	})

	Describe("a single frame", func() {
		BeforeEach(func() {
			Expect(orch.Start(setup)).To(Succeed())
			rec.calls = nil
		})

		It("simulates, clears, waits on the barrier, draws, presents and polls in order", func() {
			Expect(orch.Frame()).To(Succeed())
			Expect(rec.calls).To(Equal([]string{"simulate", "clear", "barrier", "draw", "swap", "poll"}))
		})

		It("feeds dt, viewport size and the attractor to the simulation", func() {
			orch.Queue().Push(attractor.Move(400, 300))
			orch.Queue().Push(attractor.Click(attractor.Primary, attractor.Press))

			Expect(orch.Frame()).To(Succeed())
			Expect(sim.params[0].Dt).To(BeNumerically("~", 0.016, 1e-6))
			Expect(sim.params[0].FrameBufferSize).To(Equal(mgl32.Vec2{800, 600}))
			Expect(sim.params[0].AttractorForce).To(BeZero(), "events queued before the frame apply after it")

			Expect(orch.Frame()).To(Succeed())
			Expect(sim.params[1].AttractorPosition).To(Equal(mgl32.Vec2{400, 300}))
			Expect(sim.params[1].AttractorForce).To(Equal(attractor.DefaultAttract))
		})

		It("applies input delivered during poll only at the end of the frame", func() {
			surface.onPoll = func() {
				orch.Queue().Push(attractor.Click(attractor.Secondary, attractor.Press))
			}
			Expect(orch.Frame()).To(Succeed())
			Expect(sim.params[0].AttractorForce).To(BeZero())
			Expect(orch.Attractor().Force).To(Equal(attractor.DefaultRepel))

			surface.onPoll = func() {
				orch.Queue().Push(attractor.Click(attractor.Secondary, attractor.Release))
			}
			Expect(orch.Frame()).To(Succeed())
			Expect(sim.params[1].AttractorForce).To(Equal(attractor.DefaultRepel))
			Expect(orch.Attractor().Force).To(BeZero())
		})

		It("logs and counts stage failures without stopping", func() {
			sim.err = errors.New("lost device")
			renderer.err = errors.New("bad draw")

			Expect(orch.Frame()).To(Succeed())
			Expect(orch.Failures()).To(BeEquivalentTo(2))
			Expect(rec.calls).To(ContainElement("swap"))
			Expect(logs.FilterMessage("frame stage failed").Len()).To(Equal(2))
		})

		It("skips simulation and drawing while minimized", func() {
			surface.w, surface.h = 0, 0
			Expect(orch.Frame()).To(Succeed())
			Expect(rec.calls).To(Equal([]string{"clear", "swap", "poll"}))
			Expect(renderer.viewports).To(ContainElement([2]int{0, 0}))
		})

		It("publishes the frame rate once per second", func() {
			var rates []int
			orch = frame.New(frame.Options{
				Clock:       (&fakeClock{now: 0, step: 0.01}).Now,
				OnFrameRate: func(fps int) { rates = append(rates, fps) },
			})
			Expect(orch.Start(setup)).To(Succeed())
			for i := 0; i < 250; i++ {
				Expect(orch.Frame()).To(Succeed())
			}
			Expect(rates).To(HaveLen(2))
			Expect(rates[0]).To(BeNumerically("~", 100, 1))
			Expect(orch.Timing().FrameRate).To(Equal(rates[1]))
		})
	})

	Describe("resize", func() {
		It("re-projects to the new size without reallocating particles", func() {
			store, err := particle.NewStore(100, 800, 600, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())
			backend, err := compute.NewCPUBackend(store, 10)
			Expect(err).NotTo(HaveOccurred())
			sim.backend = backend

			first := &store.Positions[0]
			Expect(orch.Start(setup)).To(Succeed())
			Expect(orch.Frame()).To(Succeed())

			surface.w, surface.h = 1024, 768
			Expect(orch.Frame()).To(Succeed())

			Expect(sim.params[1].FrameBufferSize).To(Equal(mgl32.Vec2{1024, 768}))
			Expect(renderer.viewports[1]).To(Equal([2]int{1024, 768}))

			proj := renderer.projections[1]
			Expect(clipOf(proj, 0, 0).ApproxEqualThreshold(mgl32.Vec2{-1, 1}, 1e-5)).To(BeTrue())
			Expect(clipOf(proj, 1024, 768).ApproxEqualThreshold(mgl32.Vec2{1, -1}, 1e-5)).To(BeTrue())
			Expect(orch.Projection()).To(Equal(proj))

			Expect(&store.Positions[0]).To(BeIdenticalTo(first))
			Expect(store.Len()).To(Equal(100))
		})
	})

	Describe("zero force", func() {
		It("moves every particle by exactly v*dt", func() {
			store, err := particle.NewStore(100, 800, 600, rand.New(rand.NewSource(2)))
			Expect(err).NotTo(HaveOccurred())
			for i := range store.Velocities {
				store.Positions[i] = mgl32.Vec2{100 + float32(i), 100 + float32(i)}
				store.Velocities[i] = mgl32.Vec2{float32(i%7) - 3, float32(i%5) - 2}
			}
			backend, err := compute.NewCPUBackend(store, 10)
			Expect(err).NotTo(HaveOccurred())
			sim.backend = backend

			Expect(orch.Start(setup)).To(Succeed())
			before := store.Clone()
			Expect(orch.Frame()).To(Succeed())

			dt := sim.params[0].Dt
			for i := range store.Positions {
				Expect(store.Positions[i]).To(Equal(before.Positions[i].Add(before.Velocities[i].Mul(dt))))
				Expect(store.Velocities[i]).To(Equal(before.Velocities[i]))
			}
		})
	})
})
