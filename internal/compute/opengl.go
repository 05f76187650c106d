package compute

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/gpu"
	"github.com/san-kum/particles/internal/particle"
	"go.uber.org/zap"
)

//go:embed shaders/simulate.comp
var simulateSource string

// Storage slots and uniform locations fixed by shaders/simulate.comp.
const (
	PositionSlot = 0
	VelocitySlot = 1

	uniformDt                = 0
	uniformFrameBufferSize   = 1
	uniformAttractorPosition = 2
	uniformAttractorForce    = 3
)

// OpenGLBackend runs the simulation as a compute shader over two GPU
// buffers that the render stage reads directly.
type OpenGLBackend struct {
	program    *gpu.Program
	positions  *gpu.ParticleBuffer
	velocities *gpu.ParticleBuffer
	n          int
	groupSize  int
	groups     uint32
	log        *zap.Logger
}

// NewOpenGLBackend compiles the simulate program and allocates n particles
// spawned inside width x height. A GL 4.3 context must be current.
func NewOpenGLBackend(n, groupSize int, width, height float32, rng *rand.Rand, log *zap.Logger) (*OpenGLBackend, error) {
	groups, err := Groups(n, groupSize)
	if err != nil {
		return nil, err
	}

	var maxCount, maxSize int32
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 0, &maxCount)
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 0, &maxSize)
	log.Debug("compute limits", zap.Int32("max_group_count_x", maxCount), zap.Int32("max_group_size_x", maxSize))
	if maxSize > 0 && int32(groupSize) > maxSize {
		return nil, fmt.Errorf("%w: work group size %d exceeds driver limit %d", ErrWorkGroupMismatch, groupSize, maxSize)
	}
	if maxCount > 0 && int64(groups) > int64(maxCount) {
		return nil, fmt.Errorf("%w: %d work groups exceed driver limit %d", ErrWorkGroupMismatch, groups, maxCount)
	}

	c := &OpenGLBackend{n: n, groupSize: groupSize, groups: groups, log: log}

	c.program, err = gpu.CompileProgram(gpu.Stage{Type: gl.COMPUTE_SHADER, Source: SimulateSource(groupSize)})
	if err != nil {
		return nil, fmt.Errorf("simulate program: %w", err)
	}

	if err := c.allocate(width, height, rng); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info("compute backend ready",
		zap.Int("particles", n),
		zap.Int("work_group_size", groupSize),
		zap.Uint32("work_groups", groups))
	return c, nil
}

func (c *OpenGLBackend) allocate(width, height float32, rng *rand.Rand) error {
	var err error
	if c.positions, err = gpu.NewParticleBuffer(c.n); err != nil {
		return fmt.Errorf("position buffer: %w", err)
	}
	if c.velocities, err = gpu.NewParticleBuffer(c.n); err != nil {
		return fmt.Errorf("velocity buffer: %w", err)
	}

	err = c.positions.Map(func(elems []mgl32.Vec2) error {
		return particle.Spawn(elems, width, height, rng)
	})
	if err != nil {
		return fmt.Errorf("spawn particles: %w", err)
	}
	err = c.velocities.Map(func(elems []mgl32.Vec2) error {
		particle.Rest(elems)
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset velocities: %w", err)
	}
	return nil
}

// SimulateSource returns the compute shader with its local size set to
// groupSize.
func SimulateSource(groupSize int) string {
	return strings.Replace(simulateSource, "LOCAL_SIZE_X", strconv.Itoa(groupSize), 1)
}

func (c *OpenGLBackend) Name() string { return "opengl" }
func (c *OpenGLBackend) Len() int     { return c.n }

func (c *OpenGLBackend) Positions() *gpu.ParticleBuffer  { return c.positions }
func (c *OpenGLBackend) Velocities() *gpu.ParticleBuffer { return c.velocities }

// Step uploads the parameters and dispatches one invocation per particle.
// It does not wait for the GPU; callers order later reads with a barrier.
func (c *OpenGLBackend) Step(p Params) error {
	c.program.Use()
	c.positions.BindStorage(PositionSlot)
	c.velocities.BindStorage(VelocitySlot)

	gl.Uniform1f(uniformDt, p.Dt)
	gl.Uniform2f(uniformFrameBufferSize, p.FrameBufferSize[0], p.FrameBufferSize[1])
	gl.Uniform2f(uniformAttractorPosition, p.AttractorPosition[0], p.AttractorPosition[1])
	gl.Uniform1f(uniformAttractorForce, p.AttractorForce)

	gl.DispatchCompute(c.groups, 1, 1)

	if err := gpu.CheckError("dispatch"); err != nil {
		return fmt.Errorf("%w: %v", ErrGPU, err)
	}
	return nil
}

func (c *OpenGLBackend) Cleanup() {
	c.positions.Delete()
	c.velocities.Delete()
	c.program.Delete()
}
