package render

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/gpu"
	"go.uber.org/zap"
)

var (
	//go:embed shaders/render.vert
	vertexSource string
	//go:embed shaders/render.frag
	fragmentSource string
)

// Vertex attribute locations fixed by shaders/render.vert.
const (
	PositionLocation = 0
	VelocityLocation = 1

	lookupUnit = 0
)

// Renderer draws every particle with a single point draw call, reading the
// compute stage's buffers in place.
type Renderer struct {
	program    *gpu.Program
	lookup     *gpu.Texture1D
	vao        uint32
	count      int32
	projection int32
	log        *zap.Logger
}

// NewRenderer builds the render program, the lookup texture and a vertex
// array that sources positions and velocities from the given buffers.
func NewRenderer(positions, velocities *gpu.ParticleBuffer, pointSize float32, log *zap.Logger) (*Renderer, error) {
	if positions.Len() != velocities.Len() {
		return nil, fmt.Errorf("renderer: %d positions vs %d velocities", positions.Len(), velocities.Len())
	}

	r := &Renderer{count: int32(positions.Len()), log: log}

	var err error
	r.program, err = gpu.CompileProgram(
		gpu.Stage{Type: gl.VERTEX_SHADER, Source: vertexSource},
		gpu.Stage{Type: gl.FRAGMENT_SHADER, Source: fragmentSource},
	)
	if err != nil {
		return nil, fmt.Errorf("render program: %w", err)
	}

	r.lookup, err = gpu.NewTexture1D(LookupTable())
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("lookup texture: %w", err)
	}

	r.program.Use()
	r.projection = r.program.Uniform("projectionMatrix")
	gl.Uniform1i(r.program.Uniform("lookup"), lookupUnit)
	if r.projection < 0 {
		log.Warn("projectionMatrix uniform not active")
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	positions.BindAttribute(PositionLocation)
	velocities.BindAttribute(VelocityLocation)
	gl.BindVertexArray(0)

	gl.PointSize(pointSize)
	gl.ClearColor(0, 0, 0, 1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)

	if err := gpu.CheckError("renderer setup"); err != nil {
		r.Cleanup()
		return nil, err
	}
	return r, nil
}

// Viewport follows the framebuffer size, which can differ from the window
// size on high density displays.
func (r *Renderer) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(max(width, 0)), int32(max(height, 0)))
}

func (r *Renderer) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw issues one point draw of every particle. The caller is responsible
// for the barrier between the compute dispatch and this call.
func (r *Renderer) Draw(projection mgl32.Mat4) error {
	r.program.Use()
	gl.UniformMatrix4fv(r.projection, 1, false, &projection[0])
	r.lookup.Bind(lookupUnit)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, r.count)
	gl.BindVertexArray(0)
	return gpu.CheckError("draw particles")
}

func (r *Renderer) Cleanup() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.lookup.Delete()
	r.program.Delete()
}
