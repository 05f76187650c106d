package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vec2Size = int(unsafe.Sizeof(mgl32.Vec2{}))

// ParticleBuffer is a fixed-capacity array of vec2 living in GPU memory. The
// same buffer object is bound as shader storage for the compute stage and as
// a vertex attribute source for the render stage, so no copies happen
// between them.
type ParticleBuffer struct {
	id  uint32
	len int
}

// NewParticleBuffer allocates storage for n vec2 elements. Contents are
// undefined until written through Map.
func NewParticleBuffer(n int) (*ParticleBuffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: particle buffer of %d elements", ErrAllocation, n)
	}

	b := &ParticleBuffer{len: n}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, n*vec2Size, nil, gl.DYNAMIC_COPY)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := CheckError("allocate particle buffer"); err != nil {
		b.Delete()
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n*vec2Size, err)
	}
	return b, nil
}

func (b *ParticleBuffer) ID() uint32 { return b.id }
func (b *ParticleBuffer) Len() int   { return b.len }

// Map exposes the whole buffer to fn as a slice for writing. The mapping is
// released before Map returns on every path, and the slice must not be
// retained by fn.
func (b *ParticleBuffer) Map(fn func(elems []mgl32.Vec2) error) error {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	defer gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	ptr := gl.MapBufferRange(gl.ARRAY_BUFFER, 0, b.len*vec2Size,
		gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	return withMapping(b.id, b.len, ptr, mapCalls{
		unmap:   func() bool { return gl.UnmapBuffer(gl.ARRAY_BUFFER) },
		lastErr: func() error { return CheckError("map") },
	}, fn)
}

// mapCalls are the driver calls around a mapping.
type mapCalls struct {
	unmap   func() bool
	lastErr func() error
}

var errNoMapping = errors.New("driver returned no mapping")

// withMapping hands the n elements at ptr to fn and unmaps afterwards, also
// when fn fails or panics. A nil ptr means the map itself failed.
func withMapping(id uint32, n int, ptr unsafe.Pointer, calls mapCalls, fn func([]mgl32.Vec2) error) (err error) {
	if ptr == nil {
		cause := calls.lastErr()
		if cause == nil {
			cause = errNoMapping
		}
		return fmt.Errorf("%w: map particle buffer %d: %v", ErrAllocation, id, cause)
	}
	defer func() {
		if !calls.unmap() && err == nil {
			err = fmt.Errorf("%w: buffer %d contents lost while mapped", ErrCall, id)
		}
	}()

	return fn(unsafe.Slice((*mgl32.Vec2)(ptr), n))
}

// BindStorage attaches the buffer to an indexed shader storage slot.
func (b *ParticleBuffer) BindStorage(slot uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, slot, b.id)
}

// BindAttribute sources vertex attribute location from this buffer as
// tightly packed vec2. A vertex array object must be bound.
func (b *ParticleBuffer) BindAttribute(location uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, 2, gl.FLOAT, false, 0, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *ParticleBuffer) Delete() {
	if b == nil || b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}
