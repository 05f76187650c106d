package gpu

import "github.com/go-gl/gl/v4.3-core/gl"

// StorageBarrier makes compute shader storage writes visible to later
// storage reads and to vertex fetches from the same buffers.
type StorageBarrier struct{}

func (StorageBarrier) Wait() {
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT)
}
