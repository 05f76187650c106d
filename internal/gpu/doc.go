// Package gpu wraps the handful of OpenGL 4.3 objects the simulation needs:
// shader programs, particle buffers shared between compute and vertex
// stages, the 1-D lookup texture and the storage barrier.
//
// Every function here must run on the goroutine that owns the current GL
// context (see [runtime.LockOSThread]).
package gpu
