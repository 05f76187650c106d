// Package render draws the particle buffers as additive point sprites.
package render

import "github.com/go-gl/mathgl/mgl32"

// Projection maps window pixels (origin top-left, y down) onto clip space.
// It is rebuilt every frame so resizes need no bookkeeping.
func Projection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}
