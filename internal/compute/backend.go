package compute

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkGroupMismatch indicates a particle count that is not a multiple
	// of the work group size.
	ErrWorkGroupMismatch = errors.New("compute: particle count is not a multiple of the work group size")

	// ErrGPU wraps errors reported by the driver after a dispatch.
	ErrGPU = errors.New("compute: gpu dispatch failed")
)

// Backend advances every particle by one step.
type Backend interface {
	Name() string
	Len() int
	Step(p Params) error
	Cleanup()
}

// Groups returns the dispatch size for n particles in groups of size. The
// invocation count groups*size always equals n exactly.
func Groups(n, size int) (uint32, error) {
	if n <= 0 || size <= 0 {
		return 0, fmt.Errorf("%w: n=%d size=%d", ErrWorkGroupMismatch, n, size)
	}
	if n%size != 0 {
		return 0, fmt.Errorf("%w: %d %% %d = %d", ErrWorkGroupMismatch, n, size, n%size)
	}
	return uint32(n / size), nil
}
