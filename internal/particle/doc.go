// Package particle holds the particle state layout shared by every
// simulation backend.
//
// A particle is identified by its index i in [0, N). Its state lives in two
// index-aligned arrays:
//
//   - positions: window pixel coordinates, origin top-left, y down
//   - velocities: pixels per second
//
// The arrays are allocated once and never resized. The same layout is used
// for host memory ([Store]) and for mapped GPU buffers, which is why
// [Fill] works on plain slices.
//
// # Example
//
//	rng := rand.New(rand.NewSource(seed))
//	st, err := particle.NewStore(100_000, 800, 600, rng)
package particle
