package particle

import "errors"

var (
	// ErrInvalidCount indicates a particle count that is zero or negative.
	ErrInvalidCount = errors.New("particle: count must be positive")

	// ErrInvalidBounds indicates a spawn area with a non-positive side.
	ErrInvalidBounds = errors.New("particle: bounds must be positive")

	// ErrLengthMismatch indicates position and velocity arrays of different length.
	ErrLengthMismatch = errors.New("particle: position and velocity arrays differ in length")
)
