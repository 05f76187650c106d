// Package viz runs the particle simulation in a terminal.
//
// [Terminal] stands in for the window and the GPU renderer: it satisfies
// the frame loop's surface and renderer interfaces and draws particles onto
// a braille [Canvas], each cell colored by the speed lookup table.
// [Model] is the Bubble Tea program that ticks the frame loop and turns
// mouse input into attractor events.
//
// # Key Bindings
//
//	Left mouse  - attract while held
//	Right mouse - repel while held
//	Space       - pause/resume
//	R           - respawn particles
//	Q           - quit
package viz
