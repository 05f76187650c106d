// Package frame drives the simulate, barrier, draw, present cycle.
//
// An [Orchestrator] moves through three states:
//
//	Initializing -> Running -> ShuttingDown
//
// Setup failures skip Running entirely. While Running, each call to
// [Orchestrator.Frame] performs, in order:
//
//  1. tick the frame timer (dt, lagging 1 Hz frame rate)
//  2. re-query window and framebuffer size, update the viewport
//  3. step the simulation with dt, size and the attractor
//  4. rebuild the projection from the current size
//  5. clear
//  6. wait on the memory barrier
//  7. draw
//  8. present, poll input, drain the input queue into the attractor
//
// Input is only folded into the attractor in step 8, so steps 3 to 7 of a
// frame always see one consistent attractor state.
package frame
