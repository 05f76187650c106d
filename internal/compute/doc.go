// Package compute provides the simulation stage.
//
// Two backends implement [Backend]:
//
//   - [OpenGLBackend]: compute shader over GPU buffers shared with the renderer
//   - [CPUBackend]: the same kernel on the host, used headless and in tests
//
// # Force law
//
// Every step, for particle i at position p with velocity v, attractor a and
// force f:
//
//	d      = a - p
//	target = f * (50000*d/|d| / max(0.5, |d|)       pull
//	            + (d.y, -d.x) * (1 - smoothstep(0, 100, |d|))  swirl
//	            + 5 * (2*hash(d + (i, 0)) - 1) * (1, 1))        jitter
//	v      = mix(v, target, 1 - 0.95^(60*dt))   only while f != 0
//	p      = p + v*dt
//
// A coordinate leaving [0, size] is clamped to the edge and its velocity
// component negated. With f == 0 velocities are left alone and reflection
// keeps their magnitude, so an idle field never gains speed.
//
// # Dispatch
//
// The particle count must be a multiple of the work group size; [Groups]
// rejects anything else.
package compute
