package compute

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Force law constants. shaders/simulate.comp carries the same numbers.
const (
	pullStrength   = 50000
	minPullRange   = 0.5
	swirlRange     = 100
	jitterStrength = 5
	// inertia is the fraction of the old velocity kept per 1/60 s while the
	// attractor is active.
	inertia       = 0.95
	referenceRate = 60
)

// Params is the per-step uniform block.
type Params struct {
	Dt                float32
	FrameBufferSize   mgl32.Vec2
	AttractorPosition mgl32.Vec2
	AttractorForce    float32
}

// advance is the Go rendition of the compute shader body for particle i.
func advance(i uint32, pos, vel mgl32.Vec2, p Params) (mgl32.Vec2, mgl32.Vec2) {
	if p.AttractorForce != 0 {
		target := targetVelocity(i, pos, p.AttractorPosition).Mul(p.AttractorForce)
		vel = mix(vel, target, blend(p.Dt))
	}

	pos = pos.Add(vel.Mul(p.Dt))
	pos[0], vel[0] = reflect(pos[0], vel[0], p.FrameBufferSize[0])
	pos[1], vel[1] = reflect(pos[1], vel[1], p.FrameBufferSize[1])
	return pos, vel
}

// targetVelocity is the unscaled velocity the attractor pulls particle i
// towards: a 1/r pull, a swirl that fades out beyond swirlRange and a small
// deterministic jitter.
func targetVelocity(i uint32, pos, attractor mgl32.Vec2) mgl32.Vec2 {
	d := attractor.Sub(pos)
	dist := d.Len()

	var pull mgl32.Vec2
	if dist > 0 {
		pull = d.Mul(pullStrength / (dist * float32(math.Max(minPullRange, float64(dist)))))
	}

	swirl := mgl32.Vec2{d[1], -d[0]}.Mul(1 - smoothstep(0, swirlRange, dist))

	j := 2*hash(d.Add(mgl32.Vec2{float32(i), 0})) - 1
	jitter := mgl32.Vec2{j, j}.Mul(jitterStrength)

	return pull.Add(swirl).Add(jitter)
}

// blend converts the per-frame inertia into a factor for an arbitrary dt,
// so the response does not depend on the frame rate.
func blend(dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	return 1 - float32(math.Pow(inertia, float64(dt)*referenceRate))
}

// reflect clamps x into [0, size] and flips v when the edge was crossed.
func reflect(x, v, size float32) (float32, float32) {
	switch {
	case x < 0:
		return 0, -v
	case x > size:
		return size, -v
	}
	return x, v
}

func mix(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	t = mgl32.Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// hash is the usual GLSL sin-fract noise.
func hash(v mgl32.Vec2) float32 {
	s := math.Sin(float64(v.Dot(mgl32.Vec2{12.9898, 78.233}))) * 43758.5453
	return float32(s - math.Floor(s))
}
