package render

// lookupTable is the color ramp from slow to fast particles, RGBA8.
var lookupTable = [...]uint8{
	255, 46, 15, 25,
	255, 86, 31, 50,
	255, 100, 61, 50,
}

// LookupTable returns a copy of the color ramp.
func LookupTable() []uint8 {
	out := make([]uint8, len(lookupTable))
	copy(out, lookupTable[:])
	return out
}

// LookupEntries is the number of texels in the ramp.
func LookupEntries() int { return len(lookupTable) / 4 }

// SpeedScale is the speed, in pixels per second, that maps to the far end
// of the ramp. shaders/render.vert uses the same value.
const SpeedScale = 1000

// Sample returns the ramp color for a speed the way the GPU sampler does
// with linear filtering and clamp-to-edge.
func Sample(speed float32) [4]uint8 {
	t := speed / SpeedScale
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	n := LookupEntries()
	// texel centers sit at (k+0.5)/n
	x := t*float32(n) - 0.5
	if x <= 0 {
		return texel(0)
	}
	if x >= float32(n-1) {
		return texel(n - 1)
	}
	k := int(x)
	f := x - float32(k)
	a, b := texel(k), texel(k+1)
	var out [4]uint8
	for c := range out {
		out[c] = uint8(float32(a[c])*(1-f) + float32(b[c])*f + 0.5)
	}
	return out
}

func texel(k int) [4]uint8 {
	return [4]uint8{lookupTable[k*4], lookupTable[k*4+1], lookupTable[k*4+2], lookupTable[k*4+3]}
}
