package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Texture1D is an immutable RGBA8 lookup table sampled with linear
// filtering and clamped at both ends.
type Texture1D struct {
	id uint32
}

// NewTexture1D uploads rgba, which must hold a whole number of RGBA texels.
func NewTexture1D(rgba []uint8) (*Texture1D, error) {
	if len(rgba) == 0 || len(rgba)%4 != 0 {
		return nil, fmt.Errorf("%w: lookup texture needs RGBA texels, got %d bytes", ErrAllocation, len(rgba))
	}

	t := &Texture1D{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_1D, t.id)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexImage1D(gl.TEXTURE_1D, 0, gl.RGBA, int32(len(rgba)/4), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_1D, 0)

	if err := CheckError("upload lookup texture"); err != nil {
		t.Delete()
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	return t, nil
}

// Bind attaches the texture to the given texture unit index.
func (t *Texture1D) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_1D, t.id)
}

func (t *Texture1D) Delete() {
	if t == nil || t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}
