package gpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

var (
	// ErrShader indicates a shader that failed to compile or a program that failed to link.
	ErrShader = errors.New("gpu: shader build failed")

	// ErrAllocation indicates the driver refused a buffer or texture allocation.
	ErrAllocation = errors.New("gpu: allocation failed")

	// ErrCall indicates a GL call left an error flag behind.
	ErrCall = errors.New("gpu: gl error")
)

// CheckError drains the GL error flags. op names the call sequence being
// checked and ends up in the message.
func CheckError(op string) error {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
		if len(codes) > 8 {
			break
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrCall, op, errorNames(codes))
}

func errorNames(codes []uint32) string {
	s := ""
	for i, c := range codes {
		if i > 0 {
			s += ", "
		}
		s += ErrorName(c)
	}
	return s
}

func ErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case gl.STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	default:
		return fmt.Sprintf("0x%04x", code)
	}
}
