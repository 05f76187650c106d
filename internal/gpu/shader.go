package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Stage pairs a shader type (gl.COMPUTE_SHADER, gl.VERTEX_SHADER, ...) with
// its GLSL source.
type Stage struct {
	Type   uint32
	Source string
}

// Program is a linked GL program.
type Program struct {
	ID uint32
}

// CompileProgram compiles every stage and links them into one program.
// Shader objects are released whether or not linking succeeds.
func CompileProgram(stages ...Stage) (*Program, error) {
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, st := range stages {
		s, err := compileShader(st.Source, st.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrShader, stageName(st.Type), err)
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: link: %s", ErrShader, strings.TrimRight(log, "\x00"))
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return &Program{ID: program}, nil
}

func (p *Program) Use() { gl.UseProgram(p.ID) }

// Uniform looks a uniform up by name; -1 when the linker dropped it.
func (p *Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
}

func (p *Program) Delete() {
	if p == nil || p.ID == 0 {
		return
	}
	gl.DeleteProgram(p.ID)
	p.ID = 0
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func stageName(t uint32) string {
	switch t {
	case gl.COMPUTE_SHADER:
		return "compute"
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("stage 0x%x", t)
	}
}
