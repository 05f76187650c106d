package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/san-kum/particles/internal/attractor"
)

func Button(b glfw.MouseButton) attractor.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return attractor.Primary
	case glfw.MouseButtonRight:
		return attractor.Secondary
	case glfw.MouseButtonMiddle:
		return attractor.Middle
	default:
		return attractor.Other
	}
}

func Action(a glfw.Action) attractor.Action {
	switch a {
	case glfw.Press:
		return attractor.Press
	case glfw.Repeat:
		return attractor.Repeat
	default:
		return attractor.Release
	}
}

func Title(base string, fps, particles int) string {
	if fps <= 0 {
		return fmt.Sprintf("%s - %d particles", base, particles)
	}
	return fmt.Sprintf("%s - %d particles - %d fps", base, particles, fps)
}
