package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/san-kum/particles/internal/attractor"
)

func TestButtonMapping(t *testing.T) {
	tests := []struct {
		in   glfw.MouseButton
		want attractor.Button
	}{
		{glfw.MouseButtonLeft, attractor.Primary},
		{glfw.MouseButtonRight, attractor.Secondary},
		{glfw.MouseButtonMiddle, attractor.Middle},
		{glfw.MouseButton4, attractor.Other},
		{glfw.MouseButtonLast, attractor.Other},
	}
	for _, tt := range tests {
		if got := Button(tt.in); got != tt.want {
			t.Errorf("Button(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestActionMapping(t *testing.T) {
	tests := []struct {
		in   glfw.Action
		want attractor.Action
	}{
		{glfw.Press, attractor.Press},
		{glfw.Release, attractor.Release},
		{glfw.Repeat, attractor.Repeat},
	}
	for _, tt := range tests {
		if got := Action(tt.in); got != tt.want {
			t.Errorf("Action(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMappedEventsDriveAttractor(t *testing.T) {
	s := attractor.New(attractor.DefaultAttract, attractor.DefaultRepel)

	s.Apply(attractor.Click(Button(glfw.MouseButtonLeft), Action(glfw.Press)))
	if s.Force != attractor.DefaultAttract {
		t.Errorf("left press: force = %v, want %v", s.Force, attractor.DefaultAttract)
	}
	s.Apply(attractor.Click(Button(glfw.MouseButtonRight), Action(glfw.Press)))
	if s.Force != attractor.DefaultRepel {
		t.Errorf("right press: force = %v, want %v", s.Force, attractor.DefaultRepel)
	}
	s.Apply(attractor.Click(Button(glfw.MouseButtonRight), Action(glfw.Release)))
	if s.Force != 0 {
		t.Errorf("release: force = %v, want 0", s.Force)
	}
}

func TestTitle(t *testing.T) {
	if got := Title("particles", 0, 1000); got != "particles - 1000 particles" {
		t.Errorf("unexpected title before first sample: %q", got)
	}
	if got := Title("particles", 144, 1000000); got != "particles - 1000000 particles - 144 fps" {
		t.Errorf("unexpected title: %q", got)
	}
}
