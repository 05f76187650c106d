package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultParticles     = 1_000_000
	DefaultWorkGroupSize = 1000
	DefaultPointSize     = 4.0
	DefaultAttract       = 1.0
	DefaultRepel         = -1.2
	DefaultTitle         = "particles"
	DefaultLogLevel      = "info"
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Attractor  AttractorConfig  `yaml:"attractor"`
	Render     RenderConfig     `yaml:"render"`
	LogLevel   string           `yaml:"log_level"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type SimulationConfig struct {
	Particles     int   `yaml:"particles"`
	WorkGroupSize int   `yaml:"work_group_size"`
	Seed          int64 `yaml:"seed"`
}

type AttractorConfig struct {
	Attract float32 `yaml:"attract"`
	Repel   float32 `yaml:"repel"`
}

type RenderConfig struct {
	PointSize float32 `yaml:"point_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		Simulation: SimulationConfig{
			Particles:     DefaultParticles,
			WorkGroupSize: DefaultWorkGroupSize,
		},
		Attractor: AttractorConfig{
			Attract: DefaultAttract,
			Repel:   DefaultRepel,
		},
		Render: RenderConfig{
			PointSize: DefaultPointSize,
		},
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the dispatch cannot honor. The particle
// count must be an exact multiple of the work group size, otherwise the
// compute dispatch would cover a different number of invocations than
// there are particles.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Simulation.Particles <= 0 {
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalid, c.Simulation.Particles)
	}
	if c.Simulation.WorkGroupSize <= 0 {
		return fmt.Errorf("%w: work_group_size must be positive, got %d", ErrInvalid, c.Simulation.WorkGroupSize)
	}
	if c.Simulation.Particles%c.Simulation.WorkGroupSize != 0 {
		return fmt.Errorf("%w: particles (%d) is not a multiple of work_group_size (%d)",
			ErrInvalid, c.Simulation.Particles, c.Simulation.WorkGroupSize)
	}
	if c.Attractor.Attract <= 0 {
		return fmt.Errorf("%w: attract must be positive, got %v", ErrInvalid, c.Attractor.Attract)
	}
	if c.Attractor.Repel >= 0 {
		return fmt.Errorf("%w: repel must be negative, got %v", ErrInvalid, c.Attractor.Repel)
	}
	if c.Render.PointSize <= 0 {
		return fmt.Errorf("%w: point_size must be positive, got %v", ErrInvalid, c.Render.PointSize)
	}
	return nil
}

// WorkGroups is the number of groups dispatched per step. Only meaningful
// on a validated config.
func (c *Config) WorkGroups() int {
	return c.Simulation.Particles / c.Simulation.WorkGroupSize
}
