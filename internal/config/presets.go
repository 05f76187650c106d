package config

import "sort"

// Presets override the simulation block only; window and attractor keep
// their defaults.
var Presets = map[string]SimulationConfig{
	"default": {Particles: DefaultParticles, WorkGroupSize: DefaultWorkGroupSize},
	"small":   {Particles: 100_000, WorkGroupSize: DefaultWorkGroupSize},
	"tiny":    {Particles: 10_000, WorkGroupSize: 100},
	"huge":    {Particles: 4_000_000, WorkGroupSize: DefaultWorkGroupSize},
	"test":    {Particles: 100, WorkGroupSize: 10},
}

func GetPreset(name string) *Config {
	sim, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Simulation = sim
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
