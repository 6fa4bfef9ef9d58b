package config

import "sort"

func preset(name string, ticks, pairs int, particles ...ParticleConfig) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Ticks = ticks
	cfg.PairsPerTick = pairs
	cfg.Particles = particles
	return cfg
}

var Presets = map[string]*Config{
	"pair": preset("pair", 144, 1,
		ParticleConfig{Material: "copper", Temperature: 1000, DiameterMM: 16, Count: 1},
		ParticleConfig{Material: "copper", Temperature: 0, DiameterMM: 16, Count: 1},
	),
	"drop": preset("drop", 1440, 8,
		ParticleConfig{Material: "copper", Temperature: 1000, DiameterMM: 32, Count: 1},
		ParticleConfig{Material: "copper", Temperature: 0, TemperatureMax: 6000, DiameterMM: 1, DiameterMaxMM: 16, Count: 24},
	),
	"mixed": preset("mixed", 2880, 12,
		ParticleConfig{Material: "aluminium", Temperature: 300, TemperatureMax: 3000, DiameterMM: 4, DiameterMaxMM: 12, Count: 12},
		ParticleConfig{Material: "copper", Temperature: 300, TemperatureMax: 3000, DiameterMM: 4, DiameterMaxMM: 12, Count: 12},
		ParticleConfig{Material: "iron", Temperature: 300, TemperatureMax: 3000, DiameterMM: 4, DiameterMaxMM: 12, Count: 12},
	),
	"plasma": preset("plasma", 2880, 16,
		ParticleConfig{Material: "copper", Temperature: 10000, TemperatureMax: 100000, DiameterMM: 1, DiameterMaxMM: 16, Count: 8},
		ParticleConfig{Material: "copper", Temperature: 0, TemperatureMax: 6000, DiameterMM: 1, DiameterMaxMM: 16, Count: 32},
	),
}

func init() {
	Presets["mixed"].Contact.Conductance = "harmonic"
	Presets["drop"].Walls = 4
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Particles = append([]ParticleConfig(nil), cfg.Particles...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
