package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/thermal"
	"github.com/san-kum/heatsim/internal/units"
)

const (
	DefaultTicks        = 1440
	DefaultTickRate     = 144.0
	DefaultSampleEvery  = 12
	DefaultPairsPerTick = 8
	DefaultEventDt      = 1.0 / 144
	DefaultAreaMM2      = 1.0
	DefaultThicknessMM  = 1.0
	DefaultDataDir      = ".heatsim"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name         string           `yaml:"name"`
	Seed         int64            `yaml:"seed"`
	Ticks        int              `yaml:"ticks"`
	TickRate     float64          `yaml:"tick_rate"`
	SampleEvery  int              `yaml:"sample_every"`
	PairsPerTick int              `yaml:"pairs_per_tick"`
	Source       string           `yaml:"source"`
	EventDt      float64          `yaml:"event_dt"`
	Walls        int              `yaml:"walls"`
	Contact      ContactConfig    `yaml:"contact"`
	Particles    []ParticleConfig `yaml:"particles"`
	Storage      StorageConfig    `yaml:"storage"`
	Log          LogConfig        `yaml:"log"`
}

type ContactConfig struct {
	AreaMM2     float64 `yaml:"area_mm2"`
	ThicknessMM float64 `yaml:"thickness_mm"`
	Conductance string  `yaml:"conductance"`
}

// ParticleConfig spawns Count bodies. When TemperatureMax is above
// Temperature, each body draws its starting temperature uniformly from
// [Temperature, TemperatureMax).
type ParticleConfig struct {
	Material       string  `yaml:"material"`
	Temperature    float64 `yaml:"temperature"`
	TemperatureMax float64 `yaml:"temperature_max,omitempty"`
	DiameterMM     float64 `yaml:"diameter_mm"`
	DiameterMaxMM  float64 `yaml:"diameter_max_mm,omitempty"`
	Count          int     `yaml:"count"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "sandbox",
		Ticks:        DefaultTicks,
		TickRate:     DefaultTickRate,
		SampleEvery:  DefaultSampleEvery,
		PairsPerTick: DefaultPairsPerTick,
		Source:       "random",
		EventDt:      DefaultEventDt,
		Contact: ContactConfig{
			AreaMM2:     DefaultAreaMM2,
			ThicknessMM: DefaultThicknessMM,
			Conductance: "source",
		},
		Particles: []ParticleConfig{
			{Material: "copper", Temperature: 1000, DiameterMM: 32, Count: 1},
			{Material: "copper", Temperature: 0, TemperatureMax: 6000, DiameterMM: 1, DiameterMaxMM: 16, Count: 24},
		},
		Storage: StorageConfig{Backend: "file", Dir: DefaultDataDir},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg. Keys missing from the file keep
// their current values; a particles list in the file replaces the whole list.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %g", ErrInvalidConfig, c.TickRate)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample_every must be positive, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	if c.PairsPerTick < 0 {
		return fmt.Errorf("%w: pairs_per_tick must not be negative, got %d", ErrInvalidConfig, c.PairsPerTick)
	}
	if math.IsNaN(c.EventDt) || math.IsInf(c.EventDt, 0) || c.EventDuration() <= 0 {
		return fmt.Errorf("%w: event_dt must be finite and at least 1ns, got %g", ErrInvalidConfig, c.EventDt)
	}
	if c.Contact.AreaMM2 <= 0 || c.Contact.ThicknessMM <= 0 {
		return fmt.Errorf("%w: contact area and thickness must be positive", ErrInvalidConfig)
	}
	if _, err := thermal.ParseConductanceMode(c.Contact.Conductance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Particles) == 0 {
		return fmt.Errorf("%w: no particles to spawn", ErrInvalidConfig)
	}
	for i, p := range c.Particles {
		if _, err := material.ParseKind(p.Material); err != nil {
			return fmt.Errorf("%w: particles[%d]: %v", ErrInvalidConfig, i, err)
		}
		if p.Temperature < 0 || p.TemperatureMax < 0 {
			return fmt.Errorf("%w: particles[%d]: temperature below absolute zero", ErrInvalidConfig, i)
		}
		if p.DiameterMM <= 0 {
			return fmt.Errorf("%w: particles[%d]: diameter must be positive", ErrInvalidConfig, i)
		}
		if p.Count <= 0 {
			return fmt.Errorf("%w: particles[%d]: count must be positive", ErrInvalidConfig, i)
		}
	}
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	return nil
}

// Conduction returns the conduction contact and mode described by the config.
func (c *Config) Conduction() (thermal.Contact, thermal.ConductanceMode, error) {
	mode, err := thermal.ParseConductanceMode(c.Contact.Conductance)
	if err != nil {
		return thermal.Contact{}, 0, err
	}
	return thermal.Contact{
		Area:      units.SquareMillimeters(c.Contact.AreaMM2),
		Thickness: units.Millimeters(c.Contact.ThicknessMM),
	}, mode, nil
}

func (c *Config) EventDuration() time.Duration {
	return time.Duration(c.EventDt * float64(time.Second))
}

// TotalParticles counts the thermal bodies the config spawns.
func (c *Config) TotalParticles() int {
	n := 0
	for _, p := range c.Particles {
		n += p.Count
	}
	return n
}
