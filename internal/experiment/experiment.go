package experiment

import (
	"context"
	"fmt"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/particle"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/thermal"
	"github.com/san-kum/heatsim/internal/units"
)

var wallColor = colorful.Color{R: 0.086, G: 0.086, B: 0.086}

type Experiment struct {
	cfg        *config.Config
	log        *logrus.Entry
	world      *particle.World
	simulator  *sim.Simulator
	randSource *rand.Rand
}

func New(cfg *config.Config, log *logrus.Entry) *Experiment {
	return &Experiment{
		cfg:        cfg,
		log:        log,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup spawns the configured particles and wires the bridge, collision
// source and metrics.
func (e *Experiment) Setup(registry *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	contact, mode, err := e.cfg.Conduction()
	if err != nil {
		return err
	}
	source, err := registry.GetSource(e.cfg.Source, e.cfg.Seed, e.cfg.PairsPerTick)
	if err != nil {
		return err
	}

	e.world = particle.NewWorld()
	if err := e.spawn(); err != nil {
		return err
	}

	b := bridge.New(e.world, thermal.NewConductor(contact, mode),
		bridge.WithEventDt(e.cfg.EventDuration()),
		bridge.WithLogger(e.log.WithField("component", "bridge")),
	)

	e.simulator = sim.New(e.world, b, source)
	for _, m := range registry.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}

	e.log.WithFields(logrus.Fields{
		"particles":   e.world.Len(),
		"source":      e.cfg.Source,
		"conductance": mode.String(),
		"event_dt":    e.cfg.EventDuration().String(),
	}).Info("sandbox ready")
	return nil
}

func (e *Experiment) spawn() error {
	for i, p := range e.cfg.Particles {
		kind, err := material.ParseKind(p.Material)
		if err != nil {
			return err
		}
		for n := 0; n < p.Count; n++ {
			temp := e.uniform(p.Temperature, p.TemperatureMax)
			diameter := e.uniform(p.DiameterMM, p.DiameterMaxMM)
			v := particle.SphereVolume(units.Millimeters(diameter))
			if _, _, err := e.world.Spawn(units.Kelvin(temp), v, kind); err != nil {
				return fmt.Errorf("particles[%d]: %w", i, err)
			}
		}
	}
	for i := 0; i < e.cfg.Walls; i++ {
		e.world.SpawnInert(wallColor)
	}
	return nil
}

func (e *Experiment) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + e.randSource.Float64()*(hi-lo)
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Ticks:       e.cfg.Ticks,
		TickRate:    e.cfg.TickRate,
		SampleEvery: e.cfg.SampleEvery,
		Seed:        e.cfg.Seed,
	}
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) World() *particle.World {
	return e.world
}
