package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/particle"
)

type Simulator struct {
	world     *particle.World
	bridge    *bridge.Bridge
	source    CollisionSource
	metrics   []Metric
	observers []Observer
}

func New(world *particle.World, b *bridge.Bridge, source CollisionSource) *Simulator {
	return &Simulator{
		world:     world,
		bridge:    b,
		source:    source,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) World() *particle.World { return s.world }

// Step runs one tick: it pulls the tick's collision batch, hands it to the
// bridge and reports the result to metrics and observers.
func (s *Simulator) Step(tick int, tickRate float64) Snapshot {
	batch := s.source.Next(tick, s.world)
	st := s.bridge.Process(batch)

	snap := Snapshot{
		Tick:         tick,
		Time:         float64(tick) / tickRate,
		Energy:       float64(s.world.TotalEnergy()),
		Temperatures: s.world.Temperatures(),
		Stats:        st,
	}

	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, obs := range s.observers {
		obs.OnTick(snap)
	}
	return snap
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := cfg.Ticks/cfg.SampleEvery + 1
	result := &Result{
		Times:        make([]float64, 0, samples),
		Temperatures: make([][]float64, 0, samples),
		Energies:     make([]float64, 0, samples),
		Metrics:      make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Times = append(result.Times, 0)
	result.Temperatures = append(result.Temperatures, s.world.Temperatures())
	result.Energies = append(result.Energies, float64(s.world.TotalEnergy()))

	for tick := 1; tick <= cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		snap := s.Step(tick, cfg.TickRate)
		result.Totals.Merge(snap.Stats)
		result.TicksTaken++

		if math.IsNaN(snap.Energy) || math.IsInf(snap.Energy, 0) {
			return result, SimError{Tick: tick, Message: "stored energy diverged"}
		}

		if tick%cfg.SampleEvery == 0 || tick == cfg.Ticks {
			result.Times = append(result.Times, snap.Time)
			result.Temperatures = append(result.Temperatures, snap.Temperatures)
			result.Energies = append(result.Energies, snap.Energy)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %f", cfg.TickRate)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("sample interval must be positive, got %d", cfg.SampleEvery)
	}
	return nil
}
