package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/sim"
)

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe(sim.Snapshot{Energy: 100})
	m.Observe(sim.Snapshot{Energy: 101})
	m.Observe(sim.Snapshot{Energy: 99.5})

	if math.Abs(m.Value()-0.01) > 1e-12 {
		t.Errorf("expected max drift 0.01, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}

	m.Observe(sim.Snapshot{Energy: 50})
	if m.Value() != 0 {
		t.Errorf("first observation sets the baseline, got drift %g", m.Value())
	}
}

func TestMeanTemperature(t *testing.T) {
	m := NewMeanTemperature()
	m.Observe(sim.Snapshot{Temperatures: []float64{100, 200, 600}})

	if math.Abs(m.Value()-300) > 1e-12 {
		t.Errorf("expected 300, got %g", m.Value())
	}

	m.Observe(sim.Snapshot{})
	if m.Value() != 300 {
		t.Error("empty snapshot should keep the last mean")
	}
}

func TestSpreadAndClampRate(t *testing.T) {
	s := NewSpread()
	s.Observe(sim.Snapshot{Temperatures: []float64{10, 400, 250}})
	if s.Value() != 390 {
		t.Errorf("expected spread 390, got %g", s.Value())
	}

	c := NewClampRate()
	if c.Value() != 0 {
		t.Error("no exchanges should report zero")
	}
	c.Observe(sim.Snapshot{Stats: bridge.Stats{Applied: 3, Clamped: 1}})
	c.Observe(sim.Snapshot{Stats: bridge.Stats{Applied: 1, Clamped: 1}})
	if math.Abs(c.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %g", c.Value())
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}

	e := NewExchanges()
	e.Observe(sim.Snapshot{Stats: bridge.Stats{Applied: 4}})
	if e.Value() != 4 {
		t.Errorf("expected 4 exchanges, got %g", e.Value())
	}
}
