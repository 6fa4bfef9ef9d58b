package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/sim"
)

// EnergyDrift tracks the largest relative change of total stored energy
// since the first observation. Conduction only moves heat, so anything
// above rounding noise points at a bug.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Snapshot) {
	if e.samples == 0 {
		e.initialEnergy = s.Energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(s.Energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanTemperature is the average particle temperature at the last tick.
type MeanTemperature struct {
	name string
	last float64
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(s sim.Snapshot) {
	if len(s.Temperatures) == 0 {
		return
	}
	sum := 0.0
	for _, t := range s.Temperatures {
		sum += t
	}
	m.last = sum / float64(len(s.Temperatures))
}

func (m *MeanTemperature) Value() float64 { return m.last }
func (m *MeanTemperature) Reset()         { m.last = 0 }
