package thermal

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/units"
)

var (
	// ErrInvalidTemperature indicates a NaN, infinite or sub-zero starting temperature.
	ErrInvalidTemperature = errors.New("thermal: temperature must be finite and >= absolute zero")

	// ErrInvalidVolume indicates a non-positive or non-finite volume.
	ErrInvalidVolume = errors.New("thermal: volume must be finite and positive")
)

// Body is the heat state of one particle. Stored energy is measured from
// absolute zero; temperature, mass and heat capacity are derived on demand.
type Body struct {
	energy   units.Joules
	volume   units.CubicMeters
	material material.Material
}

// FromTemperature builds a body at temperature t.
func FromTemperature(t units.Kelvin, v units.CubicMeters, m material.Material) (*Body, error) {
	if !t.IsFinite() || t < units.AbsoluteZero {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidTemperature, float64(t))
	}
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) || v <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidVolume, float64(v))
	}

	b := &Body{volume: v, material: m}
	b.energy = t.Sub(units.AbsoluteZero).Times(b.HeatCapacity())
	return b, nil
}

func (b *Body) Energy() units.Joules        { return b.energy }
func (b *Body) Volume() units.CubicMeters   { return b.volume }
func (b *Body) Material() material.Material { return b.material }

func (b *Body) Mass() units.Kilograms {
	return units.Kilograms(float64(b.volume) * b.material.Density())
}

func (b *Body) HeatCapacity() units.JoulesPerKelvin {
	return units.JoulesPerKelvin(float64(b.Mass()) * b.material.SpecificHeat())
}

// Temperature is always defined: heat capacity is positive by construction.
func (b *Body) Temperature() units.Kelvin {
	return units.AbsoluteZero.Add(b.energy.Per(b.HeatCapacity()))
}

// AddHeat adds q to the stored energy. It does not bound the result.
func (b *Body) AddHeat(q units.Joules) {
	b.energy += q
}

func (b *Body) AddTemperature(d units.Interval) {
	b.AddHeat(d.Times(b.HeatCapacity()))
}

func (b *Body) String() string {
	return fmt.Sprintf("%s %.2fK (%.4gJ)", b.material.Kind(), float64(b.Temperature()), float64(b.energy))
}
