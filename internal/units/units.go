// Package units provides typed SI quantities for the heat model.
//
// Absolute temperatures and temperature differences are separate types:
//
//   - [Kelvin]: a point on the absolute scale
//   - [Interval]: a signed difference between two such points
//
// Subtracting two Kelvin values yields an Interval, an Interval times a heat
// capacity yields an energy, and an energy over a heat capacity yields an
// Interval. There is no way to add two absolute temperatures.
package units

import (
	"math"
	"time"
)

// Kelvin is a thermodynamic (absolute) temperature.
type Kelvin float64

// Interval is a temperature difference in kelvin.
type Interval float64

// Joules is an energy.
type Joules float64

// Meters is a length.
type Meters float64

// SquareMeters is an area.
type SquareMeters float64

// CubicMeters is a volume.
type CubicMeters float64

// Kilograms is a mass.
type Kilograms float64

// JoulesPerKelvin is a heat capacity.
type JoulesPerKelvin float64

// WattsPerKelvin is a thermal conductance.
type WattsPerKelvin float64

const AbsoluteZero Kelvin = 0

func (t Kelvin) Sub(o Kelvin) Interval   { return Interval(t - o) }
func (t Kelvin) Add(d Interval) Kelvin   { return t + Kelvin(d) }
func (t Kelvin) Float() float64          { return float64(t) }
func (t Kelvin) IsFinite() bool          { return isFinite(float64(t)) }
func (d Interval) Half() Interval        { return d / 2 }
func (d Interval) Abs() Interval         { return Interval(math.Abs(float64(d))) }
func (e Joules) Float() float64          { return float64(e) }
func (v CubicMeters) Float() float64     { return float64(v) }
func (c JoulesPerKelvin) Float() float64 { return float64(c) }

// Times converts a temperature change into the energy it takes for a body of
// heat capacity c.
func (d Interval) Times(c JoulesPerKelvin) Joules {
	return Joules(float64(d) * float64(c))
}

// Per is the temperature change an energy causes in a body of heat capacity c.
func (e Joules) Per(c JoulesPerKelvin) Interval {
	return Interval(float64(e) / float64(c))
}

// Over is the heat conducted across g for a difference d sustained for dt.
func (g WattsPerKelvin) Over(d Interval, dt time.Duration) Joules {
	return Joules(float64(g) * float64(d) * dt.Seconds())
}

// Clamp bounds e to [lo, hi].
func (e Joules) Clamp(lo, hi Joules) Joules {
	return Joules(math.Max(float64(lo), math.Min(float64(e), float64(hi))))
}

func Millimeters(mm float64) Meters              { return Meters(mm / 1e3) }
func SquareMillimeters(mm2 float64) SquareMeters { return SquareMeters(mm2 / 1e6) }

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
