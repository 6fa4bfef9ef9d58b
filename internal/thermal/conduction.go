package thermal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/heatsim/internal/units"
)

// ConductanceMode selects which conductivity drives a contact.
type ConductanceMode int

const (
	// SourceConductivity uses the first body's conductivity only.
	SourceConductivity ConductanceMode = iota
	// HarmonicMean uses 2·ka·kb/(ka+kb), symmetric in the pair.
	HarmonicMean
)

func (m ConductanceMode) String() string {
	switch m {
	case HarmonicMean:
		return "harmonic"
	default:
		return "source"
	}
}

func ParseConductanceMode(s string) (ConductanceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "source":
		return SourceConductivity, nil
	case "harmonic", "harmonic_mean":
		return HarmonicMean, nil
	}
	return 0, fmt.Errorf("unknown conductance mode: %q", s)
}

// Contact is the nominal conductive disk placed between two touching bodies.
// It is a fixed approximation, not derived from particle geometry.
type Contact struct {
	Area      units.SquareMeters
	Thickness units.Meters
}

// DefaultContact is a 1 mm² disk, 1 mm thick.
func DefaultContact() Contact {
	return Contact{
		Area:      units.SquareMillimeters(1),
		Thickness: units.Millimeters(1),
	}
}

// Exchange describes one conduction step. Heat is the energy moved from a to
// b; a negative value means b heated a.
type Exchange struct {
	Heat     units.Joules
	Raw      units.Joules
	Midpoint units.Kelvin
	Clamped  bool
}

type Conductor struct {
	contact Contact
	mode    ConductanceMode
}

func NewConductor(contact Contact, mode ConductanceMode) *Conductor {
	return &Conductor{contact: contact, mode: mode}
}

func (c *Conductor) Contact() Contact      { return c.contact }
func (c *Conductor) Mode() ConductanceMode { return c.mode }

// Conductance of the contact between a and b.
func (c *Conductor) Conductance(a, b *Body) units.WattsPerKelvin {
	k := a.material.Conductivity()
	if c.mode == HarmonicMean {
		kb := b.material.Conductivity()
		k = 2 * k * kb / (k + kb)
	}
	return units.WattsPerKelvin(k * float64(c.contact.Area) / float64(c.contact.Thickness))
}

// Transfer runs one conduction step of length dt between a and b and applies
// it to both. The moved energy never exceeds what brings the lower-capacity
// body to the pair's midpoint temperature, so the gradient cannot reverse.
func (c *Conductor) Transfer(a, b *Body, dt time.Duration) Exchange {
	ta, tb := a.Temperature(), b.Temperature()
	delta := ta.Sub(tb)
	ex := Exchange{Midpoint: ta.Add(-delta.Half())}

	if a == b || dt <= 0 || atEquilibrium(ta, tb) {
		return ex
	}

	ex.Raw = c.Conductance(a, b).Over(delta, dt)

	// Bound is |ΔT/2|·min(Ca, Cb), not midpoint·C.
	capacity := units.JoulesPerKelvin(math.Min(a.HeatCapacity().Float(), b.HeatCapacity().Float()))
	limit := delta.Half().Abs().Times(capacity)
	ex.Heat = ex.Raw.Clamp(-limit, limit)
	ex.Clamped = ex.Heat != ex.Raw

	a.AddHeat(-ex.Heat)
	b.AddHeat(ex.Heat)
	return ex
}

// equilibriumULPs is how many float64 epsilons of separation still count as
// the same temperature. Equal spawn temperatures read back a few ULPs apart
// once they pass through energy and heat capacity.
const equilibriumULPs = 4

const epsilon = 0x1p-52

func atEquilibrium(ta, tb units.Kelvin) bool {
	scale := math.Max(math.Abs(ta.Float()), math.Abs(tb.Float()))
	return math.Abs(ta.Float()-tb.Float()) <= equilibriumULPs*epsilon*scale
}
