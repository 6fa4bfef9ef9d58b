package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/sim"
)

// Spread is max minus min particle temperature at the last tick; it falls
// toward zero as the sandbox equilibrates.
type Spread struct {
	name string
	last float64
}

func NewSpread() *Spread {
	return &Spread{name: "temperature_spread"}
}

func (s *Spread) Name() string {
	return s.name
}

func (s *Spread) Observe(snap sim.Snapshot) {
	if len(snap.Temperatures) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range snap.Temperatures {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	s.last = hi - lo
}

func (s *Spread) Value() float64 {
	return s.last
}

func (s *Spread) Reset() {
	s.last = 0
}

// ClampRate is the share of applied exchanges the stability clamp cut short.
type ClampRate struct {
	name    string
	clamped int
	applied int
}

func NewClampRate() *ClampRate {
	return &ClampRate{name: "clamp_rate"}
}

func (c *ClampRate) Name() string {
	return c.name
}

func (c *ClampRate) Observe(snap sim.Snapshot) {
	c.clamped += snap.Stats.Clamped
	c.applied += snap.Stats.Applied
}

func (c *ClampRate) Value() float64 {
	if c.applied == 0 {
		return 0
	}
	return float64(c.clamped) / float64(c.applied)
}

func (c *ClampRate) Reset() {
	c.clamped = 0
	c.applied = 0
}
