// Package bridge applies heat conduction to the collision pairs reported by
// the physics layer and republishes the resulting colors.
package bridge

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/heatsim/internal/colormap"
	"github.com/san-kum/heatsim/internal/particle"
	"github.com/san-kum/heatsim/internal/thermal"
	"github.com/san-kum/heatsim/internal/units"
)

// DefaultEventDt is the time each collision is assumed to conduct for: one
// frame at 144 Hz, independent of the real interval between contacts.
const DefaultEventDt = time.Second / 144

// Event is a collision-start notification for two entities.
type Event struct {
	A, B particle.Handle
}

// ColorSink receives the render color of a particle after every update.
type ColorSink interface {
	SetColor(h particle.Handle, c colorful.Color)
}

type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeNonThermal
	OutcomeSelfPair
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNonThermal:
		return "non_thermal"
	case OutcomeSelfPair:
		return "self_pair"
	}
	return "unknown"
}

// Stats accumulates what a batch did.
type Stats struct {
	Events     int
	Applied    int
	NonThermal int
	SelfPairs  int
	Clamped    int
	Moved      units.Joules
}

func (s *Stats) Merge(o Stats) {
	s.Events += o.Events
	s.Applied += o.Applied
	s.NonThermal += o.NonThermal
	s.SelfPairs += o.SelfPairs
	s.Clamped += o.Clamped
	s.Moved += o.Moved
}

type Bridge struct {
	world     *particle.World
	conductor *thermal.Conductor
	dt        time.Duration
	sink      ColorSink
	log       *logrus.Entry
}

type Option func(*Bridge)

// WithSink publishes colors somewhere other than the world's own records.
func WithSink(s ColorSink) Option {
	return func(b *Bridge) { b.sink = s }
}

func WithEventDt(dt time.Duration) Option {
	return func(b *Bridge) { b.dt = dt }
}

func WithLogger(l *logrus.Entry) Option {
	return func(b *Bridge) { b.log = l }
}

func New(w *particle.World, c *thermal.Conductor, opts ...Option) *Bridge {
	b := &Bridge{
		world:     w,
		conductor: c,
		dt:        DefaultEventDt,
		sink:      w,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) EventDt() time.Duration { return b.dt }

// Handle processes one collision event.
func (b *Bridge) Handle(ev Event) (Outcome, thermal.Exchange) {
	if ev.A == ev.B {
		return OutcomeSelfPair, thermal.Exchange{}
	}
	ba, okA := b.world.Body(ev.A)
	bb, okB := b.world.Body(ev.B)
	if !okA || !okB {
		return OutcomeNonThermal, thermal.Exchange{}
	}

	debug := b.log.Logger.IsLevelEnabled(logrus.DebugLevel)
	var before [2]units.Kelvin
	if debug {
		before = [2]units.Kelvin{ba.Temperature(), bb.Temperature()}
	}

	ex := b.conductor.Transfer(ba, bb, b.dt)

	ta, tb := ba.Temperature(), bb.Temperature()
	b.sink.SetColor(ev.A, colormap.ColorFor(ta))
	b.sink.SetColor(ev.B, colormap.ColorFor(tb))

	if debug {
		b.log.WithFields(logrus.Fields{
			"a":        ev.A.String(),
			"b":        ev.B.String(),
			"before_a": float64(before[0]),
			"before_b": float64(before[1]),
			"after_a":  float64(ta),
			"after_b":  float64(tb),
			"heat":     float64(ex.Heat),
			"clamped":  ex.Clamped,
		}).Debug("heat exchange")
	}

	return OutcomeApplied, ex
}

// Process handles a tick's batch strictly in reported order. A particle named
// in several pairs is updated once per pair, each update seeing the previous
// one's result.
func (b *Bridge) Process(batch []Event) Stats {
	st := Stats{Events: len(batch)}
	for _, ev := range batch {
		outcome, ex := b.Handle(ev)
		switch outcome {
		case OutcomeApplied:
			st.Applied++
			st.Moved += units.Joules(math.Abs(float64(ex.Heat)))
			if ex.Clamped {
				st.Clamped++
			}
		case OutcomeNonThermal:
			st.NonThermal++
		case OutcomeSelfPair:
			st.SelfPairs++
			b.log.WithField("handle", ev.A.String()).Warn("ignoring self collision")
		}
	}
	return st
}
