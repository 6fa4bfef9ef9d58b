package bridge_test

import (
	"io"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/colormap"
	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/particle"
	"github.com/san-kum/heatsim/internal/thermal"
	"github.com/san-kum/heatsim/internal/units"
)

type recordingSink struct {
	colors map[particle.Handle]colorful.Color
	calls  int
}

func (r *recordingSink) SetColor(h particle.Handle, c colorful.Color) {
	r.colors[h] = c
	r.calls++
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(l)
}

var _ = Describe("Bridge", func() {
	var (
		world     *particle.World
		conductor *thermal.Conductor
		hot, cold particle.Handle
		v         units.CubicMeters
	)

	spawn := func(t units.Kelvin) particle.Handle {
		h, _, err := world.Spawn(t, v, material.Copper)
		Expect(err).NotTo(HaveOccurred())
		return h
	}

	temperature := func(h particle.Handle) float64 {
		b, ok := world.Body(h)
		Expect(ok).To(BeTrue())
		return float64(b.Temperature())
	}

	BeforeEach(func() {
		world = particle.NewWorld()
		conductor = thermal.NewConductor(thermal.DefaultContact(), thermal.SourceConductivity)
		v = 1e-2
		hot = spawn(1000)
		cold = spawn(0)
	})

	Describe("Handle", func() {
		It("moves heat from the hotter body and recolors both", func() {
			b := bridge.New(world, conductor, bridge.WithLogger(quietLogger()))

			outcome, ex := b.Handle(bridge.Event{A: hot, B: cold})

			Expect(outcome).To(Equal(bridge.OutcomeApplied))
			Expect(float64(ex.Heat)).To(BeNumerically("~", 0.385*1000*bridge.DefaultEventDt.Seconds(), 1e-9))
			Expect(temperature(hot)).To(BeNumerically("<", 1000))
			Expect(temperature(cold)).To(BeNumerically(">", 0))

			c, _ := world.Color(hot)
			Expect(c).To(Equal(colormap.ColorFor(units.Kelvin(temperature(hot)))))
			c, _ = world.Color(cold)
			Expect(c).To(Equal(colormap.ColorFor(units.Kelvin(temperature(cold)))))
		})

		It("is symmetric in the direction of flow", func() {
			b := bridge.New(world, conductor, bridge.WithLogger(quietLogger()))

			_, ex := b.Handle(bridge.Event{A: cold, B: hot})

			Expect(float64(ex.Heat)).To(BeNumerically("<", 0))
			Expect(temperature(hot)).To(BeNumerically("<", 1000))
		})

		It("ignores collisions with non-thermal colliders", func() {
			wall := world.SpawnInert(colorful.Color{})
			sink := &recordingSink{colors: map[particle.Handle]colorful.Color{}}
			b := bridge.New(world, conductor, bridge.WithSink(sink))

			outcome, _ := b.Handle(bridge.Event{A: hot, B: wall})

			Expect(outcome).To(Equal(bridge.OutcomeNonThermal))
			Expect(sink.calls).To(BeZero())
			Expect(temperature(hot)).To(BeNumerically("~", 1000, 1e-9))
		})

		It("ignores despawned particles", func() {
			world.Despawn(cold)
			b := bridge.New(world, conductor)

			outcome, _ := b.Handle(bridge.Event{A: hot, B: cold})

			Expect(outcome).To(Equal(bridge.OutcomeNonThermal))
		})

		It("rejects self pairs", func() {
			b := bridge.New(world, conductor, bridge.WithLogger(quietLogger()))
			energy := world.TotalEnergy()

			outcome, _ := b.Handle(bridge.Event{A: hot, B: hot})

			Expect(outcome).To(Equal(bridge.OutcomeSelfPair))
			Expect(world.TotalEnergy()).To(Equal(energy))
		})

		It("publishes to a custom sink", func() {
			sink := &recordingSink{colors: map[particle.Handle]colorful.Color{}}
			b := bridge.New(world, conductor, bridge.WithSink(sink), bridge.WithEventDt(time.Second))

			b.Handle(bridge.Event{A: hot, B: cold})

			Expect(sink.calls).To(Equal(2))
			Expect(sink.colors).To(HaveKey(hot))
			Expect(sink.colors).To(HaveKey(cold))
			Expect(b.EventDt()).To(Equal(time.Second))
		})
	})

	Describe("Process", func() {
		It("applies pairs sharing a particle sequentially and conserves energy", func() {
			third := spawn(500)
			b := bridge.New(world, conductor, bridge.WithLogger(quietLogger()))
			before := float64(world.TotalEnergy())

			st := b.Process([]bridge.Event{
				{A: hot, B: cold},
				{A: hot, B: third},
				{A: cold, B: third},
				{A: hot, B: hot},
			})

			Expect(st.Events).To(Equal(4))
			Expect(st.Applied).To(Equal(3))
			Expect(st.SelfPairs).To(Equal(1))
			Expect(float64(st.Moved)).To(BeNumerically(">", 0))
			Expect(float64(world.TotalEnergy())).To(BeNumerically("~", before, 1e-9*before))
		})

		It("matches the result of handling each event in order", func() {
			third := spawn(500)
			batch := []bridge.Event{{A: hot, B: third}, {A: third, B: cold}, {A: hot, B: cold}}

			other := particle.NewWorld()
			oh, _, _ := other.Spawn(1000, v, material.Copper)
			oc, _, _ := other.Spawn(0, v, material.Copper)
			ot, _, _ := other.Spawn(500, v, material.Copper)
			ob := bridge.New(other, conductor)
			ob.Handle(bridge.Event{A: oh, B: ot})
			ob.Handle(bridge.Event{A: ot, B: oc})
			ob.Handle(bridge.Event{A: oh, B: oc})

			bridge.New(world, conductor).Process(batch)

			Expect(world.Temperatures()).To(Equal(other.Temperatures()))
		})

		It("counts clamped exchanges", func() {
			small := particle.NewWorld()
			a, _, _ := small.Spawn(1000, 1e-12, material.Copper)
			c, _, _ := small.Spawn(0, 1e-12, material.Copper)

			st := bridge.New(small, conductor).Process([]bridge.Event{{A: a, B: c}})

			Expect(st.Clamped).To(Equal(1))
			ba, _ := small.Body(a)
			bc, _ := small.Body(c)
			Expect(float64(ba.Temperature())).To(BeNumerically("~", 500, 1e-9))
			Expect(float64(bc.Temperature())).To(BeNumerically("~", 500, 1e-9))
		})
	})

	Describe("Stats", func() {
		It("merges counters", func() {
			s := bridge.Stats{Events: 1, Applied: 1, Moved: 2}
			s.Merge(bridge.Stats{Events: 2, NonThermal: 1, SelfPairs: 1, Clamped: 1, Moved: 3})
			Expect(s).To(Equal(bridge.Stats{Events: 3, Applied: 1, NonThermal: 1, SelfPairs: 1, Clamped: 1, Moved: 5}))
		})
	})
})
