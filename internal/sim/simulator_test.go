package sim

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/particle"
	"github.com/san-kum/heatsim/internal/thermal"
	"github.com/san-kum/heatsim/internal/units"
)

func newTestSim(t *testing.T, source func(hs []particle.Handle) CollisionSource) (*Simulator, []particle.Handle) {
	t.Helper()
	w := particle.NewWorld()
	temps := []float64{1000, 0, 500, 3000}
	hs := make([]particle.Handle, 0, len(temps))
	for _, temp := range temps {
		h, _, err := w.Spawn(units.Kelvin(temp), 1e-6, material.Copper)
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
		hs = append(hs, h)
	}

	l := logrus.New()
	l.SetOutput(io.Discard)
	b := bridge.New(w, thermal.NewConductor(thermal.DefaultContact(), thermal.SourceConductivity),
		bridge.WithLogger(logrus.NewEntry(l)))
	return New(w, b, source(hs)), hs
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s Snapshot) {
	t.count++
	t.sum += float64(s.Stats.Applied)
}
func (t *testMetric) Value() float64 { return t.sum }
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorRun(t *testing.T) {
	s, hs := newTestSim(t, func(hs []particle.Handle) CollisionSource {
		return NewScript(
			[]bridge.Event{{A: hs[0], B: hs[1]}},
			[]bridge.Event{{A: hs[2], B: hs[3]}, {A: hs[0], B: hs[3]}},
		)
	})
	metric := &testMetric{}
	s.AddMetric(metric)

	initial := float64(s.World().TotalEnergy())
	result, err := s.Run(context.Background(), Config{Ticks: 10, TickRate: 144, SampleEvery: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 3 {
		t.Errorf("expected 3 samples, got %d", len(result.Times))
	}
	if len(result.Temperatures[0]) != len(hs) {
		t.Errorf("expected %d temperatures per sample, got %d", len(hs), len(result.Temperatures[0]))
	}
	if result.TicksTaken != 10 {
		t.Errorf("expected 10 ticks, got %d", result.TicksTaken)
	}
	if result.Totals.Applied != 3 {
		t.Errorf("expected 3 applied exchanges, got %d", result.Totals.Applied)
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if result.Metrics["test"] != 3 {
		t.Errorf("expected metric value 3, got %f", result.Metrics["test"])
	}

	final := result.Energies[len(result.Energies)-1]
	if math.Abs(final-initial) > 1e-12*initial {
		t.Errorf("energy drifted: %g -> %g", initial, final)
	}
	if math.Abs(result.Times[2]-10.0/144) > 1e-12 {
		t.Errorf("expected last sample at %g s, got %g", 10.0/144, result.Times[2])
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s, _ := newTestSim(t, func([]particle.Handle) CollisionSource { return NewScript() })

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0, TickRate: 144, SampleEvery: 1}},
		{"negative rate", Config{Ticks: 10, TickRate: -1, SampleEvery: 1}},
		{"zero sample interval", Config{Ticks: 10, TickRate: 144, SampleEvery: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s, _ := newTestSim(t, func([]particle.Handle) CollisionSource { return NewRandomPairs(1, 4) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, DefaultConfig())
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.TicksTaken != 0 {
		t.Errorf("expected no ticks after cancel, got %d", result.TicksTaken)
	}
}

func TestRandomPairsNeverSelfPairs(t *testing.T) {
	w := particle.NewWorld()
	for i := 0; i < 3; i++ {
		w.Spawn(300, 1e-6, material.Iron)
	}
	src := NewRandomPairs(42, 50)

	for tick := 1; tick <= 20; tick++ {
		batch := src.Next(tick, w)
		if len(batch) != 50 {
			t.Fatalf("expected 50 events, got %d", len(batch))
		}
		for _, ev := range batch {
			if ev.A == ev.B {
				t.Fatalf("tick %d: self pair %v", tick, ev.A)
			}
		}
	}

	lonely := particle.NewWorld()
	lonely.Spawn(300, 1e-6, material.Iron)
	if batch := src.Next(1, lonely); batch != nil {
		t.Errorf("expected no events for a single particle, got %d", len(batch))
	}
}

func TestRandomPairsDeterministic(t *testing.T) {
	run := func() []float64 {
		s, _ := newTestSim(t, func([]particle.Handle) CollisionSource { return NewRandomPairs(99, 3) })
		res, err := s.Run(context.Background(), Config{Ticks: 50, TickRate: 144, SampleEvery: 50})
		if err != nil {
			t.Fatal(err)
		}
		return res.Temperatures[len(res.Temperatures)-1]
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestEnsemble(t *testing.T) {
	build := func(seed int64) (*Simulator, error) {
		s, _ := newTestSim(t, func([]particle.Handle) CollisionSource { return NewRandomPairs(seed, 2) })
		return s, nil
	}

	results, err := NewEnsemble(build, 4, 10).Run(context.Background(), Config{Ticks: 20, TickRate: 144, SampleEvery: 10})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.TicksTaken != 20 {
			t.Errorf("run %d: expected 20 ticks, got %d", i, r.TicksTaken)
		}
	}
}
