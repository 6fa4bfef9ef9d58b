package experiment

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/particle"
)

func quiet() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestSetupSpawnsConfiguredParticles(t *testing.T) {
	cfg := config.GetPreset("drop")
	cfg.Seed = 3

	exp := New(cfg, quiet())
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w := exp.World()
	if got := len(w.Thermal()); got != cfg.TotalParticles() {
		t.Errorf("expected %d thermal particles, got %d", cfg.TotalParticles(), got)
	}
	if w.Len() != cfg.TotalParticles()+cfg.Walls {
		t.Errorf("expected %d records with walls, got %d", cfg.TotalParticles()+cfg.Walls, w.Len())
	}
	for _, temp := range w.Temperatures() {
		if temp < 0 || temp > 6000 {
			t.Errorf("temperature %g outside configured range", temp)
		}
	}
}

func TestRunConservesEnergy(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := config.GetPreset(name)
			cfg.Ticks = 200
			cfg.Seed = 11

			exp := New(cfg, quiet())
			if err := exp.Setup(NewRegistry()); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			result, err := exp.Run(context.Background())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if drift := result.Metrics["energy_drift"]; drift > 1e-9 {
				t.Errorf("energy drift %g", drift)
			}
			first, last := result.Temperatures[0], result.Temperatures[len(result.Temperatures)-1]
			if spread(last) > spread(first)+1e-6 {
				t.Errorf("spread grew from %g to %g", spread(first), spread(last))
			}
		})
	}
}

func TestSetupRejectsUnknownSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source = "brownian"
	if err := New(cfg, quiet()).Setup(NewRegistry()); err == nil {
		t.Error("expected error for unknown source")
	}

	if _, err := New(cfg, quiet()).Run(context.Background()); err == nil {
		t.Error("expected error when running without setup")
	}
}

func TestRingWalksNeighbours(t *testing.T) {
	w := particle.NewWorld()
	hs := make([]particle.Handle, 3)
	for i := range hs {
		hs[i], _, _ = w.Spawn(100, 1e-6, 0)
	}

	r := NewRing(2)
	first := r.Next(1, w)
	second := r.Next(2, w)

	if first[0].A != hs[0] || first[0].B != hs[1] || first[1].A != hs[1] || first[1].B != hs[2] {
		t.Errorf("unexpected first batch %v", first)
	}
	if second[0].A != hs[2] || second[0].B != hs[0] {
		t.Errorf("ring should wrap around, got %v", second)
	}
}

func spread(ts []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range ts {
		lo, hi = math.Min(lo, t), math.Max(hi, t)
	}
	return hi - lo
}
