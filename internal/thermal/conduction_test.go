package thermal

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/units"
)

const frame = time.Second / 144

func newBody(t *testing.T, temp float64, vol float64, kind material.Kind) *Body {
	t.Helper()
	b, err := FromTemperature(units.Kelvin(temp), units.CubicMeters(vol), material.Preset(kind))
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	return b
}

func TestCopperPairUnclamped(t *testing.T) {
	a := newBody(t, 1000, 1e-2, material.Copper)
	b := newBody(t, 0, 1e-2, material.Copper)

	ex := NewConductor(DefaultContact(), SourceConductivity).Transfer(a, b, frame)

	// 385 W/(m·K) × 1e-6 m² / 1e-3 m = 0.385 W/K
	expected := 0.385 * 1000 * frame.Seconds()

	if ex.Clamped {
		t.Fatal("clamp should not trigger for this volume")
	}
	q := float64(ex.Heat)
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		t.Fatalf("expected finite positive transfer, got %g", q)
	}
	if math.Abs(q-expected) > 1e-12*expected {
		t.Errorf("expected q=%.12g, got %.12g", expected, q)
	}

	ta, tb := float64(a.Temperature()), float64(b.Temperature())
	if !(ta > 0 && ta < 1000) || !(tb > 0 && tb < 1000) {
		t.Errorf("temperatures out of range: %g %g", ta, tb)
	}
	if math.Abs(float64(ex.Midpoint)-500) > 1e-12 {
		t.Errorf("expected midpoint 500K, got %g", float64(ex.Midpoint))
	}
}

func TestTinyVolumeHitsMidpoint(t *testing.T) {
	a := newBody(t, 1000, 1e-12, material.Copper)
	b := newBody(t, 0, 1e-12, material.Copper)

	ex := NewConductor(DefaultContact(), SourceConductivity).Transfer(a, b, time.Second)

	if !ex.Clamped {
		t.Fatal("expected clamp to activate")
	}
	if ex.Raw <= ex.Heat {
		t.Errorf("raw transfer %g should exceed the clamped %g", float64(ex.Raw), float64(ex.Heat))
	}
	if math.Abs(float64(b.Temperature())-float64(ex.Midpoint)) > 1e-9 {
		t.Errorf("colder body should land on midpoint %g, got %g", float64(ex.Midpoint), float64(b.Temperature()))
	}
	if math.Abs(float64(a.Temperature())-float64(ex.Midpoint)) > 1e-9 {
		t.Errorf("hotter body should land on midpoint %g, got %g", float64(ex.Midpoint), float64(a.Temperature()))
	}
}

func TestEquilibriumIsIdempotent(t *testing.T) {
	kinds := []material.Kind{material.Aluminium, material.Copper, material.Iron}
	volumes := []float64{1e-6, 1e-4, 3e-4, 2.7e-3}
	temps := []float64{0, 1, 273.15, 420, 1337.33, 6000, 1e5}

	for _, mode := range []ConductanceMode{SourceConductivity, HarmonicMean} {
		c := NewConductor(DefaultContact(), mode)
		for _, temp := range temps {
			for i, ka := range kinds {
				for j, kb := range kinds {
					va, vb := volumes[(i+j)%len(volumes)], volumes[(i+2*j+1)%len(volumes)]
					a := newBody(t, temp, va, ka)
					b := newBody(t, temp, vb, kb)
					ea, eb := a.Energy(), b.Energy()

					ex := c.Transfer(a, b, frame)

					if ex.Heat != 0 || ex.Raw != 0 {
						t.Errorf("%v/%v at %gK: expected zero transfer, got %g", ka, kb, temp, float64(ex.Heat))
					}
					if a.Energy() != ea || b.Energy() != eb {
						t.Errorf("%v/%v at %gK: bodies must be unchanged at equilibrium", ka, kb, temp)
					}
				}
			}
		}
	}
}

func TestNearEquilibriumStillConducts(t *testing.T) {
	a := newBody(t, 420.001, 1e-4, material.Iron)
	b := newBody(t, 420, 3e-4, material.Aluminium)

	ex := NewConductor(DefaultContact(), SourceConductivity).Transfer(a, b, frame)

	if ex.Heat <= 0 {
		t.Errorf("a millikelvin gradient should still move heat, got %g", float64(ex.Heat))
	}
}

func TestZeroStepAndSelfTransfer(t *testing.T) {
	c := NewConductor(DefaultContact(), SourceConductivity)
	a := newBody(t, 900, 1e-4, material.Copper)
	b := newBody(t, 100, 1e-4, material.Copper)
	ea := a.Energy()

	if ex := c.Transfer(a, b, 0); ex.Heat != 0 {
		t.Errorf("zero dt should move nothing, got %g", float64(ex.Heat))
	}
	if ex := c.Transfer(a, a, frame); ex.Heat != 0 {
		t.Errorf("self transfer should move nothing, got %g", float64(ex.Heat))
	}
	if a.Energy() != ea {
		t.Error("energy changed on a no-op transfer")
	}
}

func TestConductionProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := material.Kinds()

	for _, mode := range []ConductanceMode{SourceConductivity, HarmonicMean} {
		c := NewConductor(DefaultContact(), mode)

		for i := 0; i < 2000; i++ {
			ta, tb := rng.Float64()*1e5, rng.Float64()*6000
			va := math.Pow(10, -12+rng.Float64()*10)
			vb := math.Pow(10, -12+rng.Float64()*10)
			dt := time.Duration(rng.Int63n(int64(10 * time.Second)))
			a := newBody(t, ta, va, kinds[rng.Intn(len(kinds))])
			b := newBody(t, tb, vb, kinds[rng.Intn(len(kinds))])

			before := float64(a.Energy() + b.Energy())
			preA, preB := a.Temperature(), b.Temperature()

			ex := c.Transfer(a, b, dt)

			after := float64(a.Energy() + b.Energy())
			if math.Abs(after-before) > 1e-9*math.Max(1, math.Abs(before)) {
				t.Fatalf("%s #%d: energy not conserved: %g -> %g", mode, i, before, after)
			}

			if preA > preB && ex.Heat < 0 {
				t.Fatalf("%s #%d: heat flowed from cold to hot: q=%g", mode, i, float64(ex.Heat))
			}

			mid := float64(ex.Midpoint)
			postA, postB := float64(a.Temperature()), float64(b.Temperature())
			tol := 1e-9 * math.Max(1, math.Abs(mid))
			if !between(postA, float64(preA), mid, tol) || !between(postB, float64(preB), mid, tol) {
				t.Fatalf("%s #%d: overshoot: pre %g/%g mid %g post %g/%g", mode, i,
					float64(preA), float64(preB), mid, postA, postB)
			}
		}
	}
}

func TestConductanceModes(t *testing.T) {
	cu := newBody(t, 500, 1e-4, material.Copper)
	fe := newBody(t, 100, 1e-4, material.Iron)

	src := NewConductor(DefaultContact(), SourceConductivity)
	if g, want := float64(src.Conductance(cu, fe)), 385*1e-6/1e-3; math.Abs(g-want) > 1e-12 {
		t.Errorf("source: expected %g, got %g", want, g)
	}
	if g, want := float64(src.Conductance(fe, cu)), 80*1e-6/1e-3; math.Abs(g-want) > 1e-12 {
		t.Errorf("source reversed: expected %g, got %g", want, g)
	}

	hm := NewConductor(DefaultContact(), HarmonicMean)
	want := 2 * 385.0 * 80 / (385 + 80) * 1e-6 / 1e-3
	if g1, g2 := float64(hm.Conductance(cu, fe)), float64(hm.Conductance(fe, cu)); math.Abs(g1-want) > 1e-12 || math.Abs(g2-want) > 1e-12 {
		t.Errorf("harmonic: expected %g both ways, got %g and %g", want, g1, g2)
	}
}

func TestParseConductanceMode(t *testing.T) {
	tests := []struct {
		in   string
		want ConductanceMode
		ok   bool
	}{
		{"", SourceConductivity, true},
		{"source", SourceConductivity, true},
		{"Harmonic", HarmonicMean, true},
		{"average", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseConductanceMode(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: unexpected error state %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func between(x, from, to, tol float64) bool {
	lo, hi := math.Min(from, to), math.Max(from, to)
	return x >= lo-tol && x <= hi+tol
}
