package analysis

import (
	"math"
)

// Spread returns max-min over one sample, or 0 for fewer than two values.
func Spread(temps []float64) float64 {
	if len(temps) < 2 {
		return 0
	}
	lo, hi := temps[0], temps[0]
	for _, t := range temps[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	return hi - lo
}

// Spreads maps Spread over every sample.
func Spreads(samples [][]float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = Spread(s)
	}
	return out
}

// RelaxationRate fits ln(spread) = a - lambda*t by least squares and returns
// lambda in 1/s. Samples whose spread is zero are skipped. It returns 0 when
// fewer than two usable samples remain.
func RelaxationRate(times []float64, samples [][]float64) float64 {
	var sumT, sumY, sumTT, sumTY float64
	count := 0

	for i, s := range samples {
		if i >= len(times) {
			break
		}
		sp := Spread(s)
		if sp <= 0 {
			continue
		}
		t, y := times[i], math.Log(sp)
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
		count++
	}

	if count < 2 {
		return 0
	}

	n := float64(count)
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	return -(n*sumTY - sumT*sumY) / denom
}

// SettleTime returns the first sample time at which the spread is at most
// fraction of the initial spread.
func SettleTime(times []float64, samples [][]float64, fraction float64) (float64, bool) {
	if len(samples) == 0 || len(times) == 0 {
		return 0, false
	}
	limit := Spread(samples[0]) * fraction
	for i, s := range samples {
		if i >= len(times) {
			break
		}
		if Spread(s) <= limit {
			return times[i], true
		}
	}
	return 0, false
}

// EnergyDrift is the largest relative deviation of stored energy from the
// first sample.
func EnergyDrift(energies []float64) float64 {
	if len(energies) == 0 || energies[0] == 0 {
		return 0
	}
	worst := 0.0
	for _, e := range energies[1:] {
		worst = math.Max(worst, math.Abs(e-energies[0])/math.Abs(energies[0]))
	}
	return worst
}
