package viz

import (
	"github.com/guptarohit/asciigraph"
)

// MaxSeries caps how many particle histories one chart draws.
const MaxSeries = 8

// PlotTemperatures charts per-particle temperature histories. samples is
// indexed [sample][particle]; when there are more particles than MaxSeries an
// evenly spaced subset is drawn.
func PlotTemperatures(samples [][]float64, width, height int) string {
	series := transpose(samples)
	if len(series) == 0 || len(series[0]) < 2 {
		return ""
	}
	series = pick(series, MaxSeries)

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption("Temperature (K)"),
	)
}

func PlotEnergy(energies []float64, width, height int) string {
	if len(energies) < 2 {
		return ""
	}
	return asciigraph.Plot(energies,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("Total energy (J)"),
	)
}

func transpose(samples [][]float64) [][]float64 {
	if len(samples) == 0 {
		return nil
	}
	n := len(samples[0])
	out := make([][]float64, n)
	for p := range out {
		out[p] = make([]float64, 0, len(samples))
		for _, row := range samples {
			if p < len(row) {
				out[p] = append(out[p], row[p])
			}
		}
	}
	return out
}

func pick(series [][]float64, limit int) [][]float64 {
	if len(series) <= limit {
		return series
	}
	out := make([][]float64, 0, limit)
	stride := float64(len(series)) / float64(limit)
	for i := 0; i < limit; i++ {
		out = append(out, series[int(float64(i)*stride)])
	}
	return out
}
