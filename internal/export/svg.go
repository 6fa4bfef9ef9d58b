package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/heatsim/internal/colormap"
	"github.com/san-kum/heatsim/internal/particle"
	"github.com/san-kum/heatsim/internal/units"
)

const (
	cell      = 48.0
	minRadius = 3.0
	wallSize  = 10.0
)

// SnapshotSVG lays the world's records out on a grid, one circle per
// particle, filled with its current render color. Radii scale with the cube
// root of volume; inert colliders are drawn as squares.
func SnapshotSVG(w *particle.World, columns int) string {
	handles := w.Handles()
	if columns <= 0 {
		columns = 8
	}
	rows := (len(handles) + columns - 1) / columns
	if rows == 0 {
		rows = 1
	}

	maxSide := 0.0
	for _, h := range handles {
		if b, ok := w.Body(h); ok {
			maxSide = math.Max(maxSide, math.Cbrt(float64(b.Volume())))
		}
	}

	width := float64(columns) * cell
	height := float64(rows) * cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, h := range handles {
		cx := float64(i%columns)*cell + cell/2
		cy := float64(i/columns)*cell + cell/2
		c, _ := w.Color(h)
		fill := colormap.Display(c)

		b, ok := w.Body(h)
		if !ok {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, cx-wallSize/2, cy-wallSize/2, wallSize, wallSize, fill))
			continue
		}

		r := cell / 2 * 0.9
		if maxSide > 0 {
			r = math.Max(minRadius, r*math.Cbrt(float64(b.Volume()))/maxSide)
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s %.1fK</title></circle>
`, cx, cy, r, fill, h, float64(b.Temperature())))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG draws one polyline per particle temperature history. Each line is
// stroked with the color of its final sample.
func SeriesSVG(times []float64, temps [][]float64, width, height int) string {
	if len(times) < 2 || len(temps) != len(times) {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, row := range temps {
		for _, v := range row {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	last := temps[len(temps)-1]
	for p := range last {
		stroke := strokeFor(last[p])
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i, t := range times {
			if p >= len(temps[i]) {
				break
			}
			x := (t - minX) / rangeX * float64(width)
			y := float64(height) - (temps[i][p]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func strokeFor(kelvin float64) string {
	return colormap.Display(colormap.Blackbody(units.Kelvin(kelvin)))
}
