// Package colormap turns absolute temperatures into display colors.
package colormap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/heatsim/internal/units"
)

// Range over which the black-body fit holds. Inputs outside are pinned to
// the nearest edge.
const (
	MinKelvin = 1000
	MaxKelvin = 40000
)

// Blackbody approximates the color of a black body at t, with channels
// normalized to [0, 1].
func Blackbody(t units.Kelvin) colorful.Color {
	r, g, b := blackbodyRGB(t)
	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}
}

// blackbodyRGB is Tanner Helland's curve fit on whole kelvin, in 0..255.
func blackbodyRGB(t units.Kelvin) (r, g, b float64) {
	k := float64(t)
	if math.IsNaN(k) || k < MinKelvin {
		k = MinKelvin
	}
	if k > MaxKelvin {
		k = MaxKelvin
	}
	temp := math.Trunc(k) / 100

	if temp <= 66 {
		r = 255
		g = 99.4708025861*math.Log(temp) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(temp-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(temp-60, -0.0755148492)
	}

	switch {
	case temp >= 66:
		b = 255
	case temp <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(temp-10) - 305.0447927307
	}

	return clamp255(r), clamp255(g), clamp255(b)
}

// Brightness is log4(t), or 1 where that is not a usable multiplier
// (t <= 1, NaN, infinities).
func Brightness(t units.Kelvin) float64 {
	if t <= 1 {
		return 1.0
	}
	m := math.Log(float64(t)) / math.Log(4)
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 1.0
	}
	return m
}

// ColorFor is the render color of a body at t. Channels are not clamped and
// exceed 1.0 for hot bodies; tone mapping is left to the renderer.
func ColorFor(t units.Kelvin) colorful.Color {
	c := Blackbody(t)
	m := Brightness(t)
	return colorful.Color{R: c.R * m, G: c.G * m, B: c.B * m}
}

// Display is the hex form of c after clamping to the displayable range.
func Display(c colorful.Color) string {
	return c.Clamped().Hex()
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}
