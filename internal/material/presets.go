package material

import colorful "github.com/lucasb-eyer/go-colorful"

var presets = map[Kind]Material{
	Aluminium: {
		kind:         Aluminium,
		conductivity: 237.0,
		specificHeat: 0.9,
		density:      2.7,
		baseColor:    colorful.Color{R: 0.8, G: 0.8, B: 0.9},
	},
	Copper: {
		kind:         Copper,
		conductivity: 385.0,
		specificHeat: 0.385,
		density:      8.96,
		baseColor:    colorful.Color{R: 0.9, G: 0.6, B: 0.2},
	},
	Iron: {
		kind:         Iron,
		conductivity: 80.0,
		specificHeat: 0.45,
		density:      7.87,
		baseColor:    colorful.Color{R: 0.8, G: 0.8, B: 0.8},
	},
}

// Preset returns the built-in constants for kind. Unknown kinds fall back to
// copper, the sandbox default.
func Preset(kind Kind) Material {
	if m, ok := presets[kind]; ok {
		return m
	}
	return presets[Copper]
}
