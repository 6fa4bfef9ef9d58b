package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/heatsim/internal/colormap"
	"github.com/san-kum/heatsim/internal/units"
)

// Swatch paints a two-cell block in the display color for kelvin.
func Swatch(kelvin float64) string {
	hex := colormap.Display(colormap.ColorFor(units.Kelvin(kelvin)))
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// Swatches paints one block per temperature, perRow to a line.
func Swatches(temps []float64, perRow int) string {
	if perRow <= 0 {
		perRow = 16
	}
	var sb strings.Builder
	for i, t := range temps {
		if i > 0 && i%perRow == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Swatch(t))
	}
	return sb.String()
}

// ColorLine describes one temperature: its swatch, hex code and brightness.
func ColorLine(kelvin float64) string {
	k := units.Kelvin(kelvin)
	c := colormap.ColorFor(k)
	return fmt.Sprintf("%s %8.0fK  %s  brightness %.3f",
		Swatch(kelvin), kelvin, colormap.Display(c), colormap.Brightness(k))
}
