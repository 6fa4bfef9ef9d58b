package material

import (
	"errors"
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidMaterial = errors.New("material: constants must be finite and positive")

type Kind int

const (
	Aluminium Kind = iota
	Copper
	Iron
)

var kindNames = map[Kind]string{
	Aluminium: "aluminium",
	Copper:    "copper",
	Iron:      "iron",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists the preset kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Aluminium, Copper, Iron}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aluminium", "aluminum", "al":
		return Aluminium, nil
	case "copper", "cu":
		return Copper, nil
	case "iron", "fe":
		return Iron, nil
	}
	return 0, fmt.Errorf("unknown material: %q", s)
}

// Material holds the physical constants of a particle's substance. Values are
// in SI units: W/(m·K), J/(kg·K) and kg/m³.
type Material struct {
	kind         Kind
	conductivity float64
	specificHeat float64
	density      float64
	baseColor    colorful.Color
}

func New(kind Kind, conductivity, specificHeat, density float64, base colorful.Color) (Material, error) {
	for _, v := range []float64{conductivity, specificHeat, density} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return Material{}, fmt.Errorf("%w: %s k=%g c=%g rho=%g", ErrInvalidMaterial, kind, conductivity, specificHeat, density)
		}
	}
	return Material{
		kind:         kind,
		conductivity: conductivity,
		specificHeat: specificHeat,
		density:      density,
		baseColor:    base,
	}, nil
}

func (m Material) Kind() Kind                { return m.kind }
func (m Material) Conductivity() float64     { return m.conductivity }
func (m Material) SpecificHeat() float64     { return m.specificHeat }
func (m Material) Density() float64          { return m.density }
func (m Material) BaseColor() colorful.Color { return m.baseColor }

func (m Material) String() string {
	return fmt.Sprintf("%s(k=%g, c=%g, rho=%g)", m.kind, m.conductivity, m.specificHeat, m.density)
}
