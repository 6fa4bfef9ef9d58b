package particle

import (
	"math"

	"github.com/san-kum/heatsim/internal/units"
)

// SphereVolume is the volume of a ball of diameter d; disks are treated as
// spheres of the same diameter.
func SphereVolume(d units.Meters) units.CubicMeters {
	x := float64(d)
	return units.CubicMeters(x * x * x * math.Pi / 6)
}

func CubeVolume(side units.Meters) units.CubicMeters {
	x := float64(side)
	return units.CubicMeters(x * x * x)
}
