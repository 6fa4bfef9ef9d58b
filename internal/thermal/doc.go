// Package thermal implements per-particle heat storage and contact conduction.
//
// The package provides two pieces:
//
//   - [Body]: a particle's stored energy, fixed volume and owned material
//   - [Conductor]: a one-step conduction update between two bodies
//
// A conduction step is first order. Instead of an implicit solver, each step
// is clamped so that neither body is pushed past the midpoint temperature of
// the pair, which keeps the exchange stable for any step size, contact
// conductance or heat capacity.
//
// # Example
//
//	a, _ := thermal.FromTemperature(1000, v, material.Preset(material.Copper))
//	b, _ := thermal.FromTemperature(0, v, material.Preset(material.Copper))
//	ex := thermal.NewConductor(thermal.DefaultContact(), thermal.SourceConductivity).
//		Transfer(a, b, time.Second/144)
//
// # Thread Safety
//
// Bodies are plain values with no locking. Callers must not run two
// transfers touching the same body at once.
package thermal
