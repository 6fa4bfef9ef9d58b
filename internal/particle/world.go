// Package particle keeps the arena of particle records the collision bridge
// works on. Records are addressed by generation-checked handles, so a handle
// to a despawned particle never aliases a later spawn in the same slot.
package particle

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/heatsim/internal/colormap"
	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/thermal"
	"github.com/san-kum/heatsim/internal/units"
)

type Handle struct {
	index uint32
	gen   uint32
}

// Nil is the zero handle; it never resolves.
var Nil Handle

func (h Handle) String() string {
	return fmt.Sprintf("p%d.%d", h.index, h.gen)
}

// Particle is one arena record. Body is nil for colliders that take part in
// collisions but carry no heat (walls, floors).
type Particle struct {
	Body  *thermal.Body
	Color colorful.Color
}

type slot struct {
	gen   uint32
	alive bool
	dense int
	p     Particle
}

// World is not safe for concurrent use.
type World struct {
	slots []slot
	free  []uint32
	live  []Handle
}

func NewWorld() *World {
	return &World{
		slots: make([]slot, 0, 64),
		live:  make([]Handle, 0, 64),
	}
}

// Spawn creates a thermal particle at temperature t and returns its handle
// and initial color.
func (w *World) Spawn(t units.Kelvin, v units.CubicMeters, kind material.Kind) (Handle, colorful.Color, error) {
	body, err := thermal.FromTemperature(t, v, material.Preset(kind))
	if err != nil {
		return Nil, colorful.Color{}, err
	}
	c := colormap.ColorFor(body.Temperature())
	return w.insert(Particle{Body: body, Color: c}), c, nil
}

// SpawnInert creates a collider with no heat state.
func (w *World) SpawnInert(c colorful.Color) Handle {
	return w.insert(Particle{Color: c})
}

func (w *World) insert(p Particle) Handle {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		// generation starts at 1 so the zero Handle is never live
		w.slots = append(w.slots, slot{gen: 1})
	}

	s := &w.slots[idx]
	s.alive = true
	s.p = p
	s.dense = len(w.live)

	h := Handle{index: idx, gen: s.gen}
	w.live = append(w.live, h)
	return h
}

func (w *World) slot(h Handle) (*slot, bool) {
	if int(h.index) >= len(w.slots) {
		return nil, false
	}
	s := &w.slots[h.index]
	if !s.alive || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

// Get returns the record for h. The pointer stays valid until h is despawned.
func (w *World) Get(h Handle) (*Particle, bool) {
	s, ok := w.slot(h)
	if !ok {
		return nil, false
	}
	return &s.p, true
}

// Body returns the heat state of h, or false for stale handles and inert
// colliders.
func (w *World) Body(h Handle) (*thermal.Body, bool) {
	p, ok := w.Get(h)
	if !ok || p.Body == nil {
		return nil, false
	}
	return p.Body, true
}

func (w *World) Despawn(h Handle) bool {
	s, ok := w.slot(h)
	if !ok {
		return false
	}

	last := len(w.live) - 1
	moved := w.live[last]
	w.live[s.dense] = moved
	w.slots[moved.index].dense = s.dense
	w.live = w.live[:last]

	s.alive = false
	s.gen++
	s.p = Particle{}
	w.free = append(w.free, h.index)
	return true
}

// SetColor overwrites the render attribute of h.
func (w *World) SetColor(h Handle, c colorful.Color) {
	if p, ok := w.Get(h); ok {
		p.Color = c
	}
}

func (w *World) Color(h Handle) (colorful.Color, bool) {
	p, ok := w.Get(h)
	if !ok {
		return colorful.Color{}, false
	}
	return p.Color, true
}

func (w *World) Len() int { return len(w.live) }

// Handles returns a copy of the live handles.
func (w *World) Handles() []Handle {
	out := make([]Handle, len(w.live))
	copy(out, w.live)
	return out
}

// Thermal returns the live handles that carry a heat state.
func (w *World) Thermal() []Handle {
	out := make([]Handle, 0, len(w.live))
	for _, h := range w.live {
		if w.slots[h.index].p.Body != nil {
			out = append(out, h)
		}
	}
	return out
}

// TotalEnergy sums the stored energy of every thermal particle.
func (w *World) TotalEnergy() units.Joules {
	var sum units.Joules
	for _, h := range w.live {
		if b := w.slots[h.index].p.Body; b != nil {
			sum += b.Energy()
		}
	}
	return sum
}

// Temperatures lists thermal particle temperatures in [World.Thermal] order.
func (w *World) Temperatures() []float64 {
	out := make([]float64, 0, len(w.live))
	for _, h := range w.live {
		if b := w.slots[h.index].p.Body; b != nil {
			out = append(out, float64(b.Temperature()))
		}
	}
	return out
}
