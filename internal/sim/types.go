package sim

import (
	"fmt"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/particle"
)

// CollisionSource stands in for the physics layer: it reports the collision
// pairs that started during a tick.
type CollisionSource interface {
	Next(tick int, w *particle.World) []bridge.Event
}

// Snapshot is the world as seen at the end of a tick.
type Snapshot struct {
	Tick         int
	Time         float64
	Energy       float64
	Temperatures []float64
	Stats        bridge.Stats
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Snapshot)
}

type Config struct {
	Ticks       int
	TickRate    float64
	SampleEvery int
	Seed        int64
}

func DefaultConfig() Config {
	return Config{
		Ticks:       1440,
		TickRate:    144,
		SampleEvery: 12,
	}
}

type Result struct {
	Times        []float64
	Temperatures [][]float64
	Energies     []float64
	Metrics      map[string]float64
	TicksTaken   int
	Totals       bridge.Stats
}

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
