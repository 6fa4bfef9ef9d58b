package experiment

import (
	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/particle"
)

// Ring touches neighbours along the spawn order, n pairs per tick, walking
// around the ring so every neighbour pair recurs.
type Ring struct {
	n      int
	offset int
}

func NewRing(perTick int) *Ring {
	return &Ring{n: perTick}
}

func (r *Ring) Next(tick int, w *particle.World) []bridge.Event {
	hs := w.Handles()
	if len(hs) < 2 {
		return nil
	}

	batch := make([]bridge.Event, 0, r.n)
	for i := 0; i < r.n; i++ {
		k := (r.offset + i) % len(hs)
		batch = append(batch, bridge.Event{A: hs[k], B: hs[(k+1)%len(hs)]})
	}
	r.offset = (r.offset + r.n) % len(hs)
	return batch
}
