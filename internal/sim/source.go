package sim

import (
	"math/rand"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/particle"
)

// RandomPairs reports n distinct-member pairs per tick drawn uniformly from
// every live record, inert colliders included. One particle may appear in
// several pairs of the same batch.
type RandomPairs struct {
	rng *rand.Rand
	n   int
}

func NewRandomPairs(seed int64, perTick int) *RandomPairs {
	return &RandomPairs{rng: rand.New(rand.NewSource(seed)), n: perTick}
}

func (r *RandomPairs) Next(tick int, w *particle.World) []bridge.Event {
	handles := w.Handles()
	if len(handles) < 2 {
		return nil
	}

	batch := make([]bridge.Event, 0, r.n)
	for i := 0; i < r.n; i++ {
		a := r.rng.Intn(len(handles))
		b := r.rng.Intn(len(handles) - 1)
		if b >= a {
			b++
		}
		batch = append(batch, bridge.Event{A: handles[a], B: handles[b]})
	}
	return batch
}

// Script replays fixed batches; ticks past the end report no collisions.
type Script struct {
	batches [][]bridge.Event
}

func NewScript(batches ...[]bridge.Event) *Script {
	return &Script{batches: batches}
}

func (s *Script) Next(tick int, w *particle.World) []bridge.Event {
	if tick < 1 || tick > len(s.batches) {
		return nil
	}
	return s.batches[tick-1]
}
