package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/sim"
)

type sourceFactory func(seed int64, perTick int) sim.CollisionSource

type Registry struct {
	sources map[string]sourceFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		sources: make(map[string]sourceFactory),
	}

	r.sources["random"] = func(seed int64, n int) sim.CollisionSource { return sim.NewRandomPairs(seed, n) }
	r.sources["ring"] = func(seed int64, n int) sim.CollisionSource { return NewRing(n) }

	return r
}

func (r *Registry) GetSource(name string, seed int64, perTick int) (sim.CollisionSource, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown collision source: %s", name)
	}
	return fn(seed, perTick), nil
}

func (r *Registry) ListSources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Defaults()
}
