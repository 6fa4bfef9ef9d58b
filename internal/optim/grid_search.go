package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
)

// Point is one evaluated grid cell.
type Point struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination of the grid and returns the cell with the
// smallest metricName along with all evaluated cells.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("grid has %d names but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Point{Value: math.Inf(1)}
	var all []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &all)
	if err != nil {
		return Point{}, all, err
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *Point,
	all *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("metric %q not reported", metricName)
		}

		p := Point{Params: make(map[string]float64, len(current)), Value: val}
		for k, v := range current {
			p.Params[k] = v
		}
		*all = append(*all, p)
		if val < best.Value {
			*best = p
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, best, all); err != nil {
			return err
		}
	}
	return nil
}

var knobs = map[string]func(cfg *config.Config, v float64){
	"pairs":     func(cfg *config.Config, v float64) { cfg.PairsPerTick = int(v) },
	"area":      func(cfg *config.Config, v float64) { cfg.Contact.AreaMM2 = v },
	"thickness": func(cfg *config.Config, v float64) { cfg.Contact.ThicknessMM = v },
	"event_dt":  func(cfg *config.Config, v float64) { cfg.EventDt = v },
	"ticks":     func(cfg *config.Config, v float64) { cfg.Ticks = int(v) },
}

// Apply sets the sandbox knob called name on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	fn, ok := knobs[name]
	if !ok {
		return fmt.Errorf("unknown sweep parameter: %s (available: %v)", name, Knobs())
	}
	fn(cfg, v)
	return nil
}

func Knobs() []string {
	names := make([]string, 0, len(knobs))
	for name := range knobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
