package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/optim"
)

// parseGrid turns name=v1,v2 specs into parallel name and value slices.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid value in --param %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required (available: %v)", optim.Knobs())
	}
	names, ranges, err := parseGrid(sweepParams)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		c := *cfg
		for name, v := range params {
			if err := optim.Apply(&c, name, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(&c, log.WithFields(toFields(params)))
		if err := exp.Setup(registry); err != nil {
			return nil, err
		}
		return exp, nil
	}

	best, all, err := optim.NewGridSearch(names, ranges).Search(context.Background(), build, sweepMetric)
	if err != nil {
		return err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Value < all[j].Value })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, p := range all {
		cells := make([]string, 0, len(names)+1)
		for _, name := range names {
			cells = append(cells, strconv.FormatFloat(p.Params[name], 'g', 6, 64))
		}
		cells = append(cells, strconv.FormatFloat(p.Value, 'g', 6, 64))
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v (%s = %.6g)\n", best.Params, sweepMetric, best.Value)
	return nil
}

func toFields(params map[string]float64) logrus.Fields {
	fields := make(logrus.Fields, len(params))
	for k, v := range params {
		fields[k] = v
	}
	return fields
}
