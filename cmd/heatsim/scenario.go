package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/automation"
	"github.com/san-kum/heatsim/internal/experiment"
)

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	cfg := storeConfig()
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, runErr := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), log)
	for _, r := range results {
		runID, err := st.Save(metadataFor(r.Config, r.Config.TotalParticles()), r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("step %d/%d: %s  %s exchanges  run %s\n",
			r.Step, len(scenario.Steps), r.Config.Name,
			humanize.Comma(int64(r.Result.Totals.Applied)), runID)
	}
	return runErr
}
