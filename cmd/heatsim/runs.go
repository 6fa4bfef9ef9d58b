package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
)

// loadRun opens the configured store and reads one run with its history.
func loadRun(runID string) (*storage.RunMetadata, *storage.Series, error) {
	st, err := openStore(storeConfig())
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(series.Times) == 0 {
		return nil, nil, fmt.Errorf("no samples stored for %s", runID)
	}
	return meta, series, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tWHEN\tTICKS\tPARTICLES\tEXCHANGES\tCONDUCTANCE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Name,
			humanize.Time(run.Timestamp),
			run.Ticks,
			run.Particles,
			humanize.Comma(int64(run.Exchanges)),
			run.Conductance,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("sandbox: %s (seed %d, %s conductance)\n", meta.Name, meta.Seed, meta.Conductance)
	fmt.Printf("samples: %d over %.2fs\n\n", len(series.Times), series.Times[len(series.Times)-1])

	if chart := viz.PlotTemperatures(series.Temperatures, 70, 15); chart != "" {
		fmt.Println(chart)
		fmt.Println()
	}
	if chart := viz.PlotEnergy(series.Energies, 70, 6); chart != "" {
		fmt.Println(chart)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	spreads := analysis.Spreads(series.Temperatures)
	rate := analysis.RelaxationRate(series.Times, series.Temperatures)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("initial spread: %.1fK\n", spreads[0])
	fmt.Printf("final spread:   %.1fK\n", spreads[len(spreads)-1])
	fmt.Printf("energy drift:   %.3e\n", analysis.EnergyDrift(series.Energies))

	if rate > 0 {
		fmt.Printf("relaxation rate: %.4f /s (half-life %.2fs)\n", rate, math.Ln2/rate)
	} else {
		fmt.Println("relaxation rate: n/a")
	}

	for _, f := range []float64{0.5, 0.1, 0.01} {
		if t, ok := analysis.SettleTime(series.Times, series.Temperatures, f); ok {
			fmt.Printf("spread below %4.0f%%: %.2fs\n", f*100, t)
		} else {
			fmt.Printf("spread below %4.0f%%: not reached\n", f*100)
		}
	}

	fmt.Println()
	fmt.Println(viz.Sparkline(spreads, 60))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.JSON(os.Stdout, *meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "energy"}
	for i := range series.Temperatures[0] {
		header = append(header, fmt.Sprintf("t%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Energies[i], 'g', 12, 64),
		}
		for _, val := range series.Temperatures[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.SeriesSVG(series.Times, series.Temperatures, 800, 400)
	if svg == "" {
		return fmt.Errorf("need at least two samples to draw %s", args[0])
	}
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("written to %s\n", args[1])
	return nil
}

func showSwatches(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Println("start:")
	fmt.Println(viz.Swatches(series.Temperatures[0], columns))
	fmt.Println("end:")
	fmt.Println(viz.Swatches(series.Temperatures[len(series.Temperatures)-1], columns))
	return nil
}
