package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	dataDir     string
	storeKind   string
	logLevel    string
	logFormat   string
	configFile  string
	preset      string
	ticks       int
	seed        int64
	pairs       int
	conductance string
	source      string
	svgPath     string
	runs        int
	columns     int
	sweepParams []string
	sweepMetric string
)

// main registers the heatsim commands and executes the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "heatsim",
		Short:        "thermal exchange sandbox",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config, then .heatsim)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a sandbox and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSandbox,
	}
	addSandboxFlags(runCmd)
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write a snapshot of the final world to this svg file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a sandbox with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSandboxFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run several seeds of a sandbox in parallel",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addSandboxFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 4, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search sandbox parameters against a metric",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSandboxFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter grid as name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "temperature_spread", "metric to minimize")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario and store each result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run temperatures and energy",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run temperatures to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "draw run temperature histories as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "relaxation analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list material presets",
		Args:  cobra.NoArgs,
		RunE:  listMaterials,
	}

	colorCmd := &cobra.Command{
		Use:   "color [kelvin]...",
		Short: "show the display color for temperatures",
		Args:  cobra.MinimumNArgs(1),
		RunE:  showColors,
	}

	swatchCmd := &cobra.Command{
		Use:   "swatches [run_id]",
		Short: "show particle colors at the start and end of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showSwatches,
	}
	swatchCmd.Flags().IntVar(&columns, "columns", 16, "swatches per row")

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, sweepCmd, scenarioCmd, listCmd, plotCmd, analyzeCmd, exportCmd,
		exportCSVCmd, exportSVGCmd, presetsCmd, materialsCmd, colorCmd, swatchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSandboxFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to simulate")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&pairs, "pairs", 0, "collision pairs per tick")
	cmd.Flags().StringVar(&conductance, "conductance", "", "conductance mode: source or harmonic")
	cmd.Flags().StringVar(&source, "source", "", "collision source: random or ring")
}
