package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/logging"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
)

// resolveConfig layers the preset, then the config file, then explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("pairs") {
		cfg.PairsPerTick = pairs
	}
	if flags.Changed("conductance") {
		cfg.Contact.Conductance = conductance
	}
	if flags.Changed("source") {
		cfg.Source = source
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	applyPersistent(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyPersistent(cfg *config.Config) {
	if dataDir != "" {
		cfg.Storage.Dir = dataDir
	}
	if storeKind != "" {
		cfg.Storage.Backend = storeKind
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
}

// storeConfig is the storage view for commands that take no sandbox flags.
func storeConfig() *config.Config {
	cfg := config.DefaultConfig()
	applyPersistent(cfg)
	return cfg
}

func openStore(cfg *config.Config) (storage.Store, error) {
	st, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func newLogger(cfg *config.Config, out io.Writer) (*logrus.Entry, error) {
	l, err := logging.NewWithOutput(out, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return l.WithField("sandbox", cfg.Name), nil
}

func metadataFor(cfg *config.Config, particles int) storage.RunMetadata {
	return storage.RunMetadata{
		Name:        cfg.Name,
		Seed:        cfg.Seed,
		Ticks:       cfg.Ticks,
		TickRate:    cfg.TickRate,
		EventDt:     cfg.EventDt,
		Source:      cfg.Source,
		Conductance: cfg.Contact.Conductance,
		Particles:   particles,
	}
}

func runSandbox(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	before := exp.World().Temperatures()
	fmt.Printf("running %s sandbox...\n", cfg.Name)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(metadataFor(cfg, len(before)), result)
	if err != nil {
		return err
	}
	log.WithField("run", runID).Info("run stored")

	energy := result.Energies[len(result.Energies)-1]
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Printf("exchanges: %d (%d clamped, %d self pairs ignored)\n",
		result.Totals.Applied, result.Totals.Clamped, result.Totals.SelfPairs)
	fmt.Printf("heat moved: %s\n", humanize.SIWithDigits(float64(result.Totals.Moved), 4, "J"))
	fmt.Printf("stored energy: %s\n", humanize.SIWithDigits(energy, 6, "J"))

	fmt.Println("\nbefore:")
	fmt.Println(viz.Swatches(before, 16))
	fmt.Println("after:")
	fmt.Println(viz.Swatches(exp.World().Temperatures(), 16))

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.SnapshotSVG(exp.World(), 8)), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsnapshot written to %s\n", svgPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// Logs are discarded while the alternate screen is active.
	log, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	return viz.RunLive(exp.GetSimulator(), exp.SimConfig(), cfg.Name)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	build := func(s int64) (*sim.Simulator, error) {
		c := *cfg
		c.Seed = s
		exp := experiment.New(&c, log.WithField("seed", s))
		if err := exp.Setup(registry); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}

	simCfg := sim.Config{Ticks: cfg.Ticks, TickRate: cfg.TickRate, SampleEvery: cfg.SampleEvery}

	fmt.Printf("benchmarking %s over %d seeds\n\n", cfg.Name, runs)
	start := time.Now()
	results, err := sim.NewEnsemble(build, runs, cfg.Seed).Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tEXCHANGES\tCLAMPED\tSPREAD\tDRIFT")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.1fK\t%.2e\n",
			cfg.Seed+int64(i),
			r.Totals.Applied,
			r.Totals.Clamped,
			r.Metrics["temperature_spread"],
			r.Metrics["energy_drift"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total := cfg.Ticks * runs
	fmt.Printf("\n%s ticks in %v (%.0f ticks/sec)\n", humanize.Comma(int64(total)), elapsed, float64(total)/elapsed.Seconds())
	return nil
}
