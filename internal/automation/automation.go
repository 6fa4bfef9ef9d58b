package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/sim"
)

// Scenario defines a scripted sequence of sandbox runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the default sandbox) and overrides
// the fields that are set.
type ScenarioStep struct {
	Preset      string  `yaml:"preset"`
	Ticks       int     `yaml:"ticks"`
	Seed        int64   `yaml:"seed"`
	Pairs       int     `yaml:"pairs"`
	Conductance string  `yaml:"conductance"`
	Source      string  `yaml:"source"`
	EventDt     float64 `yaml:"event_dt"`
	SaveAs      string  `yaml:"save_as"`
}

// StepResult is one completed step with the config it ran under.
type StepResult struct {
	Step   int
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the sandbox configuration for the step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Pairs > 0 {
		cfg.PairsPerTick = s.Pairs
	}
	if s.Conductance != "" {
		cfg.Contact.Conductance = s.Conductance
	}
	if s.Source != "" {
		cfg.Source = s.Source
	}
	if s.EventDt > 0 {
		cfg.EventDt = s.EventDt
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}

	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. On failure it returns the steps
// completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *logrus.Entry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		stepLog := log.WithFields(logrus.Fields{"scenario": scenario.Name, "step": i + 1})
		stepLog.WithField("sandbox", cfg.Name).Info("running step")

		exp := experiment.New(cfg, stepLog)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: i + 1, Config: cfg, Result: result})
	}

	return results, nil
}
