package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/logging"
	"github.com/san-kum/handspin/internal/metrics"
	"github.com/san-kum/handspin/internal/session"
	"github.com/san-kum/handspin/internal/storage"
)

var (
	ErrEmptyScenario = errors.New("automation: scenario has no steps")
	ErrUnknownPreset = errors.New("automation: unknown preset")
	ErrUnknownField  = errors.New("automation: unknown numeric field")
)

// Scenario is a scripted tour through several configurations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one configuration of a tour. Params, a configuration
// string, takes precedence over Preset; with neither the defaults are used.
type ScenarioStep struct {
	Preset      string  `yaml:"preset"`
	Params      string  `yaml:"params"`
	Duration    float64 `yaml:"duration"`
	FPS         int     `yaml:"fps"`
	StartRounds float64 `yaml:"start_rounds"`
	SaveAs      string  `yaml:"save_as"`
}

// StepResult describes a finished step.
type StepResult struct {
	Step    int
	Config  string
	RunID   string
	Frames  int
	Metrics map[string]float64
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
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyScenario)
	}

	return &scenario, nil
}

// ResolveParams returns the parameter set of the step.
func (s ScenarioStep) ResolveParams() (config.Params, error) {
	switch {
	case s.Params != "":
		return config.Decode(s.Params), nil
	case s.Preset != "":
		p, ok := config.GetPreset(s.Preset)
		if !ok {
			return config.Params{}, fmt.Errorf("%q: %w", s.Preset, ErrUnknownPreset)
		}
		return p, nil
	}
	return config.DefaultParams(), nil
}

func (s ScenarioStep) recordConfig() session.RecordConfig {
	cfg := session.DefaultRecordConfig()
	if s.Duration > 0 {
		cfg.Duration = time.Duration(s.Duration * float64(time.Second))
	}
	if s.FPS > 0 {
		cfg.FPS = s.FPS
	}
	return cfg
}

// RunScenario records every step in order. Steps with SaveAs are written to
// st, which may be nil when nothing is saved.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	if scenario == nil || len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		p, err := step.ResolveParams()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := runStep(ctx, p, step.StartRounds, step.recordConfig(), step.SaveAs, st)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Step = i + 1
		results = append(results, res)

		logging.Logger().Info("scenario step done",
			"scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "config", res.Config)
	}

	return results, nil
}

func runStep(ctx context.Context, p config.Params, start float64, cfg session.RecordConfig, saveAs string, st *storage.Store) (StepResult, error) {
	sess := session.New(p)
	defer sess.Close()

	if err := sess.Clock().Set(start); err != nil {
		return StepResult{}, err
	}
	for _, m := range metrics.Default() {
		sess.AddMetric(m)
	}

	rec, err := sess.Record(ctx, cfg)
	if err != nil {
		return StepResult{}, err
	}

	res := StepResult{
		Config:  config.Encode(p),
		Frames:  len(rec.Samples),
		Metrics: rec.Metrics,
	}
	if saveAs != "" && st != nil {
		if res.RunID, err = st.Save(saveAs, rec); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ParameterSweep steps one numeric field of Base through [Min, Max]. A zero
// Record uses the default recording.
type ParameterSweep struct {
	Base     config.Params
	Code     string
	Min, Max float64
	NumSteps int
	Record   session.RecordConfig
}

type SweepResult struct {
	Value   float64
	Config  string
	Metrics map[string]float64
}

// RunSweep records one run per swept value. Values the field rejects, such as
// fractional corner counts, are skipped.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	field, ok := config.LookupField(sweep.Code)
	if !ok || field.Kind != config.KindNumber {
		return nil, fmt.Errorf("%q: %w", sweep.Code, ErrUnknownField)
	}

	steps := sweep.NumSteps
	if steps < 2 {
		steps = 2
	}
	paramStep := (sweep.Max - sweep.Min) / float64(steps-1)
	rc := sweep.Record
	if rc == (session.RecordConfig{}) {
		rc = session.DefaultRecordConfig()
	}

	results := make([]SweepResult, 0, steps)
	for i := 0; i < steps; i++ {
		val := sweep.Min + float64(i)*paramStep
		p, ok := field.Set(sweep.Base, strconv.FormatFloat(val, 'g', -1, 64))
		if !ok {
			logging.Logger().Debug("sweep value rejected", "code", sweep.Code, "value", val)
			continue
		}

		res, err := runStep(ctx, p, 0, rc, "", nil)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{Value: val, Config: res.Config, Metrics: res.Metrics})
	}

	return results, nil
}
