// Package automation runs scripted sequences of headless simulations.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/sim"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single run. Preset and Params are mutually exclusive; Params
// holds raw values in form order and goes through the same input rules as
// the form.
type Step struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Params [4]string `yaml:"params"`
	Ticks  int       `yaml:"ticks"`
	Save   bool      `yaml:"save"`
}

type StepResult struct {
	Step   Step
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &scenario, nil
}

func (s Step) values() ([4]string, error) {
	if s.Preset == "" {
		return s.Params, nil
	}
	if s.Params != [4]string{} {
		return [4]string{}, errors.New("preset and params are mutually exclusive")
	}
	p, ok := config.GetPreset(s.Preset)
	if !ok {
		return [4]string{}, fmt.Errorf("unknown preset %q", s.Preset)
	}
	return p.Values, nil
}

// RunScenario executes the steps in order and stops at the first step that
// fails validation or is canceled.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config, log logrus.FieldLogger) ([]StepResult, error) {
	validator := params.NewValidator(cfg.Limits())
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		raw, err := step.values()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		set, err := validator.Validate(raw[0], raw[1], raw[2], raw[3])
		if err != nil {
			return results, fmt.Errorf("step %d: %s: %w", i+1, params.Message(err), err)
		}

		n := step.Ticks
		if n <= 0 {
			n = cfg.Ticks
		}

		log.WithFields(logrus.Fields{
			"step":  fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)),
			"name":  step.Name,
			"ticks": n,
		}).Info("running step")

		runner := sim.New()
		for _, m := range metrics.Default() {
			runner.AddMetric(m)
		}
		result, err := runner.Run(ctx, physics.New(set, cfg.Layout()), sim.Config{Ticks: n, Record: step.Save})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		for _, e := range result.Errors {
			log.WithError(e).WithField("step", i+1).Warn("degenerate state")
		}

		results = append(results, StepResult{Step: step, Result: result})
	}

	return results, nil
}
