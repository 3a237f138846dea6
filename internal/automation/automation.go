package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/sim"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Scenario scripts a sequence of tunable changes over one session
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep applies the set tunables, then runs Frames frames of Dt.
// Unset tunables keep their previous value.
type ScenarioStep struct {
	Frames      int      `yaml:"frames"`
	Dt          float64  `yaml:"dt"`
	Threshold   *float32 `yaml:"threshold"`
	Speed       *float32 `yaml:"speed"`
	NProportion *float32 `yaml:"n_proportion"`
}

type StepResult struct {
	Step    int
	Params  cloud.Params
	Phase   float64
	Summary analysis.Summary
	Skipped int
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

// RunScenario executes all steps in order against session
func RunScenario(ctx context.Context, scenario *Scenario, session *sim.Session, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		params := session.UpdateParams(func(p *cloud.Params) {
			if step.Threshold != nil {
				p.SetThreshold(*step.Threshold)
			}
			if step.Speed != nil {
				p.SetSpeed(*step.Speed)
			}
			if step.NProportion != nil {
				p.SetNProportion(*step.NProportion)
			}
		})

		logger.Info("scenario step",
			slog.Int("step", i+1),
			slog.Int("of", len(scenario.Steps)),
			slog.Int("frames", step.Frames),
			slog.Float64("threshold", float64(params.Threshold)),
			slog.Float64("speed", float64(params.Speed)))

		result, err := session.Run(ctx, sim.RunConfig{Frames: step.Frames, Dt: step.Dt})
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{
			Step:    i + 1,
			Params:  params,
			Phase:   session.Phase(),
			Summary: analysis.Summarize(analysis.IntsToFloats(result.VisibleCounts)),
			Skipped: len(result.Errors),
		})
	}

	return results, nil
}

// TrialConfig repeats the same run over several sampling seeds.
// Parallel bounds how many trials run at once; zero means one at a time.
type TrialConfig struct {
	NumTrials int
	BaseSeed  int64
	Frames    int
	Dt        float64
	Parallel  int
}

type TrialResult struct {
	TrialID         int
	Seed            int64
	VisibleFraction float64
	LobeAFraction   float64
}

// SessionFactory builds a fresh session for one sampling seed.
type SessionFactory func(seed int64) (*sim.Session, error)

// RunTrials checks how much the visible fraction depends on the random
// draw. Trial i uses seed BaseSeed+i and results come back in trial order.
func RunTrials(ctx context.Context, cfg TrialConfig, build SessionFactory) ([]TrialResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	results := make([]TrialResult, cfg.NumTrials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))
	for trial := 0; trial < cfg.NumTrials; trial++ {
		g.Go(func() error {
			r, err := runTrial(gctx, cfg, trial, build)
			if err != nil {
				return fmt.Errorf("trial %d: %w", trial, err)
			}
			results[trial] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runTrial(ctx context.Context, cfg TrialConfig, trial int, build SessionFactory) (TrialResult, error) {
	seed := cfg.BaseSeed + int64(trial)
	session, err := build(seed)
	if err != nil {
		return TrialResult{}, err
	}

	result, err := session.Run(ctx, sim.RunConfig{Frames: cfg.Frames, Dt: cfg.Dt})
	if err != nil {
		return TrialResult{}, err
	}

	n := float64(session.Samples().Len())
	visible, lobeA := 0.0, 0.0
	for i := range result.VisibleCounts {
		visible += float64(result.VisibleCounts[i])
		lobeA += float64(result.LobeACounts[i])
	}
	frames := float64(max(len(result.VisibleCounts), 1))

	r := TrialResult{TrialID: trial, Seed: seed, VisibleFraction: visible / frames / n}
	if visible > 0 {
		r.LobeAFraction = lobeA / visible
	}
	return r, nil
}

// TrialSpread summarizes the visible fraction across trials.
func TrialSpread(results []TrialResult) analysis.Summary {
	fractions := make([]float64, len(results))
	for i, r := range results {
		fractions[i] = r.VisibleFraction
	}
	return analysis.Summarize(fractions)
}
