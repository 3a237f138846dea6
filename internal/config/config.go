package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbsim/internal/classifier"
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/compute"
	"github.com/san-kum/orbsim/internal/sampler"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPoints = sampler.DefaultCount
	DefaultWidth  = sampler.DefaultCubeWidth
	DefaultSeed   = 1
	DefaultFPS    = 30
	DefaultTheme  = "orbital"

	ClockElapsed = "elapsed"
	ClockEpoch   = "epoch"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Simulation cloud.Params    `yaml:"simulation"`
	Sampling   SamplingConfig  `yaml:"sampling"`
	Animation  AnimationConfig `yaml:"animation"`
	Compute    ComputeConfig   `yaml:"compute"`
	View       ViewConfig      `yaml:"view"`
}

type SamplingConfig struct {
	Points    uint32  `yaml:"points"`
	CubeWidth float32 `yaml:"cube_width"`
	Seed      int64   `yaml:"seed"`
}

type AnimationConfig struct {
	SpeedScale float64 `yaml:"speed_scale"`
	Clock      string  `yaml:"clock"`
	Formula    string  `yaml:"formula"`
}

type ComputeConfig struct {
	Workers  int  `yaml:"workers"`
	FastTrig bool `yaml:"fast_trig"`
}

type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	Axes  bool   `yaml:"axes"`
	Grid  bool   `yaml:"grid"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: cloud.DefaultParams(),
		Sampling: SamplingConfig{
			Points:    DefaultPoints,
			CubeWidth: DefaultWidth,
			Seed:      DefaultSeed,
		},
		Animation: AnimationConfig{
			SpeedScale: classifier.DefaultSpeedScale,
			Clock:      ClockElapsed,
			Formula:    compute.FormulaInterference.String(),
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
			Axes:  true,
			Grid:  true,
		},
	}
}

// Load reads a YAML file over the defaults, then clamps the tunables and
// validates the rest.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := coupleProportions(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// coupleProportions keeps n + m = 1 for files that set only one proportion and
// rejects files that set both inconsistently.
func coupleProportions(data []byte, cfg *Config) error {
	var set struct {
		Simulation struct {
			N *float32 `yaml:"n_proportion"`
			M *float32 `yaml:"m_proportion"`
		} `yaml:"simulation"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return err
	}
	n, m := set.Simulation.N, set.Simulation.M
	switch {
	case n != nil && m != nil:
		if math.Abs(float64(*n+*m-1)) > 1e-3 {
			return fmt.Errorf("%w: simulation.n_proportion (%v) and m_proportion (%v) must sum to 1", ErrInvalidConfig, *n, *m)
		}
	case m != nil:
		cfg.Simulation.SetMProportion(*m)
	}
	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize clamps user tunables into range and derives m = 1 - n. It never
// fails.
func (c *Config) Normalize() {
	c.Simulation.Clamp()
	c.Simulation.SetNProportion(c.Simulation.NProportion)
	if c.View.FPS <= 0 {
		c.View.FPS = DefaultFPS
	}
	if c.View.FPS > 240 {
		c.View.FPS = 240
	}
	if c.View.Theme == "" {
		c.View.Theme = DefaultTheme
	}
	if c.Animation.Clock == "" {
		c.Animation.Clock = ClockElapsed
	}
}

// Validate reports structural problems that clamping cannot repair.
func (c *Config) Validate() error {
	if c.Sampling.Points == 0 {
		return fmt.Errorf("%w: sampling.points must be positive", ErrInvalidConfig)
	}
	w := float64(c.Sampling.CubeWidth)
	if !(w > 0) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: sampling.cube_width must be positive, got %v", ErrInvalidConfig, c.Sampling.CubeWidth)
	}
	if c.Animation.SpeedScale < 0 || math.IsNaN(c.Animation.SpeedScale) || math.IsInf(c.Animation.SpeedScale, 0) {
		return fmt.Errorf("%w: animation.speed_scale must be finite and non-negative", ErrInvalidConfig)
	}
	switch c.Animation.Clock {
	case ClockElapsed, ClockEpoch:
	default:
		return fmt.Errorf("%w: animation.clock must be %q or %q, got %q", ErrInvalidConfig, ClockElapsed, ClockEpoch, c.Animation.Clock)
	}
	if _, err := compute.ParseFormula(c.Animation.Formula); err != nil {
		return fmt.Errorf("%w: animation.formula: %v", ErrInvalidConfig, err)
	}
	if c.Compute.Workers < 0 {
		return fmt.Errorf("%w: compute.workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Formula returns the parsed formula. Call after Validate.
func (c *Config) Formula() compute.Formula {
	f, _ := compute.ParseFormula(c.Animation.Formula)
	return f
}

// Backend builds the classification backend described by the compute section.
func (c *Config) Backend() compute.Backend {
	if c.Compute.FastTrig {
		return compute.NewCPUBackend(c.Compute.Workers).WithTrigTable(compute.NewTrigTable(compute.DefaultTableSize))
	}
	return compute.AutoSelect(c.Compute.Workers)
}
