package config

import "sort"

// Presets override parts of DefaultConfig. GetPreset applies one.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.Sampling.Points = 1200000
		c.Simulation.Threshold = 0.3
	},
	"sparse": func(c *Config) {
		c.Sampling.Points = 100000
		c.Simulation.Threshold = 0.1
	},
	"lively": func(c *Config) {
		c.Animation.SpeedScale = 2.0
		c.Simulation.Speed = 0.5
	},
	"legacy": func(c *Config) {
		c.Animation.Clock = ClockEpoch
	},
	"mixed": func(c *Config) {
		c.Animation.Formula = "mixed"
		c.Animation.SpeedScale = 2.0
		c.Simulation.Threshold = 0.2
	},
	"fast": func(c *Config) {
		c.Compute.FastTrig = true
		c.Animation.SpeedScale = 2.0
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	cfg.Normalize()
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
