package config

import "sort"

var Presets = map[string]func() *Config{
	"default": Default,
	"moon": func() *Config {
		cfg := Default()
		cfg.Gravity.Y = 80
		cfg.Solver.SleepTime = 1.0
		return cfg
	},
	"heavy": func() *Config {
		cfg := Default()
		cfg.Gravity.Y = 1500
		cfg.Substeps = 8
		cfg.Solver.Iterations = 20
		return cfg
	},
	"wide": func() *Config {
		cfg := Default()
		cfg.Width = 800
		cfg.Height = 400
		cfg.Scale = 1
		return cfg
	},
	"dense": func() *Config {
		cfg := Default()
		cfg.Sprite = "dot"
		cfg.Brush = "DEUT"
		cfg.Solver.Damping = 0.9
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
