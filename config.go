package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the chart's tunables. All fields are optional; zero values
// fall back to defaults.
type Config struct {
	// AnimationMs is the duration of a view transition animation.
	AnimationMs int `yaml:"animation_ms"`
	// TickSpacingDp is the target distance between axis ticks.
	TickSpacingDp int `yaml:"tick_spacing_dp"`
	// PointRadiusDp is the radius of the point markers.
	PointRadiusDp int `yaml:"point_radius_dp"`
	// LineWidthDp is the stroke width of the series lines.
	LineWidthDp int `yaml:"line_width_dp"`
}

func defaultConfig() Config {
	return Config{
		AnimationMs:   300,
		TickSpacingDp: 30,
		PointRadiusDp: 3,
		LineWidthDp:   2,
	}
}

// loadConfig reads the YAML config at path, if there is one. A missing
// file is not an error; a malformed one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("failed reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed parsing config %q: %w", path, err)
	}
	if cfg.AnimationMs < 0 {
		cfg.AnimationMs = 0
	}
	return cfg, nil
}

func (c Config) animation() time.Duration {
	return time.Duration(c.AnimationMs) * time.Millisecond
}
