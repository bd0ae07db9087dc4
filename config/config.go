// Package config loads the station configuration file. Flags on the run
// command override anything set here.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/station-sim/station-sim/sim"
	"github.com/station-sim/station-sim/sim/trace"
)

// Config holds every knob of a simulation run.
type Config struct {
	// Catalog is the dispenser catalog file ("id maxQueue product...").
	Catalog string `json:"catalog"`
	// Requests is the customer request stream file ("HH:MM volume product").
	Requests string `json:"requests"`
	// Prices is an optional YAML price table; empty uses the built-in table.
	Prices string `json:"prices"`
	// Seed drives every random draw of the run.
	Seed int64 `json:"seed"`
	// LogLevel is a logrus level name.
	LogLevel string `json:"log_level"`
	// Policy selects the dispenser-selection policy.
	Policy string `json:"policy"`
	// TraceLevel controls decision tracing ("none" or "decisions").
	TraceLevel string `json:"trace_level"`
}

// Load reads a YAML or JSON config file, applies STATION_-prefixed
// environment overrides (STATION_LOG_LEVEL=debug sets log_level), then
// defaults. Validation is the caller's job, after CLI flags have been
// merged in: a file may legitimately omit mandatory fields that arrive
// as flags.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("STATION_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "station_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// Default returns a Config with every optional field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Policy == "" {
		c.Policy = "shortest-queue"
	}
	if c.TraceLevel == "" {
		c.TraceLevel = string(trace.TraceLevelNone)
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	if c.Requests == "" {
		return fmt.Errorf("requests is required")
	}
	if !slices.Contains(sim.GetAvailableSelectionPolicies(), c.Policy) {
		return fmt.Errorf("unknown policy %s, want one of %s", c.Policy, strings.Join(sim.GetAvailableSelectionPolicies(), ", "))
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace level %s", c.TraceLevel)
	}
	return nil
}
