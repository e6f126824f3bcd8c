package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/jumptrail/internal/config/loader"
	"github.com/dshills/jumptrail/internal/location"
	"github.com/dshills/jumptrail/internal/logging"
)

// Evaluator names accepted in history.evaluator.
const (
	EvaluatorProximity = "proximity"
	EvaluatorExact     = "exact"
	EvaluatorLua       = "lua"
	EvaluatorNone      = "none"
)

// DefaultProximityLines is the default proximity window in lines.
const DefaultProximityLines = 10

// Config is the complete jumptrail configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// HistoryConfig configures the jump list.
type HistoryConfig struct {
	// Capacity is the maximum number of remembered locations.
	Capacity int `toml:"capacity" yaml:"capacity"`
	// Circular makes browsing wrap around instead of stopping at the ends.
	Circular bool `toml:"circular" yaml:"circular"`
	// Evaluator selects how superseded entries are detected.
	Evaluator string `toml:"evaluator" yaml:"evaluator"`
	// ProximityLines is the window used by the proximity evaluator.
	ProximityLines int `toml:"proximity_lines" yaml:"proximity_lines"`
	// Script is the Lua file used by the lua evaluator.
	Script string `toml:"script" yaml:"script"`
	// WatchScript reloads Script when the file changes.
	WatchScript bool `toml:"watch_script" yaml:"watch_script"`
}

// LoggingConfig configures diagnostic output.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			Capacity:       location.DefaultCapacity,
			Evaluator:      EvaluatorProximity,
			ProximityLines: DefaultProximityLines,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path (may be empty) and the environment.
func Load(path string) (*Config, error) {
	return LoadWith(loader.DefaultFS(), path, loader.NewEnvLoader())
}

// LoadWith layers defaults, the file at path read through fsys, and env.
// An empty path skips the file layer; a nil env skips the environment.
func LoadWith(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		fileCfg, err := loader.ForPath(fsys, path).Load()
		if err != nil {
			return nil, err
		}
		if fileCfg == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	if env != nil {
		envCfg, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envCfg)
	}

	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies the merged settings map on top of cfg.
// The map is re-encoded as TOML so a single strict decoder handles both
// file formats and environment values.
func decode(settings map[string]any, cfg *Config) error {
	data, err := toml.Marshal(dropNil(settings))
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, strings.TrimSpace(missing.String()))
		}
		return fmt.Errorf("decoding settings: %w", err)
	}
	return nil
}

// dropNil removes keys with nil values, such as empty YAML scalars.
func dropNil(m map[string]any) map[string]any {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			dropNil(t)
		}
	}
	return m
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	h := c.History
	if h.Capacity < 1 {
		errs = append(errs, &ValidationError{Path: "history.capacity", Value: h.Capacity, Err: ErrInvalidCapacity})
	}
	switch h.Evaluator {
	case EvaluatorProximity, EvaluatorExact, EvaluatorNone:
	case EvaluatorLua:
		if h.Script == "" {
			errs = append(errs, &ValidationError{Path: "history.script", Value: h.Script, Err: ErrMissingScript})
		}
	default:
		errs = append(errs, &ValidationError{Path: "history.evaluator", Value: h.Evaluator, Err: ErrUnknownEvaluator})
	}
	if h.ProximityLines < 0 || uint64(h.ProximityLines) > math.MaxUint32 {
		errs = append(errs, &ValidationError{Path: "history.proximity_lines", Value: h.ProximityLines, Err: ErrInvalidProximity})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Err: ErrInvalidLogLevel})
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}
