package loader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix shared by all jumptrail environment variables.
const EnvPrefix = "JUMPTRAIL_"

// ErrInvalidEnvValue is returned when a variable cannot be converted to
// the kind of the setting it fills.
var ErrInvalidEnvValue = errors.New("invalid environment value")

// Kind is the value type of a setting filled from the environment.
type Kind int

const (
	// KindString keeps the raw value.
	KindString Kind = iota
	// KindInt parses a base-10 integer.
	KindInt
	// KindBool parses true/false, 1/0, yes/no or on/off.
	KindBool
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	mapping map[string]string // env var -> setting path
	kinds   map[string]Kind   // setting path -> kind; missing means string
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader using the default variable mapping.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
		kinds:   DefaultSettingKinds(),
		lookup:  os.LookupEnv,
	}
}

// DefaultSettingKinds returns the kinds of the non-string settings.
func DefaultSettingKinds() map[string]Kind {
	return map[string]Kind{
		"history.capacity":        KindInt,
		"history.proximity_lines": KindInt,
		"history.circular":        KindBool,
		"history.watch_script":    KindBool,
	}
}

// DefaultEnvMapping returns the environment variables jumptrail reads.
func DefaultEnvMapping() map[string]string {
	return map[string]string{
		EnvPrefix + "CAPACITY":  "history.capacity",
		EnvPrefix + "CIRCULAR":  "history.circular",
		EnvPrefix + "EVALUATOR": "history.evaluator",
		EnvPrefix + "PROXIMITY": "history.proximity_lines",
		EnvPrefix + "SCRIPT":    "history.script",
		EnvPrefix + "WATCH":     "history.watch_script",
		EnvPrefix + "LOG_LEVEL": "logging.level",
	}
}

// AddMapping adds a custom environment variable mapping. The value is
// parsed with the kind registered for path, or kept as a string.
func (l *EnvLoader) AddMapping(envVar, path string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = path
}

// SetKind sets how values for the setting at path are parsed.
func (l *EnvLoader) SetKind(path string, kind Kind) {
	if l.kinds == nil {
		l.kinds = make(map[string]Kind)
	}
	l.kinds[path] = kind
}

// Load reads the mapped variables that are set.
// Empty values are kept; they are not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		val, ok := l.lookup(env)
		if !ok {
			continue
		}
		v, err := parseValue(val, l.kinds[path])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", env, err)
		}
		setByPath(config, path, v)
	}
	return config, nil
}

// parseValue converts an environment string to the given kind.
func parseValue(s string, kind Kind) (any, error) {
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidEnvValue, s)
		}
		return i, nil
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidEnvValue, s)
		}
		return b, nil
	default:
		return s, nil
	}
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
