package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("JUMPTRAIL_CAPACITY", "25")
	t.Setenv("JUMPTRAIL_CIRCULAR", "yes")
	t.Setenv("JUMPTRAIL_LOG_LEVEL", "debug")
	t.Setenv("JUMPTRAIL_SCRIPT", "")

	config, err := NewEnvLoader().Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := getByPath(config, "history.capacity"); v != int64(25) {
		t.Errorf("history.capacity = %v (%T), want 25", v, v)
	}
	if v, _ := getByPath(config, "history.circular"); v != true {
		t.Errorf("history.circular = %v, want true", v)
	}
	if v, _ := getByPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if v, ok := getByPath(config, "history.script"); !ok || v != "" {
		t.Errorf("history.script = %v, %v; want empty string", v, ok)
	}
	if _, ok := getByPath(config, "history.evaluator"); ok {
		t.Error("unset variable should not appear")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	t.Setenv("MY_CAP", "4")

	l := NewEnvLoaderWithMapping(nil)
	l.AddMapping("MY_CAP", "history.capacity")

	config, _ := l.Load()
	if v, _ := getByPath(config, "history.capacity"); v != int64(4) {
		t.Errorf("history.capacity = %v, want 4", v)
	}
}

func TestEnvLoader_TypesFollowSetting(t *testing.T) {
	t.Setenv("JUMPTRAIL_CIRCULAR", "1")
	t.Setenv("JUMPTRAIL_WATCH", "off")
	t.Setenv("JUMPTRAIL_PROXIMITY", " 7 ")
	t.Setenv("JUMPTRAIL_SCRIPT", "on")
	t.Setenv("JUMPTRAIL_EVALUATOR", "2024")
	t.Setenv("JUMPTRAIL_LOG_LEVEL", "true")

	config, err := NewEnvLoader().Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"history.circular", true},
		{"history.watch_script", false},
		{"history.proximity_lines", int64(7)},
		{"history.script", "on"},
		{"history.evaluator", "2024"},
		{"logging.level", "true"},
	}
	for _, tt := range tests {
		if v, _ := getByPath(config, tt.path); v != tt.want {
			t.Errorf("%s = %v (%T), want %v (%T)", tt.path, v, v, tt.want, tt.want)
		}
	}
}

func TestEnvLoader_InvalidValue(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"JUMPTRAIL_CAPACITY", "lots"},
		{"JUMPTRAIL_CAPACITY", "1.5"},
		{"JUMPTRAIL_CIRCULAR", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := NewEnvLoader().Load()
			if !errors.Is(err, ErrInvalidEnvValue) {
				t.Fatalf("Load() error = %v, want ErrInvalidEnvValue", err)
			}
			if !strings.Contains(err.Error(), tt.env) {
				t.Errorf("Load() error = %v, want variable name", err)
			}
		})
	}
}

func TestEnvLoader_SetKind(t *testing.T) {
	t.Setenv("MY_FLAG", "0")

	l := NewEnvLoaderWithMapping(map[string]string{"MY_FLAG": "extra.flag"})
	config, _ := l.Load()
	if v, _ := getByPath(config, "extra.flag"); v != "0" {
		t.Errorf("unregistered setting = %v (%T), want string 0", v, v)
	}

	l.SetKind("extra.flag", KindBool)
	config, _ = l.Load()
	if v, _ := getByPath(config, "extra.flag"); v != false {
		t.Errorf("bool setting = %v (%T), want false", v, v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		kind     Kind
		expected any
	}{
		{"1", KindInt, int64(1)},
		{"-3", KindInt, int64(-3)},
		{"1", KindBool, true},
		{"0", KindBool, false},
		{"true", KindBool, true},
		{"OFF", KindBool, false},
		{"Yes", KindBool, true},
		{"1", KindString, "1"},
		{"on", KindString, "on"},
		{"", KindString, ""},
	}

	for _, tt := range tests {
		got, err := parseValue(tt.input, tt.kind)
		if err != nil {
			t.Errorf("parseValue(%q, %d) error = %v", tt.input, tt.kind, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("parseValue(%q, %d) = %v (%T), want %v", tt.input, tt.kind, got, got, tt.expected)
		}
	}
}

// getByPath reads a value from a nested map using a dot-separated path.
func getByPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
