package loader

import (
	"reflect"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("HEXSTORM_GRID_COLS", "32")
	t.Setenv("HEXSTORM_ROWS", "8")
	t.Setenv("HEXSTORM_LOG_LEVEL", "debug")
	t.Setenv("HEXSTORM_WATCH", "off")
	t.Setenv("HEXSTORM_COLORS_TAGS", `["#FF0000","#00FF00"]`)

	config, err := NewEnvLoader("HEXSTORM_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"grid.cols", int64(32)},
		{"grid.rows", int64(8)},
		{"logging.level", "debug"},
		{"watch.enabled", false},
		{"colors.tags", []any{"#FF0000", "#00FF00"}},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
}

func TestEnvLoader_MappingWins(t *testing.T) {
	t.Setenv("HEXSTORM_COLS", "4")
	t.Setenv("HEXSTORM_GRID_COLS", "64")

	config, err := NewEnvLoader("HEXSTORM_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, _ := GetByPath(config, "grid.cols"); got != int64(4) {
		t.Errorf("grid.cols = %v, want 4", got)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("HEXSTORM_")

	tests := []struct {
		env      string
		expected string
	}{
		{"HEXSTORM_GRID_COLS", "grid.cols"},
		{"HEXSTORM_TEXT_CHARSET", "text.charset"},
		{"HEXSTORM_SIMPLE", "simple"},
		{"HEXSTORM_COLORS_TAG_PALETTE", "colors.tagPalette"},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"No", false},
		{"1", int64(1)},
		{"-3", int64(-3)},
		{"1.5", 1.5},
		{"#FF0000", "#FF0000"},
		{"[1,2]", []any{float64(1), float64(2)}},
		{"[broken", "[broken"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
