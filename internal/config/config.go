package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/hexstorm/internal/config/loader"
	"github.com/dshills/hexstorm/internal/hexview"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "HEXSTORM_"

// Layer names in ascending priority.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerEnv      = "env"
	LayerFlags    = "flags"
)

var layerOrder = []string{LayerDefaults, LayerFile, LayerEnv, LayerFlags}

// Config provides unified access to the hexstorm configuration.
// Values are looked up in the merge of all layers, flags winning.
type Config struct {
	mu sync.RWMutex

	layers map[string]map[string]any
	merged map[string]any // nil when stale

	// path is the config file the file layer was read from.
	path string

	// configErrors stores errors encountered during configuration access.
	// This allows detection of type mismatches and other config problems.
	configErrors map[string]error
}

// New creates a Config holding only the built-in defaults.
func New() *Config {
	return &Config{
		layers: map[string]map[string]any{
			LayerDefaults: defaultConfig(),
		},
	}
}

// Load builds a Config from defaults, the file at path and the
// environment. An empty path selects DefaultPath; a missing file is not
// an error.
func Load(path string) (*Config, error) {
	c := New()
	if path == "" {
		path = DefaultPath()
	}
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	if err := c.LoadEnv(EnvPrefix); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile replaces the file layer with the contents of path.
func (c *Config) LoadFile(path string) error {
	l, err := loader.ForPath(loader.DefaultFS(), path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = path
	c.setLayer(LayerFile, data)
	return nil
}

// LoadEnv replaces the environment layer with variables carrying prefix.
func (c *Config) LoadEnv(prefix string) error {
	data, err := loader.NewEnvLoader(prefix).Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLayer(LayerEnv, data)
	return nil
}

// Path returns the config file the file layer was read from.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

func (c *Config) setLayer(name string, data map[string]any) {
	c.layers[name] = data
	c.merged = nil
	c.configErrors = nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loader.GetByPath(c.mergedLocked(), path)
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loader.Clone(c.mergedLocked())
}

func (c *Config) mergedLocked() map[string]any {
	if c.merged == nil {
		merged := make(map[string]any)
		for _, name := range layerOrder {
			merged = loader.DeepMerge(merged, loader.Clone(c.layers[name]))
		}
		c.merged = merged
	}
	return c.merged
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, &TypeError{Path: path, Expected: "int", Actual: "float64"}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path. Integers 0 and 1 are
// accepted as false and true.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case int:
		if val == 0 || val == 1 {
			return val == 1, nil
		}
	case int64:
		if val == 0 || val == 1 {
			return val == 1, nil
		}
	}
	return false, &TypeError{Path: path, Expected: "bool or 0/1", Actual: typeName(v)}
}

// GetStringSlice returns a string slice at the given path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// Set sets a value at the given path in the flags layer.
func (c *Config) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
		return fmt.Errorf("%q: %w", path, ErrInvalidPath)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	flags := c.layers[LayerFlags]
	if flags == nil {
		flags = make(map[string]any)
	}
	loader.SetByPath(flags, path, value)
	c.setLayer(LayerFlags, flags)
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/hexstorm/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hexstorm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hexstorm")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	def := hexview.DefaultOptions()
	tags := make([]any, len(def.TagColors))
	for i, s := range def.TagColors {
		tags[i] = s
	}
	return map[string]any{
		"grid": map[string]any{
			"cols": int64(def.Cols),
			"rows": int64(def.Rows),
		},
		"cell": map[string]any{
			"width":  int64(def.CellW),
			"height": int64(def.CellH),
		},
		"text": map[string]any{
			"charset": def.Charset.Name(),
		},
		"colors": map[string]any{
			"selection": def.SelectionColor.String(),
			"mark":      def.MarkColor.String(),
			"caret":     def.CaretColor.String(),
			"tags":      tags,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"watch": map[string]any{
			"enabled": true,
		},
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
