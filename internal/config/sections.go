package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/hexstorm/internal/hexview"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// GridConfig is the page geometry in bytes.
type GridConfig struct {
	Cols int
	Rows int
}

// CellConfig is the pixel size of one grid cell.
type CellConfig struct {
	Width  int
	Height int
}

// TextConfig controls the text column.
type TextConfig struct {
	// Charset names the single-byte decoding ("latin1", "cp437", "cp1252", "ascii").
	Charset string
}

// ColorsConfig holds the overlay colours as hex strings.
type ColorsConfig struct {
	Selection string
	Mark      string
	Caret     string

	// Tags is cycled through by committed tags.
	Tags []string
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn", "error").
	Level string

	// File is the log file path (empty for no file logging).
	File string
}

// WatchConfig controls reloading when the open file changes.
type WatchConfig struct {
	Enabled bool
}

func (c *Config) Grid() GridConfig {
	return GridConfig{
		Cols: c.getIntOr("grid.cols", 16),
		Rows: c.getIntOr("grid.rows", 16),
	}
}

func (c *Config) Cell() CellConfig {
	return CellConfig{
		Width:  c.getIntOr("cell.width", 1),
		Height: c.getIntOr("cell.height", 1),
	}
}

func (c *Config) Text() TextConfig {
	return TextConfig{
		Charset: c.getStringOr("text.charset", "latin1"),
	}
}

func (c *Config) Colors() ColorsConfig {
	return ColorsConfig{
		Selection: c.getStringOr("colors.selection", "#FF0000"),
		Mark:      c.getStringOr("colors.mark", "#FFFF00"),
		Caret:     c.getStringOr("colors.caret", "#FFFFFF"),
		Tags:      c.getStringSliceOr("colors.tags", nil),
	}
}

func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

func (c *Config) Watch() WatchConfig {
	return WatchConfig{
		Enabled: c.getBoolOr("watch.enabled", true),
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks every section and returns all problems joined, including
// type errors recorded by the section accessors.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	grid := c.Grid()
	if grid.Cols < 1 {
		invalid("grid.cols", "must be at least 1", grid.Cols)
	}
	if grid.Rows < 1 {
		invalid("grid.rows", "must be at least 1", grid.Rows)
	}

	cell := c.Cell()
	if cell.Width < 1 {
		invalid("cell.width", "must be at least 1", cell.Width)
	}
	if cell.Height < 1 {
		invalid("cell.height", "must be at least 1", cell.Height)
	}

	text := c.Text()
	if _, err := hexview.LookupCharset(text.Charset); err != nil {
		invalid("text.charset", "must be one of "+strings.Join(hexview.CharsetNames(), ", "), text.Charset)
	}

	colors := c.Colors()
	for path, s := range map[string]string{
		"colors.selection": colors.Selection,
		"colors.mark":      colors.Mark,
		"colors.caret":     colors.Caret,
	} {
		if _, err := core.ParseColor(s); err != nil {
			invalid(path, "not a colour", s)
		}
	}
	for i, s := range colors.Tags {
		if _, err := core.ParseColor(s); err != nil {
			invalid(fmt.Sprintf("colors.tags[%d]", i), "not a colour", s)
		}
	}

	if level := c.Logging().Level; !logLevels[strings.ToLower(level)] {
		invalid("logging.level", "must be one of debug, info, warn, error", level)
	}

	_ = c.Watch() // type errors only

	for _, err := range c.ConfigErrors() {
		errs = append(errs, err)
	}

	sort.SliceStable(errs, func(i, j int) bool { return errPath(errs[i]) < errPath(errs[j]) })
	return errors.Join(errs...)
}

func errPath(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Path
	}
	var te *TypeError
	if errors.As(err, &te) {
		return te.Path
	}
	return ""
}

// HexviewOptions validates the configuration and converts it to editor options.
func (c *Config) HexviewOptions() (hexview.Options, error) {
	if err := c.Validate(); err != nil {
		return hexview.Options{}, err
	}

	grid, cell, colors := c.Grid(), c.Cell(), c.Colors()
	cs, _ := hexview.LookupCharset(c.Text().Charset)

	opts := hexview.Options{
		Cols:           grid.Cols,
		Rows:           grid.Rows,
		CellW:          cell.Width,
		CellH:          cell.Height,
		Charset:        cs,
		SelectionColor: core.MustParseColor(colors.Selection),
		MarkColor:      core.MustParseColor(colors.Mark),
		CaretColor:     core.MustParseColor(colors.Caret),
		TagColors:      colors.Tags,
	}
	if len(opts.TagColors) == 0 {
		opts.TagColors = hexview.Palette(6)
	}
	return opts, nil
}

// Helper methods for section accessors.
// These methods only return the default for ErrSettingNotFound.
// Type errors are recorded and return the default to avoid breaking callers,
// but indicate a configuration problem that should be fixed.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if err != ErrSettingNotFound {
			// Record type/parse errors - these indicate config problems
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		v = defaultValue
	}
	// Return a copy to enforce the snapshot guarantee
	result := make([]string, len(v))
	copy(result, v)
	return result
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}

// ClearConfigErrors clears any stored configuration errors.
func (c *Config) ClearConfigErrors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors = nil
}
