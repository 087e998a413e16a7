// Package config provides the configuration system for hexstorm.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← HEXSTORM_GRID_COLS, HEXSTORM_COLS, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/hexstorm/config.toml (or .yaml)
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := cfg.HexviewOptions()
//
// # Configuration Files
//
//	# ~/.config/hexstorm/config.toml
//	[grid]
//	cols = 16
//	rows = 32
//
//	[text]
//	charset = "cp437"
//
//	[colors]
//	selection = "#FF0000"
//	tags = ["#00FF00", "#0080FF"]
//
// # Error Handling
//
//   - ErrSettingNotFound: Setting path doesn't exist
//   - ErrTypeMismatch: Value type doesn't match expected type (see TypeError)
//   - ErrInvalidValue: Value is out of range or unknown (see ValidationError)
//   - loader.ParseError: Configuration file parsing failed
package config
