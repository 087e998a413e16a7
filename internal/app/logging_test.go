package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn %d", 1)
	logger.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 1") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("output missing messages: %q", out)
	}
	if logger.Enabled(LogLevelInfo) || !logger.Enabled(LogLevelError) {
		t.Error("Enabled() disagrees with the configured level")
	}

	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel(Debug) did not take effect")
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "hexstorm"})

	logger.WithFields(map[string]any{"z": 1, "a": "x"}).WithComponent("editor").Info("moved")

	line := strings.TrimSpace(buf.String())
	want := "[INFO] hexstorm: moved {a=x, component=editor, z=1}"
	if !strings.HasSuffix(line, want) {
		t.Errorf("line = %q, want suffix %q", line, want)
	}
}

func TestLogger_WithFieldIsolation(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	_ = parent.WithField("key", "value")

	parent.Info("plain")
	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("parent logger picked up child field: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic.
	NullLogger.Info("ignored")
	NullLogger.WithComponent("x").Error("ignored")
	NullLogger.SetLevel(LogLevelDebug)
	if NullLogger.Enabled(LogLevelError) {
		t.Error("NullLogger should not be enabled")
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo || cfg.Prefix != "hexstorm" || cfg.Output != os.Stderr {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
}

func TestOpenLogFile(t *testing.T) {
	logger, closer, err := OpenLogFile("", "debug")
	if err != nil || logger != NullLogger {
		t.Errorf("OpenLogFile(\"\") = %v, %v; want NullLogger", logger, err)
	}
	_ = closer.Close()

	path := filepath.Join(t.TempDir(), "hexstorm.log")
	logger, closer, err = OpenLogFile(path, "warn")
	if err != nil {
		t.Fatalf("OpenLogFile() failed: %v", err)
	}
	logger.Info("skipped")
	logger.Warn("kept")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := string(data); strings.Contains(got, "skipped") || !strings.Contains(got, "[WARN] hexstorm: kept") {
		t.Errorf("log file = %q", got)
	}

	if _, _, err := OpenLogFile(filepath.Join(t.TempDir(), "no", "such", "dir.log"), "info"); err == nil {
		t.Error("OpenLogFile() in a missing directory should fail")
	}
}
