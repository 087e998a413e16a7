package app

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/hexstorm/internal/engine/source"
	"github.com/dshills/hexstorm/internal/hexview"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/watcher"
)

func testBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func testOptions() Options {
	ed := hexview.DefaultOptions()
	ed.Rows = 2
	return Options{
		Source: source.NewMemorySource(testBytes(64)),
		Editor: ed,
	}
}

func key(k backend.Key, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Mod: mod}
}

func runeKey(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

// runEvents queues events followed by 'q' and runs the loop to completion.
func runEvents(t *testing.T, app *Application, events ...backend.Event) *backend.NullBackend {
	t.Helper()
	nb := backend.NewNullBackend(80, 12)
	if err := app.SetBackend(nb); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}
	for _, ev := range events {
		nb.PostEvent(ev)
	}
	nb.PostEvent(runeKey('q'))
	if err := app.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	return nb
}

func TestNew(t *testing.T) {
	app, err := New(testOptions())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Close()

	if app.Editor() == nil {
		t.Fatal("expected editor to be initialized")
	}
	if got := app.Editor().Model().Limit(); got != 64 {
		t.Errorf("Limit() = %d, want 64", got)
	}
	if app.Logger() != NullLogger {
		t.Error("expected NullLogger by default")
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "missing.bin"), Editor: hexview.DefaultOptions()})

	var oe *OperationError
	if !errors.As(err, &oe) || oe.Op != "open" {
		t.Fatalf("New() error = %v, want open OperationError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("New() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestNew_Offset(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	opts := testOptions()
	opts.Offset = 40
	opts.Logger = logger
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := app.Editor().Model().Caret(); got != 40 {
		t.Errorf("Caret() = %d, want 40", got)
	}
	if got := app.Editor().Window().Offset(); got != 32 {
		t.Errorf("Offset() = %d, want 32", got)
	}

	opts.Offset = 1000
	app, err = New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := app.Editor().Model().Caret(); got != 0 {
		t.Errorf("Caret() = %d after vetoed offset, want 0", got)
	}
	if !strings.Contains(buf.String(), "[DEBUG] vetoed") {
		t.Errorf("log = %q, want a debug veto line", buf.String())
	}
}

func TestRun_Keys(t *testing.T) {
	app, err := New(testOptions())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Close()

	nb := runEvents(t, app,
		key(backend.KeyRight, backend.ModNone),
		key(backend.KeyRight, backend.ModNone),
		key(backend.KeyRight, backend.ModShift),
		key(backend.KeyEnter, backend.ModNone),
		runeKey('x'),
	)

	m := app.Editor().Model()
	if m.Caret() != 3 || m.Mark() != 2 {
		t.Errorf("caret, mark = %d, %d; want 3, 2", m.Caret(), m.Mark())
	}
	if got := len(app.Editor().Tags()); got != 1 {
		t.Errorf("len(Tags()) = %d, want 1", got)
	}
	if row := nb.Row(1); !strings.HasPrefix(row, "00000000 00 01 02 03") {
		t.Errorf("Row(1) = %q", row)
	}
	if row := nb.Row(2); !strings.HasPrefix(row, "00000010 10 11") {
		t.Errorf("Row(2) = %q", row)
	}
	if nb.CursorVisible() {
		t.Error("cursor should be hidden")
	}
	if app.IsRunning() {
		t.Error("IsRunning() = true after Run returned")
	}
}

func TestRun_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
		quit bool
	}{
		{"q", runeKey('q'), true},
		{"Q", runeKey('Q'), true},
		{"escape", key(backend.KeyEscape, backend.ModNone), true},
		{"ctrl+c", key(backend.KeyCtrlC, backend.ModNone), true},
		{"x", runeKey('x'), false},
		{"enter", key(backend.KeyEnter, backend.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuitKey(tt.ev); got != tt.quit {
				t.Errorf("isQuitKey() = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestRun_BitShiftKeys(t *testing.T) {
	app, err := New(testOptions())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	nb := runEvents(t, app, runeKey('+'), runeKey('+'), runeKey('+'))

	if got := app.Editor().Model().BitShift(); got != 3 {
		t.Errorf("BitShift() = %d, want 3", got)
	}
	if got := nb.Row(0); !strings.HasPrefix(got, "3") {
		t.Errorf("Row(0) = %q, want shift digit 3", got)
	}
}

func TestRun_Shutdown(t *testing.T) {
	app, err := New(testOptions())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	nb := backend.NewNullBackend(80, 12)
	_ = app.SetBackend(nb)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("Run() did not start")
		}
		time.Sleep(time.Millisecond)
	}

	if err := app.SetBackend(nb); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend() while running = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after Shutdown")
	}
}

func TestRun_ReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, testBytes(20), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var buf bytes.Buffer
	opts := testOptions()
	opts.Source = nil
	opts.Path = path
	opts.Logger = NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Close()

	if err := os.WriteFile(path, testBytes(40), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	changed := backend.Event{
		Type:    backend.EventInterrupt,
		Payload: watcher.Event{Path: path, Op: watcher.OpWrite},
	}
	nb := runEvents(t, app, changed)

	if got := app.Editor().Model().Limit(); got != 40 {
		t.Errorf("Limit() = %d after reload, want 40", got)
	}
	if row := nb.Row(2); !strings.HasPrefix(row, "00000010 10 11") {
		t.Errorf("Row(2) = %q", row)
	}
	if !strings.Contains(buf.String(), "reloaded, 40 bytes") || !strings.Contains(buf.String(), "reason=WRITE") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestClose_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, testBytes(4), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	app, err := New(Options{Path: path, Editor: hexview.DefaultOptions()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestDump(t *testing.T) {
	opts := testOptions()
	opts.Source = source.NewMemorySource([]byte("Hi!"))
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := app.Dump(&buf); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("Dump() = %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "0        00 01 02") {
		t.Errorf("header line = %q", lines[0])
	}
	want := "00000000 48 69 21"
	if !strings.HasPrefix(lines[1], want) {
		t.Errorf("first row = %q, want prefix %q", lines[1], want)
	}
	if !strings.Contains(lines[1], "Hi!") {
		t.Errorf("first row = %q, want text column Hi!", lines[1])
	}
}

func TestOperationError(t *testing.T) {
	base := errors.New("boom")
	err := NewOperationError("open", "/tmp/x", base)
	if got := err.Error(); got != "open /tmp/x: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, base) {
		t.Error("OperationError should unwrap to its cause")
	}
	ie := &InitError{Component: "terminal", Err: base}
	if got := ie.Error(); got != "init terminal: boom" {
		t.Errorf("InitError.Error() = %q", got)
	}
}
