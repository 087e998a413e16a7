// Package app wires the hexstorm editor to a terminal, a file and a file
// watcher, and runs the event loop.
package app

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/hexstorm/internal/engine/source"
	"github.com/dshills/hexstorm/internal/hexview"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/compositor"
	"github.com/dshills/hexstorm/internal/watcher"
)

// Application owns the editor and everything feeding it.
type Application struct {
	mu sync.Mutex

	editor     *hexview.Editor
	backend    backend.Backend
	compositor *compositor.Compositor

	src     source.ByteSource
	file    *source.FileSource
	watcher *watcher.FileWatcher

	logger *Logger

	running atomic.Bool
	closed  bool

	opts Options
}

// Options configures the application.
type Options struct {
	// Path is the file to open. Ignored when Source is set.
	Path string

	// Source supplies the bytes directly, e.g. for tests or stdin.
	Source source.ByteSource

	// Editor configures the hex view.
	Editor hexview.Options

	// Offset is the address the caret starts at.
	Offset int64

	// Watch reloads the view when Path changes on disk.
	Watch bool

	// Logger receives diagnostics. Defaults to NullLogger.
	Logger *Logger
}

// New creates the editor and loads the source. Opening the file is the
// only fatal step; an out-of-range Offset is logged and ignored.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		logger: opts.Logger,
	}
	if app.logger == nil {
		app.logger = NullLogger
	}

	ed, err := hexview.New(opts.Editor)
	if err != nil {
		return nil, &InitError{Component: "editor", Err: err}
	}
	app.editor = ed

	app.src = opts.Source
	if app.src == nil && opts.Path != "" {
		f, err := source.OpenFile(opts.Path)
		if err != nil {
			return nil, NewOperationError("open", opts.Path, err)
		}
		app.file = f
		app.src = f
	}
	if app.src == nil {
		app.src = source.NewMemorySource(nil)
	}

	log := app.logger.WithComponent("app")
	if err := ed.SetSource(app.src); err != nil {
		log.Error("reading first page: %v", err)
	}
	log.Info("loaded %d bytes", app.src.Len())

	if opts.Offset != 0 {
		if err := ed.GoTo(opts.Offset); err != nil {
			app.logEditorError(err)
		}
	}

	return app, nil
}

// Editor returns the hex view.
func (app *Application) Editor() *hexview.Editor {
	return app.editor
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// SetBackend replaces the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Run initializes the backend, starts the file watcher and processes events
// until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	if app.backend == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			app.mu.Unlock()
			return &InitError{Component: "terminal", Err: err}
		}
		app.backend = term
	}
	b := app.backend
	app.mu.Unlock()

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	opts := app.editor.Options()
	app.compositor = compositor.New(b, opts.CellW, opts.CellH)

	if app.opts.Watch && app.file != nil {
		if err := app.startWatcher(b); err != nil {
			app.logger.WithComponent("watcher").Warn("not watching %s: %v", app.file.Path(), err)
		}
	}

	app.render()
	for {
		ev := b.PollEvent()
		if err := app.handleBackendEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// startWatcher forwards file changes to the event loop as interrupts.
func (app *Application) startWatcher(b backend.Backend) error {
	w, err := watcher.NewFileWatcher(app.file.Path())
	if err != nil {
		return err
	}
	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()

	log := app.logger.WithComponent("watcher")
	go func() {
		for {
			select {
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				b.PostEvent(backend.Event{Type: backend.EventInterrupt, Payload: ev})
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				log.Error("watch: %v", err)
			}
		}
	}()
	return nil
}

// quitRequest is posted by Shutdown to stop a blocked event loop.
type quitRequest struct{}

// Shutdown asks a running event loop to return. It is safe to call from
// any goroutine and more than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b != nil && app.running.Load() {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt, Payload: quitRequest{}})
	}
}

// Close stops the watcher and closes the file.
func (app *Application) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return nil
	}
	app.closed = true

	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.file != nil {
		errs = append(errs, app.file.Close())
	}
	return errors.Join(errs...)
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
