package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single file.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	config  Config
	path    string

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher starts watching path. The file must exist.
func NewFileWatcher(path string, opts ...Option) (*FileWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 16
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		config:  config,
		path:    absPath,
		events:  make(chan Event, config.BufferSize),
		errors:  make(chan error, config.BufferSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Calling Close more than once is a no-op.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	// Wait for processLoop to finish
	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// Closed reports whether Close has been called.
func (w *FileWatcher) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// processLoop filters fsnotify events to the watched file and coalesces
// them until the debounce timer fires.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	var (
		pending Op
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			pending |= op
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.sendEvent(Event{Path: w.path, Op: pending, Timestamp: time.Now()})
			pending = 0

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

// sendEvent sends an event to the output channel, dropping it when full.
// A dropped event is harmless: the consumer re-reads the file anyway.
func (w *FileWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
	}
}

// sendError sends an error to the output channel, dropping it when full.
func (w *FileWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
