// Package watcher notifies hexstorm when the file being viewed changes on
// disk.
//
// fsnotify loses a watch on a file that is replaced by rename (the usual
// way editors save), so the watcher observes the parent directory and
// filters events down to the one file. Bursts of events are coalesced
// into one Event per quiet period.
package watcher

import (
	"errors"
	"strings"
	"time"
)

// ErrPathNotExist is returned when the file to watch does not exist.
var ErrPathNotExist = errors.New("path does not exist")

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

// String returns the names of the operations in op joined by '|'.
func (op Op) String() string {
	var names []string
	for _, n := range opNames {
		if op.Has(n.op) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(names, "|")
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event reports that the watched file changed.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op combines every operation seen during the quiet period.
	Op Op

	// Timestamp is when the event was delivered.
	Timestamp time.Time
}

// Config holds watcher configuration.
type Config struct {
	// Debounce is the quiet period that ends a burst of events.
	Debounce time.Duration

	// BufferSize is the capacity of the event and error channels.
	BufferSize int
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:   100 * time.Millisecond,
		BufferSize: 16,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = d
	}
}

// WithBufferSize sets the channel capacity.
func WithBufferSize(n int) Option {
	return func(c *Config) {
		c.BufferSize = n
	}
}
