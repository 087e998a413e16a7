package source

import "errors"

// ErrClosed is returned when reading from a closed source.
var ErrClosed = errors.New("source is closed")

// ByteSource is a random-access byte source.
type ByteSource interface {
	// Len returns the number of bytes in the source.
	Len() int64

	// ReadAt reads up to maxLen bytes starting at offset.
	// Returns fewer bytes at the tail of the source and an empty slice at or past the end.
	ReadAt(offset int64, maxLen int) ([]byte, error)
}

// Refresher is implemented by sources whose length can change underneath them.
type Refresher interface {
	// Refresh re-reads the source length.
	Refresh() error
}
