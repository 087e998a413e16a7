package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FileSource is a ByteSource backed by an open file.
type FileSource struct {
	file   *os.File
	path   string
	length int64
}

// OpenFile opens path read-only and records its current length.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	fs := &FileSource{file: f, path: path}
	if err := fs.Refresh(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return fs, nil
}

// Path returns the path the source was opened from.
func (s *FileSource) Path() string {
	return s.path
}

// Len returns the file length recorded at open or at the last Refresh.
func (s *FileSource) Len() int64 {
	return s.length
}

// Refresh re-stats the file so Len reflects its current size.
func (s *FileSource) Refresh() error {
	if s.file == nil {
		return ErrClosed
	}
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	s.length = info.Size()
	return nil
}

// ReadAt reads up to maxLen bytes at offset. A short read at end of file is not an error.
func (s *FileSource) ReadAt(offset int64, maxLen int) ([]byte, error) {
	if s.file == nil {
		return nil, ErrClosed
	}
	if offset < 0 || maxLen <= 0 || offset >= s.length {
		return []byte{}, nil
	}
	n := min(int64(maxLen), s.length-offset)
	buf := make([]byte, n)
	read, err := s.file.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading %s at %d: %w", s.path, offset, err)
	}
	return buf[:read], nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
