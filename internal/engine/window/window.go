// Package window implements the paged byte window a hex view renders from.
//
// A Window holds one page of cols*rows bytes read from a source.ByteSource,
// starting at a row-aligned offset, together with a bitbuf.BitCursor over that
// page positioned at the current bit shift. The page is replaced on every Seek.
package window

import (
	"errors"
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/bitbuf"
	"github.com/dshills/hexstorm/internal/engine/source"
)

var (
	// ErrIO indicates the byte source failed to deliver a page.
	ErrIO = errors.New("page read failed")

	// ErrInvalidGeometry indicates a non-positive column or row count.
	ErrInvalidGeometry = errors.New("invalid window geometry")
)

// SeekError reports a failed page load. The previous page stays in place.
type SeekError struct {
	Target int64
	Err    error
}

// Error implements the error interface.
func (e *SeekError) Error() string {
	return fmt.Sprintf("seek to %d: %v", e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *SeekError) Unwrap() error {
	return e.Err
}

// Is matches ErrIO.
func (e *SeekError) Is(target error) bool {
	return target == ErrIO
}

// Window is a page of bytes loaded from a ByteSource.
// It is not safe for concurrent use.
type Window struct {
	src      source.ByteSource
	cols     int
	rows     int
	offset   int64
	limit    int64
	data     []byte
	cursor   *bitbuf.BitCursor
	bitShift int
}

// New creates an empty window with the given grid geometry.
// Call SetSource to attach a byte source.
func New(cols, rows int) (*Window, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", cols, rows, ErrInvalidGeometry)
	}
	return &Window{
		cols:   cols,
		rows:   rows,
		data:   []byte{},
		cursor: bitbuf.New(nil),
	}, nil
}

// SetSource attaches src, records its length as the limit and loads the first page.
// A nil source detaches the window and empties it.
func (w *Window) SetSource(src source.ByteSource) error {
	w.src = src
	w.offset = 0
	w.data = []byte{}
	w.cursor = bitbuf.New(w.data)
	w.limit = 0
	if src == nil {
		return nil
	}
	w.limit = src.Len()
	return w.Seek(0)
}

// Source returns the attached byte source, or nil.
func (w *Window) Source() source.ByteSource {
	return w.src
}

// Cols returns the row stride in bytes.
func (w *Window) Cols() int {
	return w.cols
}

// Rows returns the number of rows per page.
func (w *Window) Rows() int {
	return w.rows
}

// PageSize returns cols*rows.
func (w *Window) PageSize() int64 {
	return int64(w.cols) * int64(w.rows)
}

// Offset returns the address of the first byte in the page.
func (w *Window) Offset() int64 {
	return w.offset
}

// Limit returns one past the last valid byte address.
func (w *Window) Limit() int64 {
	return w.limit
}

// Data returns the current page. The slice is owned by the window.
func (w *Window) Data() []byte {
	return w.data
}

// Cursor returns the bit cursor over the current page.
func (w *Window) Cursor() *bitbuf.BitCursor {
	return w.cursor
}

// BitShift returns the bit shift the cursor is positioned at after each seek.
func (w *Window) BitShift() int {
	return w.bitShift
}

// SetBitShift sets the bit shift and repositions the cursor at the page start.
func (w *Window) SetBitShift(shift int) error {
	if err := w.cursor.Position(0, shift); err != nil {
		return err
	}
	w.bitShift = shift
	return nil
}

// Contains reports whether addr lies inside the page area [offset, offset+cols*rows).
func (w *Window) Contains(addr int64) bool {
	return addr >= w.offset && addr < w.offset+w.PageSize()
}

// ClampOffset returns the offset Seek would use for target: clamped to
// [0, limit - limit%cols] and rounded down to a row boundary.
func (w *Window) ClampOffset(target int64) int64 {
	cols := int64(w.cols)
	t := max(min(target, w.limit-w.limit%cols), 0)
	return t - t%cols
}

// Seek loads the page holding target, starting at the row boundary at or
// before the clamped target.
// On a read failure the previous page is kept and a *SeekError is returned.
func (w *Window) Seek(target int64) error {
	if w.src == nil {
		return nil
	}
	tmp := w.ClampOffset(target)

	n := min(w.PageSize(), w.limit-tmp)
	data, err := w.src.ReadAt(tmp, int(max(n, 0)))
	if err != nil {
		return &SeekError{Target: tmp, Err: err}
	}
	page := make([]byte, len(data), w.PageSize())
	copy(page, data)

	cursor := bitbuf.New(page)
	if err := cursor.Position(0, w.bitShift); err != nil {
		return &SeekError{Target: tmp, Err: err}
	}

	w.data = page
	w.cursor = cursor
	w.offset = tmp
	return nil
}

// Skip seeks relative to the current offset.
func (w *Window) Skip(delta int64) error {
	return w.Seek(w.offset + delta)
}

// Reload refreshes the source length when the source supports it and re-reads
// the page at the current offset.
func (w *Window) Reload() error {
	if w.src == nil {
		return nil
	}
	if r, ok := w.src.(source.Refresher); ok {
		if err := r.Refresh(); err != nil {
			return &SeekError{Target: w.offset, Err: err}
		}
	}
	w.limit = w.src.Len()
	return w.Seek(w.offset)
}
