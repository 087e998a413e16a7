// Package bitbuf provides a bit-addressable read cursor over an in-memory byte window.
//
// Bits are numbered most-significant first. With a bit offset of n, each byte
// read is assembled from the low 8-n bits of the current source byte followed by
// the high n bits of the next one, so a cursor can be positioned between byte
// boundaries and still decode whole bytes.
package bitbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a position outside the window.
	ErrOutOfRange = errors.New("position out of range")

	// ErrUnderflow indicates a read past the last whole shifted byte.
	ErrUnderflow = errors.New("buffer underflow")
)

// BitCursor reads bytes at an arbitrary bit offset within a byte slice.
// It is not safe for concurrent use.
type BitCursor struct {
	data      []byte
	byteIndex int
	bitOffset int
}

// New creates a cursor at the start of data. The slice is not copied.
func New(data []byte) *BitCursor {
	return &BitCursor{data: data}
}

// Position moves the cursor to bitOffset bits past byteIndex.
// byteIndex may equal the window length (an exhausted cursor).
func (c *BitCursor) Position(byteIndex, bitOffset int) error {
	if byteIndex < 0 || byteIndex > len(c.data) {
		return fmt.Errorf("byte index %d of %d: %w", byteIndex, len(c.data), ErrOutOfRange)
	}
	if bitOffset < 0 || bitOffset >= 8 {
		return fmt.Errorf("bit offset %d: %w", bitOffset, ErrOutOfRange)
	}
	c.byteIndex = byteIndex
	c.bitOffset = bitOffset
	return nil
}

// ByteIndex returns the current byte index.
func (c *BitCursor) ByteIndex() int {
	return c.byteIndex
}

// BitOffset returns the current bit offset within the byte, in [0,8).
func (c *BitCursor) BitOffset() int {
	return c.bitOffset
}

// RemainingBits returns the number of bits between the cursor and the end of the window.
func (c *BitCursor) RemainingBits() uint64 {
	pos := uint64(c.byteIndex)*8 + uint64(c.bitOffset)
	if pos >= c.LimitBits() {
		return 0
	}
	return c.LimitBits() - pos
}

// Remaining returns the number of whole shifted bytes left to read.
func (c *BitCursor) Remaining() int {
	return int(c.RemainingBits() / 8)
}

// HasRemaining reports whether at least one whole shifted byte can be read.
func (c *BitCursor) HasRemaining() bool {
	return c.Remaining() > 0
}

// LimitBits returns the window length in bits.
func (c *BitCursor) LimitBits() uint64 {
	return uint64(len(c.data)) * 8
}

// CapacityBits returns the capacity of the backing window in bits.
func (c *BitCursor) CapacityBits() uint64 {
	return uint64(cap(c.data)) * 8
}

// Get reads n shifted bytes and advances the cursor by 8n bits.
// The cursor does not move when fewer than n bytes remain.
func (c *BitCursor) Get(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read of %d bytes: %w", n, ErrOutOfRange)
	}
	if n > c.Remaining() {
		return nil, fmt.Errorf("read %d bytes with %d remaining: %w", n, c.Remaining(), ErrUnderflow)
	}
	out := make([]byte, n)
	shift := uint(c.bitOffset)
	for i := range out {
		b := c.data[c.byteIndex+i] << shift
		if shift > 0 {
			b |= c.data[c.byteIndex+i+1] >> (8 - shift)
		}
		out[i] = b
	}
	c.byteIndex += n
	return out, nil
}

// GetBits reads n bits (n <= 64) as an unsigned big-endian value and advances the cursor.
func (c *BitCursor) GetBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("bit count %d: %w", n, ErrOutOfRange)
	}
	if uint64(n) > c.RemainingBits() {
		return 0, fmt.Errorf("read %d bits with %d remaining: %w", n, c.RemainingBits(), ErrUnderflow)
	}
	var v uint64
	for rangeIdx := 0; rangeIdx < n; rangeIdx++ {
		bit := (c.data[c.byteIndex] >> (7 - uint(c.bitOffset))) & 1
		v = v<<1 | uint64(bit)
		c.bitOffset++
		if c.bitOffset == 8 {
			c.bitOffset = 0
			c.byteIndex++
		}
	}
	return v, nil
}
