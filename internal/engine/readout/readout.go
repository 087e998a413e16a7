// Package readout decodes the bytes under the caret as 8, 16 and 32-bit
// integers in both byte orders, the way the hex view's numeric panel shows them.
package readout

import (
	"encoding/binary"
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/bitbuf"
)

// MaxBytes is the widest value decoded.
const MaxBytes = 4

// Readout holds up to MaxBytes bytes read at the caret.
type Readout struct {
	bytes []byte
}

// Decode builds a readout from the first MaxBytes bytes of b.
func Decode(b []byte) Readout {
	n := min(len(b), MaxBytes)
	out := make([]byte, n)
	copy(out, b[:n])
	return Readout{bytes: out}
}

// At reads up to MaxBytes shifted bytes at byte index pos of the cursor's window.
// The cursor position is restored afterwards.
func At(c *bitbuf.BitCursor, pos, shift int) (Readout, error) {
	savedIndex, savedOffset := c.ByteIndex(), c.BitOffset()
	defer func() { _ = c.Position(savedIndex, savedOffset) }()

	if err := c.Position(pos, shift); err != nil {
		return Readout{}, fmt.Errorf("readout at %d: %w", pos, err)
	}
	b, err := c.Get(min(c.Remaining(), MaxBytes))
	if err != nil {
		return Readout{}, err
	}
	return Readout{bytes: b}, nil
}

// Bytes returns the decoded bytes.
func (r Readout) Bytes() []byte {
	return r.bytes
}

// Has reports whether enough bytes are present for a value of the given bit width.
func (r Readout) Has(bits int) bool {
	return bits > 0 && len(r.bytes)*8 >= bits
}

// Unsigned returns the value of the given width (8, 16 or 32) in the given byte order.
// ok is false when too few bytes are present.
func (r Readout) Unsigned(bits int, order binary.ByteOrder) (v uint64, ok bool) {
	if !r.Has(bits) {
		return 0, false
	}
	switch bits {
	case 8:
		return uint64(r.bytes[0]), true
	case 16:
		return uint64(order.Uint16(r.bytes)), true
	case 32:
		return uint64(order.Uint32(r.bytes)), true
	}
	return 0, false
}

// Signed returns the two's complement value of the given width in the given byte order.
func (r Readout) Signed(bits int, order binary.ByteOrder) (v int64, ok bool) {
	u, ok := r.Unsigned(bits, order)
	if !ok {
		return 0, false
	}
	switch bits {
	case 8:
		return int64(int8(u)), true
	case 16:
		return int64(int16(u)), true
	default:
		return int64(int32(u)), true
	}
}

// Binary returns each byte as eight binary digits.
func (r Readout) Binary() []string {
	out := make([]string, len(r.bytes))
	for i, b := range r.bytes {
		out[i] = fmt.Sprintf("%08b", b)
	}
	return out
}
