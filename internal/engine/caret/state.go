package caret

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a caret or mark address outside [0, limit).
var ErrOutOfBounds = errors.New("address out of bounds")

// VetoError describes a rejected caret or mark transition.
type VetoError struct {
	// Field is "caret" or "mark".
	Field string
	// Proposed is the rejected address.
	Proposed int64
	// Limit is the exclusive upper bound at the time of the veto.
	Limit int64
}

// Error implements the error interface.
func (e *VetoError) Error() string {
	return fmt.Sprintf("%s would be out of bounds: %d not in [0, %d)", e.Field, e.Proposed, e.Limit)
}

// Unwrap returns ErrOutOfBounds.
func (e *VetoError) Unwrap() error {
	return ErrOutOfBounds
}

// State is the caret/mark state of an editing session.
type State struct {
	Caret     int64
	Mark      int64
	BitShift  int
	Selecting bool
}

// HasSelection reports whether the mark designates a selection end.
func (s State) HasSelection() bool {
	return s.Mark >= 0
}

// TryCaret validates moving the caret to proposed.
// When not selecting, the mark follows the caret.
func TryCaret(s State, limit, proposed int64) (State, error) {
	if proposed < 0 || proposed >= limit {
		return s, &VetoError{Field: "caret", Proposed: proposed, Limit: limit}
	}
	s.Caret = proposed
	if !s.Selecting {
		s.Mark = proposed
	}
	return s, nil
}

// TryMark validates moving the mark to proposed.
func TryMark(s State, limit, proposed int64) (State, error) {
	if proposed < 0 || proposed >= limit {
		return s, &VetoError{Field: "mark", Proposed: proposed, Limit: limit}
	}
	s.Mark = proposed
	return s, nil
}

// NormalizeShift splits a requested bit shift into a whole-byte caret delta
// and a shift in [0,8), such that delta*8 + shift == v. The delta is the floor
// of v/8, so values outside [-8,16) carry more than one byte.
func NormalizeShift(v int) (delta int64, shift int) {
	shift = ((v % 8) + 8) % 8
	delta = int64((v - shift) / 8)
	return delta, shift
}
