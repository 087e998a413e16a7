package caret

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/hexstorm/internal/engine/window"
)

// Model is the caret/mark model bound to a paged window.
// It is not safe for concurrent use.
type Model struct {
	win     *window.Window
	state   State
	tags    []Tag
	palette []string
}

// NewModel creates a model over win with the caret at 0 and no selection.
func NewModel(win *window.Window) *Model {
	m := &Model{
		win:     win,
		palette: []string{DefaultTagColor},
	}
	m.Reset()
	return m
}

// Window returns the window the model pages.
func (m *Model) Window() *window.Window {
	return m.win
}

// State returns a snapshot of the current state.
func (m *Model) State() State {
	return m.state
}

// Caret returns the caret address.
func (m *Model) Caret() int64 {
	return m.state.Caret
}

// Mark returns the mark address, or -1 when there is none.
func (m *Model) Mark() int64 {
	return m.state.Mark
}

// BitShift returns the current bit shift in [0,8).
func (m *Model) BitShift() int {
	return m.state.BitShift
}

// Selecting reports whether caret moves currently leave the mark in place.
func (m *Model) Selecting() bool {
	return m.state.Selecting
}

// Limit returns one past the last valid address.
func (m *Model) Limit() int64 {
	return m.win.Limit()
}

// Reset clears the selection and moves the caret to the start of the source.
// The bit shift is kept.
func (m *Model) Reset() {
	m.state = State{Caret: 0, Mark: -1, BitShift: m.state.BitShift}
	if next, err := TryCaret(m.state, m.win.Limit(), 0); err == nil {
		m.state = next
	}
}

// SetCaret moves the caret to addr, turning the page when addr is outside the
// loaded window. A vetoed move returns a *VetoError; a failed page load returns
// the window's error. In both cases nothing changes.
func (m *Model) SetCaret(addr int64) error {
	next, err := TryCaret(m.state, m.win.Limit(), addr)
	if err != nil {
		return err
	}
	if err := m.turnPage(addr); err != nil {
		return err
	}
	m.state = next
	return nil
}

// turnPage loads the page holding addr. The page moves by exactly one window
// when that is enough; otherwise it jumps to the row containing addr.
func (m *Model) turnPage(addr int64) error {
	if m.win.Contains(addr) {
		return nil
	}
	page := m.win.PageSize()
	target := m.win.Offset() + page
	if addr < m.win.Offset() {
		target = m.win.Offset() - page
	}
	target = m.win.ClampOffset(target)
	if addr < target || addr >= target+page {
		cols := int64(m.win.Cols())
		target = addr - addr%cols
	}
	return m.win.Seek(target)
}

// SetMark moves the mark to addr. The window is not paged.
func (m *Model) SetMark(addr int64) error {
	next, err := TryMark(m.state, m.win.Limit(), addr)
	if err != nil {
		return err
	}
	m.state = next
	return nil
}

// SetBitShift sets the bit shift to v. Values outside [0,8) first move the
// caret by whole bytes; if that move is vetoed at either end of the source the
// caret stays put and only the normalised shift is applied. A failed page load
// changes nothing and is returned.
func (m *Model) SetBitShift(v int) error {
	delta, shift := NormalizeShift(v)
	if delta != 0 {
		var veto *VetoError
		if err := m.SetCaret(m.state.Caret + delta); err != nil && !errors.As(err, &veto) {
			return err
		}
	}
	if err := m.win.SetBitShift(shift); err != nil {
		return err
	}
	m.state.BitShift = shift
	return nil
}

// BeginSelecting stops caret moves from dragging the mark.
func (m *Model) BeginSelecting() {
	m.state.Selecting = true
}

// EndSelecting makes the mark follow the caret again on the next move.
func (m *Model) EndSelecting() {
	m.state.Selecting = false
}

// Seek loads the page at addr without moving the caret.
func (m *Model) Seek(addr int64) error {
	return m.win.Seek(addr)
}

// Skip moves the page by delta bytes without moving the caret.
func (m *Model) Skip(delta int64) error {
	return m.win.Skip(delta)
}

// Revalidate clamps caret and mark into the current limit, for use after the
// source length has changed underneath the model.
func (m *Model) Revalidate() {
	limit := m.win.Limit()
	last := max(limit-1, 0)
	if m.state.Caret > last {
		m.state.Caret = last
	}
	if m.state.Mark > last {
		m.state.Mark = last
	}
	if limit == 0 {
		m.state.Caret = 0
		m.state.Mark = -1
	}
}

// SetPalette sets the colours cycled through by committed tags.
// An empty palette restores DefaultTagColor.
func (m *Model) SetPalette(colors []string) {
	if len(colors) == 0 {
		m.palette = []string{DefaultTagColor}
		return
	}
	m.palette = append([]string(nil), colors...)
}

// Commit appends the current selection to the tag list and returns it.
func (m *Model) Commit(label string) Tag {
	tag := Tag{
		ID:    uuid.New(),
		Mark:  m.state.Mark,
		Caret: m.state.Caret,
		Label: label,
		Color: m.palette[len(m.tags)%len(m.palette)],
	}
	m.tags = append(m.tags, tag)
	return tag
}

// Tags returns the committed tags in insertion order.
func (m *Model) Tags() []Tag {
	out := make([]Tag, len(m.tags))
	copy(out, m.tags)
	return out
}
