package hexview

import (
	"github.com/dshills/hexstorm/internal/engine/caret"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

// wheelRows is how many rows one wheel notch scrolls.
const wheelRows = 3

var keyActions = map[backend.Key]caret.Action{
	backend.KeyUp:       caret.ActionUp,
	backend.KeyDown:     caret.ActionDown,
	backend.KeyLeft:     caret.ActionLeft,
	backend.KeyRight:    caret.ActionRight,
	backend.KeyHome:     caret.ActionHome,
	backend.KeyEnd:      caret.ActionEnd,
	backend.KeyPageUp:   caret.ActionPageUp,
	backend.KeyPageDown: caret.ActionPageDown,
	backend.KeyEnter:    caret.ActionCommit,
}

// ActionFor returns the caret action bound to a key event.
func ActionFor(ev backend.Event) caret.Action {
	if ev.Type != backend.EventKey {
		return caret.ActionNone
	}
	return keyActions[ev.Key]
}

// HandleKey applies a key event. handled is false for keys the editor does
// not use. A vetoed or failed transition changes nothing and is returned.
func (e *Editor) HandleKey(ev backend.Event) (handled bool, err error) {
	if ev.Type != backend.EventKey {
		return false, nil
	}
	if ev.Key == backend.KeyRune {
		switch ev.Rune {
		case '+':
			err = e.model.SetBitShift(e.model.BitShift() + 1)
		case '-':
			err = e.model.SetBitShift(e.model.BitShift() - 1)
		default:
			return false, nil
		}
		e.Update()
		return true, err
	}

	a := ActionFor(ev)
	if a == caret.ActionNone {
		return false, nil
	}
	wasSelecting := e.model.Selecting()
	if a != caret.ActionCommit {
		e.setSelecting(ev.Mod.Has(backend.ModShift))
	}
	if err := e.model.Do(a, ev.Mod.Has(backend.ModCtrl)); err != nil {
		e.setSelecting(wasSelecting)
		return true, err
	}
	e.Update()
	return true, nil
}

// HandleMouse applies a mouse event. A left press places the caret and mark,
// dragging moves only the caret, the wheel scrolls and ctrl+wheel steps the
// bit shift.
func (e *Editor) HandleMouse(ev backend.Event) (handled bool, err error) {
	if ev.Type != backend.EventMouse {
		return false, nil
	}
	switch ev.MouseButton {
	case backend.MouseWheelUp, backend.MouseWheelDown:
		units := 1
		if ev.MouseButton == backend.MouseWheelUp {
			units = -1
		}
		if ev.Mod.Has(backend.ModCtrl) {
			err = e.model.SetBitShift(e.model.BitShift() + units)
		} else {
			err = e.model.Skip(int64(units * wheelRows * e.opts.Cols))
		}
		if err != nil {
			return true, err
		}
		e.Update()
		return true, nil

	case backend.MouseLeft:
		if !e.mouseDown {
			e.mouseDown = true
			if ev.Mod.Has(backend.ModShift) {
				e.model.BeginSelecting()
			} else {
				e.model.EndSelecting()
			}
			err = e.click(ev.MouseX, ev.MouseY)
			e.model.BeginSelecting()
		} else {
			err = e.click(ev.MouseX, ev.MouseY)
		}
		if err != nil {
			return true, err
		}
		e.Update()
		return true, nil

	case backend.MouseNone:
		if e.mouseDown {
			e.mouseDown = false
			e.model.EndSelecting()
			return true, nil
		}
	}
	return false, nil
}

func (e *Editor) setSelecting(on bool) {
	if on {
		e.model.BeginSelecting()
	} else {
		e.model.EndSelecting()
	}
}

// click moves the caret to the address under terminal cell (x, y).
func (e *Editor) click(x, y int) error {
	p := core.Pt(x*e.opts.CellW, y*e.opts.CellH)
	name, cell, ok := e.layout.HitTest(p, e.opts.CellW, e.opts.CellH)
	if !ok {
		return nil
	}
	switch name {
	case PanelHex:
		return e.model.ClickHex(cell)
	case PanelText:
		return e.model.ClickText(cell)
	}
	return nil
}
