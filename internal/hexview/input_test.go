package hexview

import (
	"errors"
	"testing"

	"github.com/dshills/hexstorm/internal/engine/caret"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

func key(k backend.Key, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Mod: mod}
}

func mouse(x, y int, b backend.MouseButton, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventMouse, MouseX: x, MouseY: y, MouseButton: b, Mod: mod}
}

func TestHandleKeySequence(t *testing.T) {
	e := newEditor(t, seq(1024))

	steps := []struct {
		name      string
		ev        backend.Event
		caret     int64
		mark      int64
		offset    int64
		selecting bool
		wantVeto  bool
	}{
		{"down", key(backend.KeyDown, 0), 16, 16, 0, false, false},
		{"shift right", key(backend.KeyRight, backend.ModShift), 17, 16, 0, true, false},
		{"shift end", key(backend.KeyEnd, backend.ModShift), 31, 16, 0, true, false},
		{"right ends selection", key(backend.KeyRight, 0), 32, 32, 0, false, false},
		{"home", key(backend.KeyHome, 0), 32, 32, 0, false, false},
		{"up", key(backend.KeyUp, 0), 16, 16, 0, false, false},
		{"up", key(backend.KeyUp, 0), 0, 0, 0, false, false},
		{"up vetoed", key(backend.KeyUp, 0), 0, 0, 0, false, true},
		{"shift left vetoed keeps selecting off", key(backend.KeyLeft, backend.ModShift), 0, 0, 0, false, true},
		{"shift right", key(backend.KeyRight, backend.ModShift), 1, 0, 0, true, false},
		{"shift home", key(backend.KeyHome, backend.ModShift), 0, 0, 0, true, false},
		{"left vetoed keeps selecting on", key(backend.KeyLeft, 0), 0, 0, 0, true, true},
		{"ctrl end", key(backend.KeyEnd, backend.ModCtrl), 0, 0, 768, false, false},
		{"page up", key(backend.KeyPageUp, 0), 0, 0, 752, false, false},
		{"ctrl home", key(backend.KeyHome, backend.ModCtrl), 0, 0, 0, false, false},
	}
	for _, s := range steps {
		handled, err := e.HandleKey(s.ev)
		if !handled {
			t.Fatalf("%s: not handled", s.name)
		}
		if s.wantVeto != errors.Is(err, caret.ErrOutOfBounds) {
			t.Fatalf("%s: error = %v, want veto %v", s.name, err, s.wantVeto)
		}
		if !s.wantVeto && err != nil {
			t.Fatalf("%s: unexpected error %v", s.name, err)
		}
		m := e.Model()
		if m.Caret() != s.caret || m.Mark() != s.mark || e.Window().Offset() != s.offset {
			t.Fatalf("%s: caret=%d mark=%d offset=%d, want %d/%d/%d",
				s.name, m.Caret(), m.Mark(), e.Window().Offset(), s.caret, s.mark, s.offset)
		}
		if m.Selecting() != s.selecting {
			t.Fatalf("%s: Selecting() = %v, want %v", s.name, m.Selecting(), s.selecting)
		}
	}
}

func TestHandleKeyCommit(t *testing.T) {
	e := newEditor(t, seq(64))
	_, _ = e.HandleKey(key(backend.KeyRight, backend.ModShift))
	_, _ = e.HandleKey(key(backend.KeyRight, backend.ModShift))

	if _, err := e.HandleKey(key(backend.KeyEnter, 0)); err != nil {
		t.Fatal(err)
	}
	tags := e.Tags()
	if len(tags) != 1 {
		t.Fatalf("len(Tags()) = %d, want 1", len(tags))
	}
	if tags[0].Mark != 0 || tags[0].Caret != 2 {
		t.Errorf("tag = %d..%d, want 0..2", tags[0].Mark, tags[0].Caret)
	}
	// Commit does not end the selection.
	if !e.Model().Selecting() {
		t.Error("Selecting() = false after commit, want true")
	}
}

func TestHandleKeyIgnored(t *testing.T) {
	e := newEditor(t, seq(64))
	for _, ev := range []backend.Event{
		{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'z'},
		{Type: backend.EventKey, Key: backend.KeyEscape},
		{Type: backend.EventResize},
	} {
		if handled, err := e.HandleKey(ev); handled || err != nil {
			t.Errorf("HandleKey(%+v) = %v, %v; want false, nil", ev, handled, err)
		}
	}
	if got := ActionFor(key(backend.KeyPageDown, 0)); got != caret.ActionPageDown {
		t.Errorf("ActionFor(PgDn) = %v, want pagedown", got)
	}
}

func TestMouseClickAndDrag(t *testing.T) {
	e := newEditor(t, seq(1024))

	// Press on the second hex pair of row 0.
	if _, err := e.HandleMouse(mouse(12, 1, backend.MouseLeft, 0)); err != nil {
		t.Fatal(err)
	}
	if e.Model().Caret() != 1 || e.Model().Mark() != 1 {
		t.Fatalf("after press caret=%d mark=%d, want 1/1", e.Model().Caret(), e.Model().Mark())
	}

	// Drag into the text column, row 1 column 5.
	if _, err := e.HandleMouse(mouse(62, 2, backend.MouseLeft, 0)); err != nil {
		t.Fatal(err)
	}
	if e.Model().Caret() != 21 || e.Model().Mark() != 1 {
		t.Fatalf("after drag caret=%d mark=%d, want 21/1", e.Model().Caret(), e.Model().Mark())
	}

	if handled, _ := e.HandleMouse(mouse(62, 2, backend.MouseNone, 0)); !handled {
		t.Error("release not handled")
	}
	if e.Model().Selecting() {
		t.Error("Selecting() = true after release")
	}

	// A press on a separator cell changes nothing.
	_, _ = e.HandleMouse(mouse(11, 1, backend.MouseLeft, 0))
	_, _ = e.HandleMouse(mouse(11, 1, backend.MouseNone, 0))
	if e.Model().Caret() != 21 || e.Model().Mark() != 1 {
		t.Errorf("after separator click caret=%d mark=%d, want 21/1", e.Model().Caret(), e.Model().Mark())
	}

	// Shift+press extends from the existing mark.
	_, _ = e.HandleMouse(mouse(9, 3, backend.MouseLeft, backend.ModShift))
	if e.Model().Caret() != 32 || e.Model().Mark() != 1 {
		t.Errorf("after shift press caret=%d mark=%d, want 32/1", e.Model().Caret(), e.Model().Mark())
	}
}

func TestMouseOutsidePanels(t *testing.T) {
	e := newEditor(t, seq(64))
	_ = e.GoTo(5)
	if _, err := e.HandleMouse(mouse(0, 0, backend.MouseLeft, 0)); err != nil {
		t.Fatal(err)
	}
	if e.Model().Caret() != 5 {
		t.Errorf("Caret() = %d, want 5", e.Model().Caret())
	}
	// A hex click past the data is vetoed.
	_, _ = e.HandleMouse(mouse(0, 0, backend.MouseNone, 0))
	_, err := e.HandleMouse(mouse(9, 10, backend.MouseLeft, 0))
	if !errors.Is(err, caret.ErrOutOfBounds) {
		t.Errorf("click past data error = %v, want ErrOutOfBounds", err)
	}
}

func TestMouseWheel(t *testing.T) {
	e := newEditor(t, seq(1024))

	_, _ = e.HandleMouse(mouse(20, 5, backend.MouseWheelDown, 0))
	if got := e.Window().Offset(); got != 48 {
		t.Errorf("Offset() after wheel down = %d, want 48", got)
	}
	_, _ = e.HandleMouse(mouse(20, 5, backend.MouseWheelUp, 0))
	_, _ = e.HandleMouse(mouse(20, 5, backend.MouseWheelUp, 0))
	if got := e.Window().Offset(); got != 0 {
		t.Errorf("Offset() after wheel up = %d, want 0", got)
	}

	// Stepping below zero at the start of the source keeps the caret.
	if _, err := e.HandleMouse(mouse(20, 5, backend.MouseWheelUp, backend.ModCtrl)); err != nil {
		t.Fatal(err)
	}
	if e.Model().BitShift() != 7 || e.Model().Caret() != 0 {
		t.Errorf("shift=%d caret=%d, want 7/0", e.Model().BitShift(), e.Model().Caret())
	}
	_, _ = e.HandleMouse(mouse(20, 5, backend.MouseWheelDown, backend.ModCtrl))
	if e.Model().BitShift() != 0 || e.Model().Caret() != 1 {
		t.Errorf("shift=%d caret=%d, want 0/1", e.Model().BitShift(), e.Model().Caret())
	}
}

func TestOverlay(t *testing.T) {
	e := newEditor(t, seq(1024))
	_, _ = e.HandleMouse(mouse(12, 1, backend.MouseLeft, 0))
	_, _ = e.HandleMouse(mouse(62, 2, backend.MouseLeft, 0))
	_, _ = e.HandleMouse(mouse(62, 2, backend.MouseNone, 0))

	ov := e.Overlay()
	if len(ov.Outlines) != 2 {
		t.Fatalf("len(Outlines) = %d, want 2", len(ov.Outlines))
	}
	for _, o := range ov.Outlines {
		if !o.Color.Equals(core.ColorRed) {
			t.Errorf("selection color = %v, want red", o.Color)
		}
	}
	if len(ov.Highlights) != 4 {
		t.Fatalf("len(Highlights) = %d, want 4", len(ov.Highlights))
	}
	if got := ov.Highlights[0]; !got.Color.Equals(core.ColorYellow) || got.Rect != (core.Rect{X: 12, Y: 1, Width: 2, Height: 1}) {
		t.Errorf("mark hex highlight = %+v", got)
	}
	if got := ov.Highlights[3]; !got.Color.Equals(core.ColorWhite) || got.Rect != (core.Rect{X: 62, Y: 2, Width: 1, Height: 1}) {
		t.Errorf("caret text highlight = %+v", got)
	}

	e.Commit("header")
	ov = e.Overlay()
	if len(ov.Outlines) != 4 {
		t.Fatalf("len(Outlines) after commit = %d, want 4", len(ov.Outlines))
	}
	if want := core.MustParseColor(Palette(6)[0]); !ov.Outlines[0].Color.Equals(want) {
		t.Errorf("tag color = %v, want %v", ov.Outlines[0].Color, want)
	}

	// Everything is off the page once it moves away.
	if err := e.Model().Seek(512); err != nil {
		t.Fatal(err)
	}
	ov = e.Overlay()
	if len(ov.Outlines) != 0 || len(ov.Highlights) != 0 {
		t.Errorf("off-page overlay = %d outlines, %d highlights; want none", len(ov.Outlines), len(ov.Highlights))
	}
}
