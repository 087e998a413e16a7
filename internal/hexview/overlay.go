package hexview

import (
	"github.com/dshills/hexstorm/internal/engine/caret"
	"github.com/dshills/hexstorm/internal/renderer/compositor"
	"github.com/dshills/hexstorm/internal/renderer/core"
	"github.com/dshills/hexstorm/internal/renderer/grid"
	"github.com/dshills/hexstorm/internal/renderer/span"
)

type column struct {
	g   *grid.Grid
	col span.Column
}

func (e *Editor) columns() [2]column {
	return [2]column{{e.hex, span.HexColumn}, {e.text, span.TextColumn}}
}

// Overlay returns the outlines of every committed tag and the live
// selection, plus the mark and caret rectangles when they are on the page.
func (e *Editor) Overlay() compositor.Overlay {
	var ov compositor.Overlay

	for _, t := range e.model.Tags() {
		color, err := core.ParseColor(t.Color)
		if err != nil {
			color = e.opts.SelectionColor
		}
		e.addOutline(&ov, t.Mark, t.Caret, color)
	}
	e.addOutline(&ov, e.model.Mark(), e.model.Caret(), e.opts.SelectionColor)

	if m := e.model.Mark(); m >= 0 && e.win.Contains(m) {
		e.addHighlight(&ov, m, e.opts.MarkColor)
	}
	if c := e.model.Caret(); e.win.Limit() > 0 && e.win.Contains(c) {
		e.addHighlight(&ov, c, e.opts.CaretColor)
	}
	return ov
}

func (e *Editor) addOutline(ov *compositor.Overlay, mark, caretAddr int64, color core.Color) {
	if mark < 0 {
		return
	}
	lo, hi := min(mark, caretAddr), max(mark, caretAddr)
	off := e.win.Offset()
	if hi < off || lo >= off+e.win.PageSize() {
		return
	}
	for _, c := range e.columns() {
		m := c.g.Mapper(e.opts.CellW, e.opts.CellH)
		ov.Outlines = append(ov.Outlines, compositor.Outline{
			Color:   color,
			Polygon: span.Outline(m, c.col, mark-off, caretAddr-off),
		})
	}
}

func (e *Editor) addHighlight(ov *compositor.Overlay, addr int64, color core.Color) {
	for _, c := range e.columns() {
		m := c.g.Mapper(e.opts.CellW, e.opts.CellH)
		ov.Highlights = append(ov.Highlights, compositor.Highlight{
			Color: color,
			Rect:  span.CellRect(m, c.col, addr-e.win.Offset()),
		})
	}
}

// Tags returns the committed tags.
func (e *Editor) Tags() []caret.Tag {
	return e.model.Tags()
}
