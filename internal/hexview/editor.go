// Package hexview is the hex editing widget: it owns the paged window and
// caret model, renders them into the line, header, hex, text, shift and calc
// panels, and turns key and mouse events into caret transitions.
package hexview

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/hexstorm/internal/engine/caret"
	"github.com/dshills/hexstorm/internal/engine/readout"
	"github.com/dshills/hexstorm/internal/engine/source"
	"github.com/dshills/hexstorm/internal/engine/window"
	"github.com/dshills/hexstorm/internal/renderer/core"
	"github.com/dshills/hexstorm/internal/renderer/grid"
)

// Panel names in the layout.
const (
	PanelHex    = "hex"
	PanelText   = "text"
	PanelLines  = "lines"
	PanelHeader = "header"
	PanelShift  = "shift"
	PanelCalc   = "calc"
)

// Calc panel geometry.
const (
	calcWidth  = 54
	calcHeight = 6
	calcLE     = 6
	calcBE     = 18
	calcBinGap = 9
)

var calcLabels = [calcHeight]string{"   8", "±  8", "  16", "± 16", "  32", "± 32"}

// Editor is a hex view over one byte source.
// It is not safe for concurrent use.
type Editor struct {
	opts  Options
	win   *window.Window
	model *caret.Model

	layout *grid.Layout
	hex    *grid.Grid
	text   *grid.Grid
	lines  *grid.Grid
	header *grid.Grid
	shift  *grid.Grid
	calc   *grid.Grid

	mouseDown bool
}

// New creates an editor with no source attached.
func New(opts Options) (*Editor, error) {
	win, err := window.New(opts.Cols, opts.Rows)
	if err != nil {
		return nil, err
	}
	opts.CellW = max(opts.CellW, 1)
	opts.CellH = max(opts.CellH, 1)

	e := &Editor{
		opts:   opts,
		win:    win,
		model:  caret.NewModel(win),
		layout: grid.NewLayout(),
	}
	e.model.SetPalette(opts.TagColors)

	cols, rows := opts.Cols, opts.Rows
	e.hex = grid.New(cols*3, rows, 9, 1)
	e.text = grid.New(cols, rows, 9+cols*3, 1)
	e.lines = grid.New(8, rows, 0, 1)
	e.lines.SetDefaultColors(core.ColorGreen, core.ColorDarkGray)
	e.header = grid.New(cols*3-1, 1, 9, 0)
	e.header.SetDefaultColors(core.ColorBlack, core.ColorWhite)
	e.shift = grid.New(1, 1, 0, 0)
	e.shift.SetDefaultColors(core.ColorCyan, core.ColorBlack)
	e.calc = grid.New(calcWidth, calcHeight, 0, rows+2)

	e.layout.Add(PanelHex, e.hex)
	e.layout.Add(PanelText, e.text)
	e.layout.Add(PanelLines, e.lines)
	e.layout.Add(PanelHeader, e.header)
	e.layout.Add(PanelShift, e.shift)
	e.layout.Add(PanelCalc, e.calc)

	e.Update()
	return e, nil
}

// Model returns the caret model.
func (e *Editor) Model() *caret.Model { return e.model }

// Window returns the paged window.
func (e *Editor) Window() *window.Window { return e.win }

// Layout returns the panels in paint order.
func (e *Editor) Layout() *grid.Layout { return e.layout }

// Options returns the options the editor was created with.
func (e *Editor) Options() Options { return e.opts }

// SetSource attaches src, resets the caret and selection, and redraws.
// A read failure leaves an empty page but the source attached.
func (e *Editor) SetSource(src source.ByteSource) error {
	err := e.win.SetSource(src)
	e.model.Reset()
	e.Update()
	return err
}

// GoTo moves the caret to addr, paging as needed.
func (e *Editor) GoTo(addr int64) error {
	if err := e.model.SetCaret(addr); err != nil {
		return err
	}
	e.Update()
	return nil
}

// Reload re-reads the source length and the current page, then clamps the
// caret and mark into the new bounds.
func (e *Editor) Reload() error {
	err := e.win.Reload()
	e.model.Revalidate()
	e.Update()
	return err
}

// Update clears every panel and repopulates it from the window and model.
func (e *Editor) Update() {
	e.layout.Clear()
	e.writeHeader()
	e.writeLines()
	e.shift.WriteAt(0, 0, strconv.Itoa(e.model.BitShift()))
	e.writeData()
	e.writeCalc()
}

func (e *Editor) writeHeader() {
	var sb strings.Builder
	for i := 0; i < e.opts.Cols; i++ {
		fmt.Fprintf(&sb, " %02X", i&0xFF)
	}
	e.header.WriteAt(0, 0, sb.String()[1:])
}

func (e *Editor) writeLines() {
	offset := e.win.Offset()
	for row := 0; row < e.opts.Rows; row++ {
		e.lines.WriteAt(0, row, fmt.Sprintf("%08X", offset+int64(row*e.opts.Cols)))
	}
}

func (e *Editor) writeData() {
	cur := e.win.Cursor()
	if err := cur.Position(0, e.win.BitShift()); err != nil {
		return
	}
	for row := 0; row < e.opts.Rows && cur.HasRemaining(); row++ {
		b, err := cur.Get(min(cur.Remaining(), e.opts.Cols))
		if err != nil {
			return
		}
		var hex strings.Builder
		text := make([]rune, len(b))
		for i, v := range b {
			fmt.Fprintf(&hex, " %02X", v)
			text[i] = e.opts.Charset.DisplayRune(v)
		}
		e.hex.WriteAt(0, row, hex.String()[1:])
		e.text.WriteAt(0, row, string(text))
	}
}

// writeCalc fills the numeric readout for the bytes at the caret. Widths the
// remaining bytes cannot cover are left blank.
func (e *Editor) writeCalc() {
	pos := e.model.Caret() - e.win.Offset()
	if pos < 0 || pos > int64(len(e.win.Data())) {
		return
	}
	r, err := readout.At(e.win.Cursor(), int(pos), e.win.BitShift())
	if err != nil || len(r.Bytes()) == 0 {
		return
	}
	for y, label := range calcLabels {
		e.calc.WriteAt(0, y, label)
	}
	if v, ok := r.Unsigned(8, binary.LittleEndian); ok {
		e.calc.WriteAt(calcLE, 0, strconv.FormatUint(v, 10))
	}
	if v, ok := r.Signed(8, binary.LittleEndian); ok {
		e.writeSigned(calcLE, 1, v)
	}
	for i, bits := range r.Binary() {
		e.calc.WriteAt(calcBE+i*calcBinGap, 0, bits)
	}
	for i, bits := range []int{16, 32} {
		row := 2 + 2*i
		for _, col := range []struct {
			x     int
			order binary.ByteOrder
		}{{calcLE, binary.LittleEndian}, {calcBE, binary.BigEndian}} {
			if v, ok := r.Unsigned(bits, col.order); ok {
				e.calc.WriteAt(col.x, row, strconv.FormatUint(v, 10))
			}
			if v, ok := r.Signed(bits, col.order); ok {
				e.writeSigned(col.x, row+1, v)
			}
		}
	}
}

// writeSigned writes v so its digits line up with unsigned values above it.
func (e *Editor) writeSigned(x, y int, v int64) {
	if v < 0 {
		x--
	}
	e.calc.WriteAt(x, y, strconv.FormatInt(v, 10))
}

// Commit records the current selection as a tag.
func (e *Editor) Commit(label string) caret.Tag {
	return e.model.Commit(label)
}
