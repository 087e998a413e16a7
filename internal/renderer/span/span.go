// Package span builds the outline of a selection on a grid. A selection that
// covers several rows is drawn as one connected polygon rather than a
// rectangle per row.
package span

import (
	"github.com/dshills/hexstorm/internal/renderer/core"
	"github.com/dshills/hexstorm/internal/renderer/grid"
)

// Column describes how addresses are laid out in a grid: each address is
// Glyphs cells wide followed by Spacing blank cells.
type Column struct {
	Glyphs  int
	Spacing int
}

// Standard columns of the hex view.
var (
	HexColumn  = Column{Glyphs: 2, Spacing: 1}
	TextColumn = Column{Glyphs: 1, Spacing: 0}
)

// Stride returns the number of cells one address occupies.
func (c Column) Stride() int {
	return max(c.Glyphs+c.Spacing, 1)
}

// Addresses returns how many addresses fit in one row of m.
func (c Column) Addresses(m grid.Mapper) int {
	return max(m.Width/c.Stride(), 1)
}

// CellRect returns the pixel rectangle of the window-relative address addr.
func CellRect(m grid.Mapper, c Column, addr int64) core.Rect {
	return m.CellRect(grid.AddressToCell(addr, c.Stride()), c.Glyphs)
}

// Outline returns the polygon enclosing every address between the
// window-relative addresses mark and caret, inclusive. Addresses outside the
// grid are clamped to its first or last cell.
func Outline(m grid.Mapper, c Column, mark, caret int64) core.Polygon {
	cols := int64(c.Addresses(m))
	last := max(cols*int64(m.Height)-1, 0)
	markIdx := min(max(mark, 0), last)
	caretIdx := min(max(caret, 0), last)

	local := m
	local.XPos, local.YPos = 0, 0
	mp := local.CellToPixel(grid.AddressToCell(markIdx, c.Stride()))
	cp := local.CellToPixel(grid.AddressToCell(caretIdx, c.Stride()))

	relX := caretIdx - markIdx
	relY := caretIdx/cols - markIdx/cols

	glyphW := m.CellW * c.Glyphs
	ch := m.CellH
	if relX >= 0 {
		cp.X += glyphW
	} else {
		mp.X += glyphW
	}
	if relY >= 0 {
		cp.Y += ch
	} else {
		mp.Y += ch
	}
	right := (int(cols)*c.Stride() - c.Spacing) * m.CellW

	var pg core.Polygon
	pg.Add(mp.X, mp.Y)
	switch {
	case relY > 0:
		pg.Add(right, mp.Y)
		pg.Add(right, cp.Y-ch)
		pg.Add(cp.X, cp.Y-ch)
	case relY < 0:
		pg.Add(0, mp.Y)
		pg.Add(0, cp.Y+ch)
		pg.Add(cp.X, cp.Y+ch)
	default:
		pg.Add(cp.X, mp.Y)
	}
	pg.Add(cp.X, cp.Y)
	switch {
	case relY > 0:
		pg.Add(0, cp.Y)
		pg.Add(0, mp.Y+ch)
		pg.Add(mp.X, mp.Y+ch)
	case relY < 0:
		pg.Add(right, cp.Y)
		pg.Add(right, mp.Y-ch)
		pg.Add(mp.X, mp.Y-ch)
	default:
		pg.Add(mp.X, cp.Y)
	}

	pg.Translate(m.XPos*m.CellW, m.YPos*m.CellH)
	return pg
}
