// Package grid holds the character panels the hex view renders into and the
// mapping between linear addresses, grid cells and pixel positions.
package grid

import "github.com/dshills/hexstorm/internal/renderer/core"

// Grid is a fixed-size, row-major panel of characters with per-cell
// foreground and background colours. Index = x + y*width.
type Grid struct {
	width, height int
	xPos, yPos    int

	chars []rune
	fg    []core.Color
	bg    []core.Color

	defaultFg core.Color
	defaultBg core.Color

	// write position used by Write
	pos int
}

// New creates a width×height grid whose top-left cell sits at (xPos, yPos)
// in the parent layout. Negative sizes are treated as zero.
func New(width, height, xPos, yPos int) *Grid {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	g := &Grid{
		width:     width,
		height:    height,
		xPos:      xPos,
		yPos:      yPos,
		chars:     make([]rune, n),
		fg:        make([]core.Color, n),
		bg:        make([]core.Color, n),
		defaultFg: core.ColorDefault,
		defaultBg: core.ColorDefault,
	}
	g.Clear()
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.chars) }

// Origin returns the grid's position in the parent layout, in cells.
func (g *Grid) Origin() core.Point { return core.Pt(g.xPos, g.yPos) }

// SetDefaultColors sets the colours Clear restores.
func (g *Grid) SetDefaultColors(fg, bg core.Color) {
	g.defaultFg = fg
	g.defaultBg = bg
}

// DefaultColors returns the colours Clear restores.
func (g *Grid) DefaultColors() (fg, bg core.Color) {
	return g.defaultFg, g.defaultBg
}

// Clear blanks every cell, restores the default colours and rewinds the
// write position.
func (g *Grid) Clear() {
	for i := range g.chars {
		g.chars[i] = ' '
		g.fg[i] = g.defaultFg
		g.bg[i] = g.defaultBg
	}
	g.pos = 0
}

// Position moves the write position to (x, y).
func (g *Grid) Position(x, y int) {
	g.pos = x + y*g.width
}

// Write writes s at the write position and advances it, wrapping onto the
// next row. Runes past the end of the grid are dropped. It returns the number
// of runes stored.
func (g *Grid) Write(s string) int {
	n := 0
	for _, r := range s {
		if g.pos >= 0 && g.pos < len(g.chars) {
			g.chars[g.pos] = r
			n++
		}
		g.pos++
	}
	return n
}

// WriteAt positions the write position at (x, y) and writes s.
func (g *Grid) WriteAt(x, y int, s string) int {
	g.Position(x, y)
	return g.Write(s)
}

// Set stores r at cell index i. Out-of-range indices are ignored.
func (g *Grid) Set(i int, r rune) {
	if i >= 0 && i < len(g.chars) {
		g.chars[i] = r
	}
}

// SetColors sets the colours of cell index i. Out-of-range indices are ignored.
func (g *Grid) SetColors(i int, fg, bg core.Color) {
	if i >= 0 && i < len(g.chars) {
		g.fg[i] = fg
		g.bg[i] = bg
	}
}

// Rune returns the character at cell index i, or 0 when out of range.
func (g *Grid) Rune(i int) rune {
	if i < 0 || i >= len(g.chars) {
		return 0
	}
	return g.chars[i]
}

// At returns the cell at index i. Out-of-range indices yield an empty cell.
func (g *Grid) At(i int) core.Cell {
	if i < 0 || i >= len(g.chars) {
		return core.EmptyCell()
	}
	return core.NewStyledCell(g.chars[i], core.NewStyle(g.fg[i], g.bg[i]))
}

// Row returns row y as a string.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	return string(g.chars[y*g.width : (y+1)*g.width])
}
