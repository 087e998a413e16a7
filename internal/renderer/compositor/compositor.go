// Package compositor paints a grid layout and its selection overlay onto a
// backend. Terminal cells are the backend's pixels: an outline polygon
// highlights every cell whose centre it contains.
package compositor

import (
	"strings"

	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/core"
	"github.com/dshills/hexstorm/internal/renderer/grid"
)

// Outline is a coloured selection polygon in layout pixels.
type Outline struct {
	Color   core.Color
	Polygon core.Polygon
}

// Highlight is a coloured rectangle in layout pixels, such as the caret.
type Highlight struct {
	Color core.Color
	Rect  core.Rect
}

// Overlay is everything drawn on top of the grids.
type Overlay struct {
	Outlines   []Outline
	Highlights []Highlight
}

// selectionShade is how far outline colours are darkened so text stays legible.
const selectionShade = 0.55

// Compositor renders layouts onto a backend.
type Compositor struct {
	backend      backend.Backend
	cellW, cellH int
}

// New creates a compositor. cellW and cellH are the layout's pixel size of one
// backend cell.
func New(b backend.Backend, cellW, cellH int) *Compositor {
	return &Compositor{backend: b, cellW: max(cellW, 1), cellH: max(cellH, 1)}
}

// Render clears the backend, paints every grid in layout order, applies the
// overlay and shows the result.
func (c *Compositor) Render(l *grid.Layout, ov Overlay) {
	c.backend.Clear()
	l.Each(func(_ string, g *grid.Grid) {
		c.paintGrid(g)
	})
	for _, o := range ov.Outlines {
		c.paintOutline(o)
	}
	for _, h := range ov.Highlights {
		c.paintHighlight(h)
	}
	c.backend.Show()
}

func (c *Compositor) paintGrid(g *grid.Grid) {
	o := g.Origin()
	w := g.Width()
	for i := 0; i < g.Len(); i++ {
		c.backend.SetCell(o.X+i%w, o.Y+i/w, g.At(i))
	}
}

func (c *Compositor) paintOutline(o Outline) {
	if len(o.Polygon.Points) < 3 {
		return
	}
	shade := o.Color.Blend(core.ColorBlack, selectionShade)
	b := o.Polygon.Bounds()
	for y := b.Y / c.cellH; y*c.cellH < b.Y+b.Height; y++ {
		for x := b.X / c.cellW; x*c.cellW < b.X+b.Width; x++ {
			if !o.Polygon.ContainsCenter(x*c.cellW, y*c.cellH, c.cellW, c.cellH) {
				continue
			}
			cell := c.backend.GetCell(x, y)
			cell.Style = cell.Style.WithBackground(shade)
			c.backend.SetCell(x, y, cell)
		}
	}
}

func (c *Compositor) paintHighlight(h Highlight) {
	if h.Rect.Empty() {
		return
	}
	for y := h.Rect.Y / c.cellH; y*c.cellH < h.Rect.Y+h.Rect.Height; y++ {
		for x := h.Rect.X / c.cellW; x*c.cellW < h.Rect.X+h.Rect.Width; x++ {
			cell := c.backend.GetCell(x, y)
			cell.Style = core.NewStyle(core.ColorBlack, h.Color)
			c.backend.SetCell(x, y, cell)
		}
	}
}

// Text renders the layout's characters as lines of plain text, one per row
// of the layout extent. Trailing blanks are trimmed.
func Text(l *grid.Layout) []string {
	w, h := l.Extent()
	rows := make([][]rune, h)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(" ", w))
	}
	l.Each(func(_ string, g *grid.Grid) {
		o := g.Origin()
		for i := 0; i < g.Len(); i++ {
			x, y := o.X+i%g.Width(), o.Y+i/g.Width()
			if x >= 0 && y >= 0 && x < w && y < h {
				if r := g.Rune(i); r != 0 {
					rows[y][x] = r
				}
			}
		}
	})
	out := make([]string, h)
	for y, r := range rows {
		out[y] = strings.TrimRight(string(r), " ")
	}
	return out
}
