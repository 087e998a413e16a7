package grid

import "github.com/dshills/hexstorm/internal/renderer/core"

// Mapper converts between window-relative addresses, cell indices and pixel
// positions for one grid. A terminal uses 1×1 cells.
type Mapper struct {
	Width, Height int
	CellW, CellH  int
	XPos, YPos    int
}

// Mapper returns the mapper for g with the given cell size in pixels.
func (g *Grid) Mapper(cellW, cellH int) Mapper {
	return Mapper{
		Width:  g.width,
		Height: g.height,
		CellW:  max(cellW, 1),
		CellH:  max(cellH, 1),
		XPos:   g.xPos,
		YPos:   g.yPos,
	}
}

// CellToAddress returns the window-relative address shown at cell when each
// address occupies stride cells.
func CellToAddress(cell, stride int) int64 {
	return int64(cell / max(stride, 1))
}

// AddressToCell returns the first cell of the window-relative address addr.
func AddressToCell(addr int64, stride int) int {
	return int(addr) * max(stride, 1)
}

// CellToPixel returns the top-left pixel of cell, including the grid origin.
func (m Mapper) CellToPixel(cell int) core.Point {
	w := max(m.Width, 1)
	return core.Pt(
		(cell%w)*m.CellW+m.XPos*m.CellW,
		(cell/w)*m.CellH+m.YPos*m.CellH,
	)
}

// PixelToCell returns the cell under pixel (x, y), or -1 outside the grid.
func (m Mapper) PixelToCell(x, y int) int {
	x -= m.XPos * m.CellW
	y -= m.YPos * m.CellH
	if x < 0 || y < 0 || x >= m.Width*m.CellW || y >= m.Height*m.CellH {
		return -1
	}
	return x/m.CellW + (y/m.CellH)*m.Width
}

// CellRect returns the pixel rectangle covering glyphs cells starting at cell.
func (m Mapper) CellRect(cell, glyphs int) core.Rect {
	p := m.CellToPixel(cell)
	return core.Rect{X: p.X, Y: p.Y, Width: m.CellW * glyphs, Height: m.CellH}
}

// Bounds returns the pixel rectangle covered by the grid.
func (m Mapper) Bounds() core.Rect {
	return core.Rect{
		X:      m.XPos * m.CellW,
		Y:      m.YPos * m.CellH,
		Width:  m.Width * m.CellW,
		Height: m.Height * m.CellH,
	}
}
