package grid

import "github.com/dshills/hexstorm/internal/renderer/core"

// Layout is an ordered set of named grids placed on a common surface.
// Later grids paint over earlier ones.
type Layout struct {
	names  []string
	panels map[string]*Grid
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{panels: make(map[string]*Grid)}
}

// Add places g under name. Re-adding a name replaces the grid but keeps its
// paint order.
func (l *Layout) Add(name string, g *Grid) {
	if _, ok := l.panels[name]; !ok {
		l.names = append(l.names, name)
	}
	l.panels[name] = g
}

// Get returns the grid registered under name.
func (l *Layout) Get(name string) (*Grid, bool) {
	g, ok := l.panels[name]
	return g, ok
}

// Names returns the grid names in paint order.
func (l *Layout) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Each calls fn for every grid in paint order.
func (l *Layout) Each(fn func(name string, g *Grid)) {
	for _, name := range l.names {
		fn(name, l.panels[name])
	}
}

// Clear clears every grid.
func (l *Layout) Clear() {
	for _, g := range l.panels {
		g.Clear()
	}
}

// Extent returns the size in cells of the smallest surface holding every grid.
func (l *Layout) Extent() (width, height int) {
	for _, g := range l.panels {
		o := g.Origin()
		width = max(width, o.X+g.Width())
		height = max(height, o.Y+g.Height())
	}
	return width, height
}

// HitTest returns the topmost grid under pixel p and the cell index within it.
func (l *Layout) HitTest(p core.Point, cellW, cellH int) (name string, cell int, ok bool) {
	for i := len(l.names) - 1; i >= 0; i-- {
		g := l.panels[l.names[i]]
		if c := g.Mapper(cellW, cellH).PixelToCell(p.X, p.Y); c >= 0 {
			return l.names[i], c, true
		}
	}
	return "", -1, false
}
