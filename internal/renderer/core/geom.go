package core

// Point is an integer position in pixel (or cell) space.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Polygon is a closed outline given by its vertices in order.
type Polygon struct {
	Points []Point
}

// Add appends a vertex.
func (pg *Polygon) Add(x, y int) {
	pg.Points = append(pg.Points, Point{X: x, Y: y})
}

// Translate moves every vertex by (dx, dy).
func (pg *Polygon) Translate(dx, dy int) {
	for i := range pg.Points {
		pg.Points[i].X += dx
		pg.Points[i].Y += dy
	}
}

// Bounds returns the smallest rectangle holding every vertex.
func (pg Polygon) Bounds() Rect {
	if len(pg.Points) == 0 {
		return Rect{}
	}
	minX, minY := pg.Points[0].X, pg.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range pg.Points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ContainsCenter reports whether the centre of the w×h box whose top-left
// corner is (x, y) lies inside the polygon (even-odd rule). Coordinates are
// doubled so odd-sized boxes have integer centres.
func (pg Polygon) ContainsCenter(x, y, w, h int) bool {
	px, py := 2*x+w, 2*y+h
	inside := false
	n := len(pg.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		ax, ay := 2*pg.Points[i].X, 2*pg.Points[i].Y
		bx, by := 2*pg.Points[j].X, 2*pg.Points[j].Y
		if (ay > py) == (by > py) {
			continue
		}
		// x coordinate of the edge at py, compared without division.
		lhs := (px - ax) * (by - ay)
		rhs := (bx - ax) * (py - ay)
		if by > ay {
			if lhs < rhs {
				inside = !inside
			}
		} else if lhs > rhs {
			inside = !inside
		}
	}
	return inside
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a screen rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
