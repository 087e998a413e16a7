package span

import (
	"reflect"
	"testing"

	"github.com/dshills/hexstorm/internal/renderer/core"
	"github.com/dshills/hexstorm/internal/renderer/grid"
)

func textMapper() grid.Mapper {
	return grid.New(16, 16, 0, 0).Mapper(1, 1)
}

func points(ps ...int) []core.Point {
	out := make([]core.Point, 0, len(ps)/2)
	for i := 0; i+1 < len(ps); i += 2 {
		out = append(out, core.Pt(ps[i], ps[i+1]))
	}
	return out
}

// covered returns, per row, which addresses have their glyph centres inside pg.
func covered(pg core.Polygon, m grid.Mapper, c Column) [][]bool {
	cols := c.Addresses(m)
	out := make([][]bool, m.Height)
	for y := range out {
		out[y] = make([]bool, cols)
		for x := 0; x < cols; x++ {
			r := CellRect(m, c, int64(y*cols+x))
			out[y][x] = pg.ContainsCenter(r.X, r.Y, r.Width, r.Height)
		}
	}
	return out
}

func TestOutline(t *testing.T) {
	tests := []struct {
		name        string
		col         Column
		width       int
		mark, caret int64
		want        []core.Point
	}{
		{
			name:  "same row hex",
			col:   HexColumn,
			width: 48,
			mark:  2, caret: 5,
			want: points(6, 0, 17, 0, 17, 1, 6, 1),
		},
		{
			name:  "same row reversed",
			col:   TextColumn,
			width: 16,
			mark:  5, caret: 2,
			want: points(6, 0, 2, 0, 2, 1, 6, 1),
		},
		{
			name:  "single cell",
			col:   TextColumn,
			width: 16,
			mark:  3, caret: 3,
			want: points(3, 0, 4, 0, 4, 1, 3, 1),
		},
		{
			name:  "caret below mark",
			col:   TextColumn,
			width: 16,
			mark:  18, caret: 33,
			want: points(2, 1, 16, 1, 16, 2, 2, 2, 2, 3, 0, 3, 0, 2, 2, 2),
		},
		{
			name:  "caret above mark",
			col:   TextColumn,
			width: 16,
			mark:  37, caret: 3,
			want: points(6, 3, 0, 3, 0, 1, 3, 1, 3, 0, 16, 0, 16, 2, 6, 2),
		},
		{
			name:  "hex right edge excludes trailing gap",
			col:   HexColumn,
			width: 48,
			mark:  14, caret: 17,
			want: points(42, 0, 47, 0, 47, 1, 5, 1, 5, 2, 0, 2, 0, 1, 42, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := grid.New(tt.width, 16, 0, 0).Mapper(1, 1)
			got := Outline(m, tt.col, tt.mark, tt.caret)
			if !reflect.DeepEqual(got.Points, tt.want) {
				t.Errorf("Outline(%d, %d) = %v, want %v", tt.mark, tt.caret, got.Points, tt.want)
			}
		})
	}
}

func TestOutlineMirroredWhenCaretAbove(t *testing.T) {
	m := textMapper()
	above := Outline(m, TextColumn, 37, 3)
	below := Outline(m, TextColumn, 3, 37)

	// The caret-above outline leaves the mark towards the left edge.
	if above.Points[1].X != 0 {
		t.Errorf("caret above: second vertex = %v, want x=0", above.Points[1])
	}
	if below.Points[1].X != 16 {
		t.Errorf("caret below: second vertex = %v, want x=16", below.Points[1])
	}
	// Both enclose the same cells.
	if a, b := covered(above, m, TextColumn), covered(below, m, TextColumn); !reflect.DeepEqual(a, b) {
		t.Error("mirrored outlines cover different cells")
	}
}

func TestOutlineCoversSelection(t *testing.T) {
	pairs := [][2]int64{{0, 0}, {3, 37}, {37, 3}, {15, 16}, {16, 15}, {0, 255}, {100, 130}, {47, 17}}
	for _, col := range []Column{TextColumn, HexColumn} {
		m := grid.New(16*col.Stride(), 16, 9, 1).Mapper(1, 1)
		for _, p := range pairs {
			pg := Outline(m, col, p[0], p[1])
			lo, hi := min(p[0], p[1]), max(p[0], p[1])
			cov := covered(pg, m, col)
			for y, row := range cov {
				for x, in := range row {
					addr := int64(y*16 + x)
					if want := addr >= lo && addr <= hi; in != want {
						t.Fatalf("%+v mark=%d caret=%d: address %d covered=%v, want %v",
							col, p[0], p[1], addr, in, want)
					}
				}
			}
		}
	}
}

func TestOutlineClampsToWindow(t *testing.T) {
	m := textMapper()
	got := Outline(m, TextColumn, -5, 1000)
	want := Outline(m, TextColumn, 0, 255)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outline(-5, 1000) = %v, want %v", got.Points, want.Points)
	}
	if b := got.Bounds(); b != (core.Rect{X: 0, Y: 0, Width: 16, Height: 16}) {
		t.Errorf("Bounds() = %+v, want full grid", b)
	}
}

func TestOutlineTranslatesByOrigin(t *testing.T) {
	m := grid.New(48, 16, 9, 1).Mapper(8, 16)
	pg := Outline(m, HexColumn, 0, 0)
	want := points(72, 16, 88, 16, 88, 32, 72, 32)
	if !reflect.DeepEqual(pg.Points, want) {
		t.Errorf("Outline() = %v, want %v", pg.Points, want)
	}
}

func TestCellRect(t *testing.T) {
	m := grid.New(48, 16, 9, 1).Mapper(1, 1)
	if got, want := CellRect(m, HexColumn, 17), (core.Rect{X: 12, Y: 2, Width: 2, Height: 1}); got != want {
		t.Errorf("CellRect(hex, 17) = %+v, want %+v", got, want)
	}
	tm := grid.New(16, 16, 57, 1).Mapper(1, 1)
	if got, want := CellRect(tm, TextColumn, 17), (core.Rect{X: 58, Y: 2, Width: 1, Height: 1}); got != want {
		t.Errorf("CellRect(text, 17) = %+v, want %+v", got, want)
	}
}
