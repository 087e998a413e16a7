package hexview

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Options configures an Editor.
type Options struct {
	// Cols and Rows are the page geometry in bytes.
	Cols, Rows int

	// CellW and CellH are the pixel size of one grid cell. Terminals use 1×1.
	CellW, CellH int

	// Charset decodes the text column.
	Charset Charset

	SelectionColor core.Color
	MarkColor      core.Color
	CaretColor     core.Color

	// TagColors is cycled through by committed tags.
	TagColors []string
}

// DefaultOptions returns a 16×16 page with terminal cells.
func DefaultOptions() Options {
	return Options{
		Cols:           16,
		Rows:           16,
		CellW:          1,
		CellH:          1,
		SelectionColor: core.ColorRed,
		MarkColor:      core.ColorYellow,
		CaretColor:     core.ColorWhite,
		TagColors:      Palette(6),
	}
}

// Palette returns n evenly spaced hues starting at red, as hex strings.
func Palette(n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < max(n, 0); i++ {
		h := 360 * float64(i) / float64(n)
		out = append(out, colorful.Hsv(h, 0.85, 1).Hex())
	}
	return out
}
