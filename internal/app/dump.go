package app

import (
	"bufio"
	"io"

	"github.com/dshills/hexstorm/internal/hexview"
	"github.com/dshills/hexstorm/internal/renderer/compositor"
)

// Dump writes the editor's current page as plain text, one line per row.
func Dump(w io.Writer, ed *hexview.Editor) error {
	bw := bufio.NewWriter(w)
	for _, line := range compositor.Text(ed.Layout()) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Dump writes the application's current page as plain text.
func (app *Application) Dump(w io.Writer) error {
	return Dump(w, app.editor)
}
