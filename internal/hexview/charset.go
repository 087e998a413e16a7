package hexview

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnknownCharset is returned for charset names LookupCharset does not know.
var ErrUnknownCharset = errors.New("unknown charset")

// Charset decodes single bytes for the text column.
type Charset struct {
	name      string
	cm        *charmap.Charmap
	asciiOnly bool
}

var charsets = map[string]Charset{
	"latin1": {name: "latin1", cm: charmap.ISO8859_1},
	"cp437":  {name: "cp437", cm: charmap.CodePage437},
	"cp1252": {name: "cp1252", cm: charmap.Windows1252},
	"ascii":  {name: "ascii", cm: charmap.ISO8859_1, asciiOnly: true},
}

// LookupCharset returns the charset registered under name.
func LookupCharset(name string) (Charset, error) {
	cs, ok := charsets[name]
	if !ok {
		return Charset{}, fmt.Errorf("%q: %w", name, ErrUnknownCharset)
	}
	return cs, nil
}

// CharsetNames returns the known charset names, sorted.
func CharsetNames() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the charset name. The zero Charset is latin1.
func (c Charset) Name() string {
	if c.name == "" {
		return "latin1"
	}
	return c.name
}

// DisplayRune returns the glyph shown for b in the text column. Whitespace,
// control characters and glyphs that are not exactly one cell wide show as '.'.
func (c Charset) DisplayRune(b byte) rune {
	if c.asciiOnly && b >= 0x80 {
		return '.'
	}
	r := rune(b)
	if c.cm != nil {
		r = c.cm.DecodeByte(b)
	}
	if r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
		return '.'
	}
	if uniseg.StringWidth(string(r)) != 1 {
		return '.'
	}
	return r
}
