package grid

import (
	"reflect"
	"testing"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

func TestLayoutOrderAndReplace(t *testing.T) {
	l := NewLayout()
	l.Add("lines", New(8, 16, 0, 1))
	l.Add("hex", New(48, 16, 9, 1))
	l.Add("lines", New(8, 4, 0, 1))

	if got, want := l.Names(), []string{"lines", "hex"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	g, ok := l.Get("lines")
	if !ok || g.Height() != 4 {
		t.Errorf("Get(lines) = %v, %v; want replaced grid", g, ok)
	}
	if _, ok := l.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestLayoutExtent(t *testing.T) {
	l := NewLayout()
	l.Add("hex", New(48, 16, 9, 1))
	l.Add("text", New(16, 16, 57, 1))
	l.Add("calc", New(54, 6, 0, 18))

	w, h := l.Extent()
	if w != 73 || h != 24 {
		t.Errorf("Extent() = (%d, %d), want (73, 24)", w, h)
	}
}

func TestLayoutHitTest(t *testing.T) {
	l := NewLayout()
	l.Add("hex", New(48, 16, 9, 1))
	l.Add("text", New(16, 16, 57, 1))

	tests := []struct {
		p        core.Point
		wantName string
		wantCell int
		wantOK   bool
	}{
		{core.Pt(9, 1), "hex", 0, true},
		{core.Pt(57, 2), "text", 16, true},
		{core.Pt(0, 0), "", -1, false},
	}
	for _, tt := range tests {
		name, cell, ok := l.HitTest(tt.p, 1, 1)
		if name != tt.wantName || cell != tt.wantCell || ok != tt.wantOK {
			t.Errorf("HitTest(%v) = (%q, %d, %v), want (%q, %d, %v)",
				tt.p, name, cell, ok, tt.wantName, tt.wantCell, tt.wantOK)
		}
	}
}

func TestLayoutClearAndEach(t *testing.T) {
	l := NewLayout()
	a, b := New(2, 1, 0, 0), New(2, 1, 2, 0)
	l.Add("a", a)
	l.Add("b", b)
	a.Write("xx")
	b.Write("yy")

	l.Clear()

	var seen []string
	l.Each(func(name string, g *Grid) {
		seen = append(seen, name+":"+g.Row(0))
	})
	if want := []string{"a:  ", "b:  "}; !reflect.DeepEqual(seen, want) {
		t.Errorf("Each() after Clear = %v, want %v", seen, want)
	}
}
