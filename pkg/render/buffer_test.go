package render

import (
	"math"
	"strings"
	"testing"
)

func TestNewGlyphBufferIsClear(t *testing.T) {
	buf := NewGlyphBuffer(7, 3)
	for y := range 3 {
		for x := range 7 {
			if !math.IsInf(buf.Depth(x, y), -1) {
				t.Fatalf("depth at (%d,%d) = %v, want -Inf", x, y, buf.Depth(x, y))
			}
			if buf.Glyph(x, y) != Blank {
				t.Fatalf("glyph at (%d,%d) = %q, want blank", x, y, buf.Glyph(x, y))
			}
		}
	}
	if buf.Covered() != 0 {
		t.Errorf("Covered() = %d on a new buffer", buf.Covered())
	}
}

func TestGlyphBufferPlot(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		z     float64
		write bool
	}{
		{"first write", 1, 1, 0, true},
		{"farther is rejected", 1, 1, -0.5, false},
		{"equal is rejected", 1, 1, 0, false},
		{"nearer replaces", 1, 1, 0.25, true},
		{"NaN is rejected", 2, 1, math.NaN(), false},
		{"left of grid", -1, 0, 5, false},
		{"below grid", 0, 3, 5, false},
		{"right of grid", 4, 0, 5, false},
	}

	buf := NewGlyphBuffer(4, 3)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := buf.Plot(tc.x, tc.y, tc.z, '#'); got != tc.write {
				t.Errorf("Plot(%d, %d, %v) = %v, want %v", tc.x, tc.y, tc.z, got, tc.write)
			}
		})
	}

	if got := buf.Depth(1, 1); got != 0.25 {
		t.Errorf("depth = %v, want 0.25", got)
	}
	if buf.Covered() != 1 {
		t.Errorf("Covered() = %d, want 1", buf.Covered())
	}
}

func TestGlyphBufferOutOfBoundsReads(t *testing.T) {
	buf := NewGlyphBuffer(2, 2)
	if !math.IsInf(buf.Depth(5, 5), -1) {
		t.Error("out-of-bounds depth should be -Inf")
	}
	if buf.Glyph(-1, 0) != Blank {
		t.Error("out-of-bounds glyph should be blank")
	}
}

func TestGlyphBufferClear(t *testing.T) {
	buf := NewGlyphBuffer(5, 5)
	for i := range 5 {
		buf.Plot(i, i, float64(i), 'x')
	}
	buf.Clear()
	if buf.Covered() != 0 {
		t.Errorf("Covered() = %d after Clear", buf.Covered())
	}
	if s := buf.String(); strings.TrimSpace(s) != "" {
		t.Errorf("String() after Clear = %q", s)
	}
	// Cleared cells accept any finite depth again.
	if !buf.Plot(0, 0, -1e300, 'y') {
		t.Error("Plot rejected a write after Clear")
	}
}

func TestGlyphBufferRows(t *testing.T) {
	buf := NewGlyphBuffer(3, 2)
	buf.Plot(0, 0, 0, 'a')
	buf.Plot(2, 1, 0, 'b')

	rows := buf.Rows()
	if len(rows) != 2 || rows[0] != "a  " || rows[1] != "  b" {
		t.Errorf("Rows() = %q", rows)
	}
	if got, want := buf.String(), "a  \n  b"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func BenchmarkGlyphBufferClear(b *testing.B) {
	buf := NewGlyphBuffer(80, 24)
	for b.Loop() {
		buf.Clear()
	}
}
