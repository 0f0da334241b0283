// Package render rasterizes glyphcube frames into a character grid.
package render

import (
	"math"
	"strings"
)

// Blank is the glyph of a cell nothing was drawn into.
const Blank = ' '

// GlyphBuffer is the frame target: a character grid and a depth buffer of
// the same dimensions. Larger depth is nearer. The only write path is Plot,
// which updates both grids together, so a cell's glyph always belongs to
// the depth stored for it.
type GlyphBuffer struct {
	Width  int
	Height int
	cells  []rune    // Row-major glyphs
	depth  []float64 // Row-major depth, -Inf when untouched
}

// NewGlyphBuffer creates a cleared buffer with the given dimensions.
func NewGlyphBuffer(width, height int) *GlyphBuffer {
	b := &GlyphBuffer{
		Width:  width,
		Height: height,
		cells:  make([]rune, width*height),
		depth:  make([]float64, width*height),
	}
	b.Clear()
	return b
}

// Clear restores the initial frame state: blank glyphs, -Inf depth.
func (b *GlyphBuffer) Clear() {
	n := len(b.depth)
	if n == 0 {
		return
	}
	// Use copy-doubling for faster clearing
	b.depth[0] = math.Inf(-1)
	b.cells[0] = Blank
	for i := 1; i < n; i *= 2 {
		copy(b.depth[i:], b.depth[:i])
		copy(b.cells[i:], b.cells[:i])
	}
}

// InBounds reports whether (x, y) is a cell of the grid.
func (b *GlyphBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Plot writes glyph g with depth z at (x, y) if the cell is on the grid and
// z is strictly nearer than what is stored. It reports whether it wrote.
func (b *GlyphBuffer) Plot(x, y int, z float64, g rune) bool {
	if !b.InBounds(x, y) {
		return false
	}
	i := y*b.Width + x
	if !(z > b.depth[i]) {
		return false
	}
	b.depth[i] = z
	b.cells[i] = g
	return true
}

// Depth returns the depth stored at (x, y), or -Inf when out of bounds.
func (b *GlyphBuffer) Depth(x, y int) float64 {
	if !b.InBounds(x, y) {
		return math.Inf(-1)
	}
	return b.depth[y*b.Width+x]
}

// Glyph returns the glyph at (x, y), or Blank when out of bounds.
func (b *GlyphBuffer) Glyph(x, y int) rune {
	if !b.InBounds(x, y) {
		return Blank
	}
	return b.cells[y*b.Width+x]
}

// Covered returns the number of cells written this frame.
func (b *GlyphBuffer) Covered() int {
	n := 0
	for _, z := range b.depth {
		if !math.IsInf(z, -1) {
			n++
		}
	}
	return n
}

// Row returns row y as a string.
func (b *GlyphBuffer) Row(y int) string {
	return string(b.cells[y*b.Width : (y+1)*b.Width])
}

// Rows returns every row, top to bottom.
func (b *GlyphBuffer) Rows() []string {
	rows := make([]string, b.Height)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return rows
}

// String joins the rows with newlines.
func (b *GlyphBuffer) String() string {
	return strings.Join(b.Rows(), "\n")
}
