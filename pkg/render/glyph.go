package render

import (
	"fmt"
	"math"
)

// Ramp maps depth to a glyph from an ordered ramp.
type Ramp struct {
	Glyphs []rune
	Min    float64 // Depth clamp, far end
	Max    float64 // Depth clamp, near end

	// Levels is the number of ramp positions in use; 0 means len(Glyphs).
	Levels int

	// NearFirst puts the nearest depth at Glyphs[0]. Otherwise depth grows
	// toward the end of the ramp.
	NearFirst bool
}

// NewRamp builds a ramp over [lo, hi] using all glyphs of s, with larger
// depth toward the end of the ramp.
func NewRamp(s string, lo, hi float64) Ramp {
	return Ramp{Glyphs: []rune(s), Min: lo, Max: hi}
}

// Validate reports configuration errors that would make Glyph meaningless.
func (r Ramp) Validate() error {
	if len(r.Glyphs) == 0 {
		return fmt.Errorf("empty glyph ramp")
	}
	if !(r.Min < r.Max) {
		return fmt.Errorf("depth clamp [%g, %g] is empty", r.Min, r.Max)
	}
	if r.Levels < 0 || r.Levels > len(r.Glyphs) {
		return fmt.Errorf("glyph levels %d outside [0, %d]", r.Levels, len(r.Glyphs))
	}
	return nil
}

func (r Ramp) levels() int {
	if r.Levels > 0 && r.Levels <= len(r.Glyphs) {
		return r.Levels
	}
	return len(r.Glyphs)
}

// Index returns the ramp position for depth z. NaN counts as the far end.
func (r Ramp) Index(z float64) int {
	n := r.levels()
	if n == 0 {
		return 0
	}

	var t float64
	switch {
	case math.IsNaN(z):
		t = 0
	default:
		z = math.Max(r.Min, math.Min(z, r.Max))
		t = (z - r.Min) / (r.Max - r.Min)
	}

	i := int(t * float64(n))
	// z == Max lands one past the end
	i = max(0, min(i, n-1))

	if r.NearFirst {
		i = n - 1 - i
	}
	return i
}

// Glyph returns the glyph for depth z. It never panics for a valid ramp,
// including for ±Inf and NaN.
func (r Ramp) Glyph(z float64) rune {
	if len(r.Glyphs) == 0 {
		return Blank
	}
	return r.Glyphs[r.Index(z)]
}
