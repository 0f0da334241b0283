package render

import (
	"math"
	"testing"
)

func TestRampIndex(t *testing.T) {
	ramp := NewRamp("abcd", -2, 2)
	tests := []struct {
		z    float64
		want int
	}{
		{-2, 0},
		{-1.01, 0},
		{-1, 1},
		{0, 2},
		{1, 3},
		{2, 3},
		{100, 3},
		{-100, 0},
		{math.Inf(1), 3},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tc := range tests {
		if got := ramp.Index(tc.z); got != tc.want {
			t.Errorf("Index(%v) = %d, want %d", tc.z, got, tc.want)
		}
	}
}

func TestRampMonotonic(t *testing.T) {
	ramps := map[string]Ramp{
		"far first":  NewRamp("!@#$:;=*.~,", -2, 2),
		"ten levels": {Glyphs: []rune("!@#$:;=*.~,"), Min: -2, Max: 2, Levels: 10},
		"near first": {Glyphs: []rune("@#*+=-:."), Min: -3, Max: 3, NearFirst: true},
	}
	for name, ramp := range ramps {
		t.Run(name, func(t *testing.T) {
			prev := ramp.Index(-5)
			for z := -5.0; z <= 5; z += 0.01 {
				i := ramp.Index(z)
				if i < 0 || i >= ramp.levels() {
					t.Fatalf("Index(%v) = %d out of range", z, i)
				}
				if ramp.NearFirst && i > prev || !ramp.NearFirst && i < prev {
					t.Fatalf("Index not monotonic at z=%v: %d after %d", z, i, prev)
				}
				prev = i
			}
		})
	}
}

func TestRampLevels(t *testing.T) {
	ramp := Ramp{Glyphs: []rune("!@#$:;=*.~,"), Min: -2, Max: 2, Levels: 10}
	if got := ramp.Glyph(2); got != '~' {
		t.Errorf("nearest glyph = %q, want '~'", got)
	}
	if got := ramp.Glyph(-2); got != '!' {
		t.Errorf("farthest glyph = %q, want '!'", got)
	}
	for z := -3.0; z <= 3; z += 0.05 {
		if ramp.Glyph(z) == ',' {
			t.Fatalf("Glyph(%v) used a glyph beyond Levels", z)
		}
	}
}

func TestRampNearFirst(t *testing.T) {
	ramp := Ramp{Glyphs: []rune("@#*"), Min: -1, Max: 1, NearFirst: true}
	if got := ramp.Glyph(1); got != '@' {
		t.Errorf("nearest glyph = %q, want '@'", got)
	}
	if got := ramp.Glyph(-1); got != '*' {
		t.Errorf("farthest glyph = %q, want '*'", got)
	}
	if got := ramp.Glyph(math.NaN()); got != '*' {
		t.Errorf("NaN glyph = %q, want the far end '*'", got)
	}
}

func TestRampValidate(t *testing.T) {
	tests := []struct {
		name    string
		ramp    Ramp
		wantErr bool
	}{
		{"valid", NewRamp("@#", -1, 1), false},
		{"empty glyphs", NewRamp("", -1, 1), true},
		{"empty clamp", NewRamp("@#", 1, 1), true},
		{"inverted clamp", NewRamp("@#", 1, -1), true},
		{"NaN clamp", NewRamp("@#", math.NaN(), 1), true},
		{"too many levels", Ramp{Glyphs: []rune("@#"), Min: -1, Max: 1, Levels: 3}, true},
		{"negative levels", Ramp{Glyphs: []rune("@#"), Min: -1, Max: 1, Levels: -1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ramp.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestEmptyRampGlyphIsBlank(t *testing.T) {
	var ramp Ramp
	if got := ramp.Glyph(0); got != Blank {
		t.Errorf("Glyph on empty ramp = %q, want blank", got)
	}
}
