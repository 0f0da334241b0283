package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/glyphcube/pkg/render"
)

func TestPresetsValidate(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			c, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset(%q) error = %v", name, err)
			}
			if err := c.Validate(); err != nil {
				t.Errorf("preset %q does not validate: %v", name, err)
			}
			if err := c.Ramp().Validate(); err != nil {
				t.Errorf("preset %q ramp does not validate: %v", name, err)
			}
		})
	}
}

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	want := []string{"flat", "solid", "wire"}
	if len(names) != len(want) {
		t.Fatalf("PresetNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("PresetNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if _, err := Preset("gouraud"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSolidPreset(t *testing.T) {
	c := Default()
	if c.Width != 80 || c.Height != 24 || c.Scale != 12 {
		t.Errorf("solid geometry = %dx%d scale %g", c.Width, c.Height, c.Scale)
	}
	if c.FrameDelay.Duration() != 100*time.Millisecond {
		t.Errorf("frame delay = %v", c.FrameDelay.Duration())
	}
	if c.Fill() != render.FillInterpolated {
		t.Errorf("fill = %v", c.Fill())
	}

	ramp := c.Ramp()
	if ramp.NearFirst || ramp.Levels != 10 || ramp.Min != -2 || ramp.Max != 2 {
		t.Errorf("ramp = %+v", ramp)
	}
	// Ten of the eleven glyphs are reachable.
	if got := ramp.Glyph(2); got != '~' {
		t.Errorf("nearest glyph = %q, want '~'", got)
	}
}

func TestPresetsAreCopies(t *testing.T) {
	c, _ := Preset("wire")
	c.Width = 1
	again, _ := Preset("wire")
	if again.Width != 80 {
		t.Error("modifying a preset copy changed the preset")
	}
}

func TestParse(t *testing.T) {
	base := Default()

	t.Run("overlay", func(t *testing.T) {
		c, err := Parse([]byte(`
width: 40
frame_delay: 20ms
depth_clamp: [-1, 1]
rotation_step: {x: 0.2}
near_glyph: start
`), base)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if c.Width != 40 || c.Height != base.Height {
			t.Errorf("size = %dx%d", c.Width, c.Height)
		}
		if c.FrameDelay.Duration() != 20*time.Millisecond {
			t.Errorf("frame delay = %v", c.FrameDelay.Duration())
		}
		if c.DepthClamp != [2]float64{-1, 1} {
			t.Errorf("depth clamp = %v", c.DepthClamp)
		}
		if c.RotationStep.X != 0.2 || c.RotationStep.Y != base.RotationStep.Y {
			t.Errorf("rotation step = %+v", c.RotationStep)
		}
		if !c.Ramp().NearFirst {
			t.Error("near_glyph start should put the nearest depth first")
		}
	})

	t.Run("empty document keeps base", func(t *testing.T) {
		c, err := Parse(nil, base)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if c != base {
			t.Errorf("Parse(nil) = %+v, want base", c)
		}
	})

	errCases := map[string]string{
		"unknown key":   "colour: red\n",
		"bad duration":  "frame_delay: soon\n",
		"short clamp":   "depth_clamp: [1]\n",
		"wrong type":    "width: wide\n",
		"malformed doc": "width: [\n",
	}
	for name, doc := range errCases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc), base); err == nil {
				t.Errorf("Parse(%q) succeeded", doc)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.yaml")
	if err := os.WriteFile(path, []byte("fill_mode: barycentric\nframes: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Fill() != render.FillBarycentric || c.Frames != 3 {
		t.Errorf("Load() = fill %v frames %d", c.Fill(), c.Frames)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), Default()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, name := range PresetNames() {
		c, _ := Preset(name)
		data, err := c.Marshal()
		if err != nil {
			t.Fatalf("Marshal(%q) error = %v", name, err)
		}
		got, err := Parse(data, Config{})
		if err != nil {
			t.Fatalf("Parse(Marshal(%q)) error = %v\n%s", name, err, data)
		}
		if got != c {
			t.Errorf("preset %q did not survive YAML:\n got %+v\nwant %+v", name, got, c)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"negative delay", func(c *Config) { c.FrameDelay = Duration(-time.Second) }},
		{"empty clamp", func(c *Config) { c.DepthClamp = [2]float64{1, 1} }},
		{"empty ramp", func(c *Config) { c.GlyphRamp = "" }},
		{"long ramp", func(c *Config) {
			r := make([]rune, MaxRampLen+1)
			for i := range r {
				r[i] = '#'
			}
			c.GlyphRamp = string(r)
		}},
		{"too many levels", func(c *Config) { c.GlyphLevels = 50 }},
		{"bad near glyph", func(c *Config) { c.NearGlyph = "middle" }},
		{"negative frames", func(c *Config) { c.Frames = -1 }},
		{"bad fill mode", func(c *Config) { c.FillMode = "gouraud" }},
		{"bad sink", func(c *Config) { c.Sink = "printer" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() succeeded")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}
