// Package config holds glyphcube's run configuration: named presets, YAML
// overrides and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// MaxRampLen bounds the glyph ramp length.
const MaxRampLen = 64

// Values for NearGlyph.
const (
	NearStart = "start"
	NearEnd   = "end"
)

// Values for Sink.
const (
	SinkAuto   = "auto"
	SinkPlain  = "plain"
	SinkScreen = "screen"
)

// Duration wraps time.Duration for YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config describes one animation run.
type Config struct {
	Width        int          `yaml:"width"`
	Height       int          `yaml:"height"`
	Scale        float64      `yaml:"scale"`
	RotationStep math3d.Euler `yaml:"rotation_step"`
	FrameDelay   Duration     `yaml:"frame_delay"`
	DepthClamp   [2]float64   `yaml:"depth_clamp,flow"`
	GlyphRamp    string       `yaml:"glyph_ramp"`
	GlyphLevels  int          `yaml:"glyph_levels"` // 0 uses the whole ramp
	NearGlyph    string       `yaml:"near_glyph"`   // start or end
	FillMode     string       `yaml:"fill_mode"`
	Edges        bool         `yaml:"edges"`
	SpinUp       bool         `yaml:"spin_up"`
	Frames       int          `yaml:"frames"` // 0 runs until interrupted
	Sink         string       `yaml:"sink"`
	Clear        bool         `yaml:"clear"`
}

// DefaultPreset is used when no preset is named.
const DefaultPreset = "solid"

var presets = map[string]Config{
	"solid": {
		Width:        80,
		Height:       24,
		Scale:        12,
		RotationStep: math3d.Euler{X: 0.1, Y: 0.1, Z: 0.05},
		FrameDelay:   Duration(100 * time.Millisecond),
		DepthClamp:   [2]float64{-2, 2},
		GlyphRamp:    "!@#$:;=*.~,",
		GlyphLevels:  10,
		NearGlyph:    NearEnd,
		FillMode:     render.FillInterpolated.String(),
		Edges:        true,
		Sink:         SinkAuto,
		Clear:        true,
	},
	"wire": {
		Width:        80,
		Height:       24,
		Scale:        10,
		RotationStep: math3d.Euler{X: 0.1, Y: 0.1, Z: 0.05},
		FrameDelay:   Duration(100 * time.Millisecond),
		DepthClamp:   [2]float64{-2, 2},
		GlyphRamp:    "@#$*",
		NearGlyph:    NearEnd,
		FillMode:     render.FillNone.String(),
		Edges:        true,
		Sink:         SinkAuto,
		Clear:        true,
	},
	"flat": {
		Width:        80,
		Height:       24,
		Scale:        10,
		RotationStep: math3d.Euler{X: 0.05, Y: 0.07, Z: 0.03},
		FrameDelay:   Duration(100 * time.Millisecond),
		DepthClamp:   [2]float64{-3, 3},
		GlyphRamp:    "@#*+=-:.",
		NearGlyph:    NearStart,
		FillMode:     render.FillAveraged.String(),
		Edges:        true,
		Sink:         SinkAuto,
		Clear:        true,
	},
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns a copy of the named preset.
func Preset(name string) (Config, error) {
	c, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return c, nil
}

// Default returns the default preset.
func Default() Config {
	return presets[DefaultPreset]
}

// Load overlays the YAML file at path onto base. Keys absent from the file
// keep their base value; unknown keys are an error.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse overlays YAML data onto base.
func Parse(data []byte, base Config) (Config, error) {
	c := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first invalid setting. All errors wrap ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale %g must be positive", ErrInvalid, c.Scale)
	case c.FrameDelay < 0:
		return fmt.Errorf("%w: frame_delay %v is negative", ErrInvalid, c.FrameDelay.Duration())
	case !(c.DepthClamp[0] < c.DepthClamp[1]):
		return fmt.Errorf("%w: depth_clamp [%g, %g] needs min < max", ErrInvalid, c.DepthClamp[0], c.DepthClamp[1])
	case c.GlyphRamp == "" || utf8.RuneCountInString(c.GlyphRamp) > MaxRampLen:
		return fmt.Errorf("%w: glyph_ramp must have 1 to %d glyphs", ErrInvalid, MaxRampLen)
	case c.GlyphLevels < 0 || c.GlyphLevels > utf8.RuneCountInString(c.GlyphRamp):
		return fmt.Errorf("%w: glyph_levels %d outside [0, %d]", ErrInvalid, c.GlyphLevels, utf8.RuneCountInString(c.GlyphRamp))
	case c.NearGlyph != NearStart && c.NearGlyph != NearEnd:
		return fmt.Errorf("%w: near_glyph %q must be %q or %q", ErrInvalid, c.NearGlyph, NearStart, NearEnd)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d is negative", ErrInvalid, c.Frames)
	}

	if _, err := render.ParseFillMode(c.FillMode); err != nil {
		return fmt.Errorf("%w: fill_mode: %v", ErrInvalid, err)
	}
	switch c.Sink {
	case SinkAuto, SinkPlain, SinkScreen:
	default:
		return fmt.Errorf("%w: sink %q must be auto, plain or screen", ErrInvalid, c.Sink)
	}
	return nil
}

// Ramp builds the depth-to-glyph ramp.
func (c Config) Ramp() render.Ramp {
	r := render.NewRamp(c.GlyphRamp, c.DepthClamp[0], c.DepthClamp[1])
	r.Levels = c.GlyphLevels
	r.NearFirst = c.NearGlyph == NearStart
	return r
}

// Fill returns the parsed fill mode, defaulting to interpolated when the
// name is not valid. Call Validate first.
func (c Config) Fill() render.FillMode {
	m, err := render.ParseFillMode(c.FillMode)
	if err != nil {
		return render.FillInterpolated
	}
	return m
}
