// glyphcube - Spinning cube in the terminal
// Renders a rotating cube as ASCII glyphs with a depth buffer, one frame at
// a time, until interrupted.
//
// Presets:
//
//	solid - Filled faces, interpolated depth, 11-glyph ramp (default)
//	wire  - Edges only
//	flat  - One depth per face, nearest glyph first
//
// Keys (screen sink):
//
//	Ctrl+C, q, Esc - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/glyphcube/pkg/config"
	"github.com/taigrr/glyphcube/pkg/models"
)

type options struct {
	preset     string
	configPath string
	verbose    bool

	// Overrides, applied only when the flag was set.
	width, height int
	scale         float64
	stepX, stepY  float64
	stepZ         float64
	delay         time.Duration
	depthMin      float64
	depthMax      float64
	ramp          string
	levels        int
	near          string
	fill          string
	edges         bool
	spinUp        bool
	frames        int
	sink          string
	clear         bool
}

func main() {
	opts := &options{}
	root := newRootCmd(opts)
	root.AddCommand(newExportCmd(), newPresetsCmd())

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyphcube",
		Short: "Spin a depth-shaded cube in the terminal",
		Long: "glyphcube draws a rotating cube as characters, choosing each glyph by depth.\n" +
			"Settings come from a preset, then an optional YAML file, then flags.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLogLevel(log.Debug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	f := cmd.Flags()
	f.StringVarP(&opts.preset, "preset", "p", config.DefaultPreset, "Preset to start from (see presets)")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding the preset")
	f.IntVar(&opts.width, "width", 0, "Grid columns")
	f.IntVar(&opts.height, "height", 0, "Grid rows")
	f.Float64Var(&opts.scale, "scale", 0, "Projection zoom")
	f.Float64Var(&opts.stepX, "step-x", 0, "Rotation per frame around X (radians)")
	f.Float64Var(&opts.stepY, "step-y", 0, "Rotation per frame around Y (radians)")
	f.Float64Var(&opts.stepZ, "step-z", 0, "Rotation per frame around Z (radians)")
	f.DurationVar(&opts.delay, "delay", 0, "Pause between frames")
	f.Float64Var(&opts.depthMin, "depth-min", 0, "Far end of the glyph depth range")
	f.Float64Var(&opts.depthMax, "depth-max", 0, "Near end of the glyph depth range")
	f.StringVar(&opts.ramp, "ramp", "", "Glyph ramp, ordered by depth")
	f.IntVar(&opts.levels, "levels", 0, "Ramp positions in use (0 = all)")
	f.StringVar(&opts.near, "near", "", "Ramp end used for the nearest depth: start or end")
	f.StringVar(&opts.fill, "fill", "", "Face fill: interpolated, averaged, barycentric or none")
	f.BoolVar(&opts.edges, "edges", true, "Draw cube edges")
	f.BoolVar(&opts.spinUp, "spin-up", false, "Ease rotation in from rest")
	f.IntVarP(&opts.frames, "frames", "n", 0, "Stop after this many frames (0 = run until interrupted)")
	f.StringVar(&opts.sink, "sink", "", "Output: auto, plain or screen")
	f.BoolVar(&opts.clear, "clear", true, "Clear the terminal before each plain frame")

	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.glb>",
		Short: "Write the cube geometry as binary glTF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cube := models.Cube()
			if err := models.SaveGLB(cube, args[0]); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			log.Infof("Wrote %s (%d vertices, %d faces, %d edges)",
				args[0], cube.VertexCount(), cube.FaceCount(), cube.EdgeCount())
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "Print presets as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.PresetNames()
			if len(args) == 1 {
				names = args
			}
			out := cmd.OutOrStdout()
			for i, name := range names {
				c, err := config.Preset(name)
				if err != nil {
					return err
				}
				data, err := c.Marshal()
				if err != nil {
					return fmt.Errorf("marshal preset %q: %w", name, err)
				}
				if i > 0 {
					fmt.Fprintln(out, "---")
				}
				fmt.Fprintf(out, "# %s\n%s", name, data)
			}
			return nil
		},
	}
}

// resolveConfig applies preset, then file, then the flags that were set.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Preset(opts.preset)
	if err != nil {
		return cfg, err
	}
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath, cfg)
		if err != nil {
			return cfg, err
		}
		log.Debugf("Loaded config overrides from %s", opts.configPath)
	}

	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Width = opts.width
	}
	if f.Changed("height") {
		cfg.Height = opts.height
	}
	if f.Changed("scale") {
		cfg.Scale = opts.scale
	}
	if f.Changed("step-x") {
		cfg.RotationStep.X = opts.stepX
	}
	if f.Changed("step-y") {
		cfg.RotationStep.Y = opts.stepY
	}
	if f.Changed("step-z") {
		cfg.RotationStep.Z = opts.stepZ
	}
	if f.Changed("delay") {
		cfg.FrameDelay = config.Duration(opts.delay)
	}
	if f.Changed("depth-min") {
		cfg.DepthClamp[0] = opts.depthMin
	}
	if f.Changed("depth-max") {
		cfg.DepthClamp[1] = opts.depthMax
	}
	if f.Changed("ramp") {
		cfg.GlyphRamp = opts.ramp
		if !f.Changed("levels") {
			cfg.GlyphLevels = 0
		}
	}
	if f.Changed("levels") {
		cfg.GlyphLevels = opts.levels
	}
	if f.Changed("near") {
		cfg.NearGlyph = opts.near
	}
	if f.Changed("fill") {
		cfg.FillMode = opts.fill
	}
	if f.Changed("edges") {
		cfg.Edges = opts.edges
	}
	if f.Changed("spin-up") {
		cfg.SpinUp = opts.spinUp
	}
	if f.Changed("frames") {
		cfg.Frames = opts.frames
	}
	if f.Changed("sink") {
		cfg.Sink = opts.sink
	}
	if f.Changed("clear") {
		cfg.Clear = opts.clear
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
