package anim

import (
	"context"
	"fmt"
	"time"

	"github.com/taigrr/glyphcube/pkg/config"
	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/models"
	"github.com/taigrr/glyphcube/pkg/render"
)

// Driver renders the mesh frame by frame and hands each frame to a sink.
// It is not safe for concurrent use.
type Driver struct {
	Mesh      *models.Mesh
	Projector render.Projector
	Raster    *render.Rasterizer
	Spinner   *Spinner
	Sink      render.Sink
	Delay     time.Duration
	MaxFrames int // 0 runs until the context is cancelled
	Stats     FrameStats

	buf *render.GlyphBuffer
}

// NewDriver builds a driver from a validated config.
func NewDriver(cfg config.Config, mesh *models.Mesh, sink render.Sink) *Driver {
	buf := render.NewGlyphBuffer(cfg.Width, cfg.Height)
	raster := render.NewRasterizer(buf, cfg.Ramp(), cfg.Fill())
	raster.DisableEdges = !cfg.Edges

	spinner := NewSpinner(cfg.RotationStep)
	if cfg.SpinUp {
		spinner.EnableSpinUp(FPSForDelay(cfg.FrameDelay.Duration()))
	}

	return &Driver{
		Mesh:      mesh,
		Projector: render.Projector{Width: cfg.Width, Height: cfg.Height, Scale: cfg.Scale},
		Raster:    raster,
		Spinner:   spinner,
		Sink:      sink,
		Delay:     cfg.FrameDelay.Duration(),
		MaxFrames: cfg.Frames,
		buf:       buf,
	}
}

// RenderFrame draws the mesh at the given angles into the driver's buffer
// and returns it. The result depends only on angles; the buffer is reused
// by the next call.
func (d *Driver) RenderFrame(angles math3d.Euler) *render.GlyphBuffer {
	d.buf.Clear()
	d.Raster.ResetStats()
	pts := d.Projector.ProjectAll(math3d.Transform(d.Mesh.Vertices, angles))
	d.Raster.DrawMesh(d.Mesh, pts)
	return d.buf
}

// Run renders, presents and advances until ctx is cancelled or MaxFrames
// frames have been shown. Cancellation is checked before each frame and
// during the pause, and is not an error.
func (d *Driver) Run(ctx context.Context) error {
	d.Stats = FrameStats{Start: time.Now()}
	defer func() { d.Stats.End = time.Now() }()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		buf := d.RenderFrame(d.Spinner.Angles)
		if err := d.Sink.Present(buf); err != nil {
			return fmt.Errorf("present frame %d: %w", d.Stats.Frames, err)
		}
		d.Stats.record(d.Raster.Stats, buf.Covered())
		d.Spinner.Advance()

		if d.MaxFrames > 0 && d.Stats.Frames >= d.MaxFrames {
			return nil
		}
		if d.Delay <= 0 {
			continue
		}

		if timer == nil {
			timer = time.NewTimer(d.Delay)
		} else {
			timer.Reset(d.Delay)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}
