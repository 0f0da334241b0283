package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fortio.org/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/glyphcube/pkg/anim"
	"github.com/taigrr/glyphcube/pkg/config"
	"github.com/taigrr/glyphcube/pkg/models"
	"github.com/taigrr/glyphcube/pkg/render"
	"golang.org/x/term"
)

// pickSink resolves the auto sink: the full-screen renderer on a terminal,
// plain text otherwise.
func pickSink(cfg config.Config, isTTY bool) string {
	if cfg.Sink != config.SinkAuto {
		return cfg.Sink
	}
	if isTTY {
		return config.SinkScreen
	}
	return config.SinkPlain
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mesh := models.Cube()
	sinkName := pickSink(cfg, term.IsTerminal(int(os.Stdout.Fd())))
	log.Debugf("Rendering %dx%d, scale %g, fill %s, sink %s", cfg.Width, cfg.Height, cfg.Scale, cfg.FillMode, sinkName)

	var driver *anim.Driver
	switch sinkName {
	case config.SinkScreen:
		screen, err := startScreen(cancel)
		if err != nil {
			return err
		}
		driver = anim.NewDriver(cfg, mesh, render.NewScreenSink(screen))
		err = driver.Run(ctx)
		stopScreen(screen)
		if err != nil {
			return err
		}
	default:
		driver = anim.NewDriver(cfg, mesh, render.NewWriterSink(os.Stdout, cfg.Clear))
		if err := driver.Run(ctx); err != nil {
			return err
		}
	}

	s := driver.Stats
	log.Debugf("Rendered %d frames in %v (%.1f FPS), %d pixels tested, %d written",
		s.Frames, s.Elapsed().Round(time.Millisecond), s.FPS(), s.Tested, s.Written)
	return nil
}

// startScreen takes over the terminal. The terminal is in raw mode, so
// Ctrl+C arrives as a key and is turned into cancel here.
func startScreen(cancel context.CancelFunc) (*uv.Terminal, error) {
	t := uv.DefaultTerminal()

	width, height, err := t.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}

	if err := t.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(width, height)

	go func() {
		for ev := range t.Events() {
			if key, ok := ev.(uv.KeyPressEvent); ok {
				if key.MatchString("ctrl+c", "q", "escape") {
					cancel()
				}
			}
		}
	}()

	return t, nil
}

func stopScreen(t *uv.Terminal) {
	t.ExitAltScreen()
	t.ShowCursor()
	if err := t.Shutdown(context.Background()); err != nil {
		log.Warnf("Terminal shutdown: %v", err)
	}
}
