package render

import (
	"bufio"
	"fmt"
	"io"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Sink receives finished frames.
type Sink interface {
	Present(buf *GlyphBuffer) error
}

// WriterSink writes frames as plain text rows. With Clear set, each frame is
// preceded by an erase-screen and cursor-home sequence so frames replace one
// another in a terminal.
type WriterSink struct {
	w     *bufio.Writer
	Clear bool
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer, clear bool) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w), Clear: clear}
}

// Present writes the buffer rows joined by newlines, followed by a final
// newline, and flushes.
func (s *WriterSink) Present(buf *GlyphBuffer) error {
	if s.Clear {
		s.w.WriteString(ansi.EraseEntireScreen)
		s.w.WriteString(ansi.CursorHomePosition)
	}
	s.w.WriteString(buf.String())
	s.w.WriteByte('\n')
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Draw puts the glyph grid on the screen, one cell per glyph. Cells outside
// area or the grid are left alone.
func (b *GlyphBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y && row < b.Height; row++ {
		for col := area.Min.X; col < area.Max.X && col < b.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: string(b.Glyph(col, row)),
				Width:   1,
			})
		}
	}
}

// ScreenSink presents frames through an ultraviolet terminal, which only
// redraws the cells that changed since the previous frame.
type ScreenSink struct {
	term *uv.Terminal
}

// NewScreenSink wraps a started terminal.
func NewScreenSink(term *uv.Terminal) *ScreenSink {
	return &ScreenSink{term: term}
}

// Present draws the buffer and flushes it to the terminal.
func (s *ScreenSink) Present(buf *GlyphBuffer) error {
	buf.Draw(s.term, s.term.Bounds())
	if err := s.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
