package anim

import (
	"time"

	"github.com/taigrr/glyphcube/pkg/render"
)

// FrameStats accumulates per-run counters.
type FrameStats struct {
	Frames  int
	Tested  int // Candidate pixels over all frames
	Written int // Depth-test passes over all frames
	Covered int // Cells covered in the last frame
	Start   time.Time
	End     time.Time
}

func (s *FrameStats) record(r render.RasterStats, covered int) {
	s.Frames++
	s.Tested += r.Tested
	s.Written += r.Written
	s.Covered = covered
}

// Elapsed returns the wall time of the run so far.
func (s FrameStats) Elapsed() time.Duration {
	if s.Start.IsZero() {
		return 0
	}
	end := s.End
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.Start)
}

// FPS returns the measured frame rate.
func (s FrameStats) FPS() float64 {
	secs := s.Elapsed().Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Frames) / secs
}
