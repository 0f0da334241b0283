// Package anim drives the glyphcube frame loop: rotation state, pacing and
// frame delivery.
package anim

import (
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/glyphcube/pkg/math3d"
)

// Spinner holds the rotation angles and advances them by a fixed step per
// frame.
type Spinner struct {
	Angles math3d.Euler
	Step   math3d.Euler

	// Spin-up easing; throttle scales Step and is 1 when easing is off.
	easing   bool
	spring   harmonica.Spring
	throttle float64
	velocity float64 // internal spring velocity (for animating throttle toward 1)
}

// NewSpinner creates a spinner at rest angles with the given per-frame step.
func NewSpinner(step math3d.Euler) *Spinner {
	return &Spinner{Step: step, throttle: 1}
}

// EnableSpinUp starts the spinner from a standstill and eases the step in
// with a critically damped spring sampled once per frame.
func (s *Spinner) EnableSpinUp(fps int) {
	// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
	s.spring = harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 4.0, 1.0)
	s.easing = true
	s.throttle = 0
	s.velocity = 0
}

// Throttle returns the fraction of Step applied on the next Advance.
func (s *Spinner) Throttle() float64 {
	return s.throttle
}

// Advance moves the angles forward by one frame.
func (s *Spinner) Advance() {
	if s.easing {
		s.throttle, s.velocity = s.spring.Update(s.throttle, s.velocity, 1)
	}
	s.Angles = s.Angles.Add(s.Step.Scale(s.throttle))
}

// FPSForDelay converts a frame delay to a frame rate for spring timing.
// A zero delay counts as 60 FPS.
func FPSForDelay(delay time.Duration) int {
	if delay <= 0 {
		return 60
	}
	return max(1, int(time.Second/delay))
}
