// Package pointer implements the exponential low-pass filter that decouples
// render-rate camera/cursor motion from the detector's sampling rate.
package pointer

import (
	"math"

	"github.com/handscene/core/pkg/gesture"
)

// visibleEpsilon is the threshold below which both x and y read as
// "not visible" — the cursor is effectively at rest near the origin.
const visibleEpsilon = 1e-3

// Smoother maintains the integrated pointer state and low-pass-filters a
// raw pointer toward it once per render tick. It is calibrated so that at
// 60 render Hz, alpha60Hz is used directly; at any other render rate the
// per-tick alpha is rescaled so the effective smoothing-per-second stays
// invariant (spec: 1 - (1-alpha)^(rate/60) held constant).
type Smoother struct {
	alpha60Hz float64
	state     gesture.Pointer
}

// NewSmoother creates a Smoother calibrated with the given 60Hz alpha.
func NewSmoother(alpha60Hz float64) *Smoother {
	return &Smoother{alpha60Hz: alpha60Hz}
}

// State returns the current smoothed pointer without advancing it.
func (s *Smoother) State() gesture.Pointer {
	return s.state
}

// Reset clears the smoother to the origin.
func (s *Smoother) Reset() {
	s.state = gesture.Pointer{}
}

// Update advances the smoother by dt seconds toward raw and returns the new
// smoothed pointer along with its visibility. A non-positive dt (clock
// regression) leaves the state untouched per the spec's error handling
// design ("clamp dt to zero ... do not advance smoothers").
func (s *Smoother) Update(raw gesture.Pointer, dt float64) (gesture.Pointer, bool) {
	if dt > 0 {
		alpha := effectiveAlpha(s.alpha60Hz, dt)
		s.state.X += alpha * (raw.X - s.state.X)
		s.state.Y += alpha * (raw.Y - s.state.Y)
		s.state.Z += alpha * (raw.Z - s.state.Z)
	}
	return s.state, s.Visible()
}

// Visible reports whether the current smoothed pointer is far enough from
// the origin on x or y to be considered on-screen.
func (s *Smoother) Visible() bool {
	return math.Abs(s.state.X) > visibleEpsilon || math.Abs(s.state.Y) > visibleEpsilon
}

// effectiveAlpha rescales the 60Hz-calibrated alpha for a render tick of
// duration dt seconds, holding 1-(1-alpha)^(rate/60) invariant across rates.
func effectiveAlpha(alpha60Hz, dt float64) float64 {
	return 1 - math.Pow(1-alpha60Hz, 60*dt)
}
