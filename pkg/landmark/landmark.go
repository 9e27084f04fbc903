// Package landmark defines the boundary between the gesture-to-scene core
// and the external landmark detector. The detector itself — camera capture,
// model inference, whatever accelerator it runs on — is treated as a
// black-box producer; this package only names the contract a detector must
// satisfy and the shape of what it produces.
package landmark

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// NumLandmarks is the canonical number of points a well-formed hand sample
// carries (MediaPipe's 21-point hand model).
const NumLandmarks = 21

// Canonical landmark indices used by the gesture classifier.
// MiddleMCP doubles as the middle finger's curl-test pivot (index 9, per
// the spec's tip/pip pair 12/9).
const (
	Wrist     = 0
	ThumbTip  = 4
	IndexTip  = 8
	IndexPIP  = 5
	MiddleMCP = 9
	MiddleTip = 12
	RingTip   = 16
	RingPIP   = 13
	PinkyTip  = 20
	PinkyPIP  = 17
)

// Handedness reports which hand a sample belongs to. The core accepts but
// does not use this value (spec treats it as accepted-but-unused metadata).
type Handedness int

const (
	HandednessUnknown Handedness = iota
	HandednessLeft
	HandednessRight
)

func (h Handedness) String() string {
	switch h {
	case HandednessLeft:
		return "left"
	case HandednessRight:
		return "right"
	default:
		return "unknown"
	}
}

// Sample is one detector frame: the 21 canonical hand landmarks, normalized
// to [0,1] on x/y (origin top-left) with a relative depth hint on z, plus
// a monotonic capture timestamp. A frame with no hand is represented by a
// nil *Sample, never an empty one.
type Sample struct {
	// TimestampMs is the monotonic capture time in milliseconds.
	TimestampMs int64
	// Points holds the raw landmark coordinates as reported by the detector.
	// A well-formed sample has exactly NumLandmarks entries; anything else
	// is malformed and is treated as NONE by the gesture classifier.
	Points []mgl64.Vec3
	// Handedness is accepted but unused by the core pipeline.
	Handedness Handedness
}

// Malformed reports whether the sample does not carry exactly NumLandmarks
// points, or carries a non-finite coordinate. Malformed samples are not
// retried; the classifier treats them as NONE per the spec's error policy.
func (s *Sample) Malformed() bool {
	if s == nil {
		return true
	}
	if len(s.Points) != NumLandmarks {
		return true
	}
	for _, p := range s.Points {
		for i := 0; i < 3; i++ {
			if p[i] != p[i] { // NaN check without importing math
				return true
			}
		}
	}
	return false
}

// ErrDetectorUnavailable is returned when the detector cannot be reached at
// startup. Per the spec's error handling design this is fatal to the
// experience and is surfaced to the host application without retry.
var ErrDetectorUnavailable = errors.New("landmark: detector unavailable")

// Source is the interface the core requires of a landmark detector.
// Implementations may wrap an accelerated, asynchronous detector; from the
// core's perspective Detect is synchronous and is awaited inline at the
// detector tick (see handcore.Core).
type Source interface {
	// Detect analyzes one captured video frame and returns the resulting
	// hand sample, or a nil sample if no hand was found. frame is raw pixel
	// data in whatever format the concrete detector expects; width/height
	// describe it. timestampMs is the frame's monotonic capture time.
	Detect(ctx context.Context, frame []byte, width, height int, timestampMs int64) (*Sample, error)
	// Close releases detector resources.
	Close() error
}
