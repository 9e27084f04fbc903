package landmark

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
)

// MockSource is a deterministic, scriptable Source for tests and for
// exercising the core without a real detector attached. Frames are
// consumed in order; once exhausted, Detect returns a nil sample (no hand).
type MockSource struct {
	frames []*Sample
	pos    int
	closed bool
}

// NewMockSource creates a MockSource that replays the given frames in order.
func NewMockSource(frames ...*Sample) *MockSource {
	return &MockSource{frames: frames}
}

// Detect returns the next scripted frame, ignoring the pixel payload.
func (m *MockSource) Detect(_ context.Context, _ []byte, _, _ int, timestampMs int64) (*Sample, error) {
	if m.pos >= len(m.frames) {
		return nil, nil
	}
	s := m.frames[m.pos]
	m.pos++
	if s != nil {
		s.TimestampMs = timestampMs
	}
	return s, nil
}

// Close releases mock resources (a no-op).
func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// PalmSample builds a well-formed 21-point sample whose wrist/middle-MCP
// midpoint sits at the given normalized image coordinates (x,y in [0,1])
// and whose thumb-index distance is pinchDistance. Unused fingers are
// extended (not curled) so the resulting symbol is OPEN unless the caller
// overrides specific landmarks afterward.
func PalmSample(centerX, centerY, pinchDistance float64) *Sample {
	pts := make([]mgl64.Vec3, NumLandmarks)

	half := 0.05
	pts[Wrist] = mgl64.Vec3{centerX - half, centerY + half, 0}
	pts[MiddleMCP] = mgl64.Vec3{centerX + half, centerY - half, 0}

	// Extend all fingertips far from the wrist so the curl test reads false
	// (tip farther from wrist than its pip), yielding OPEN by default.
	pts[IndexPIP] = mgl64.Vec3{centerX, centerY - 0.10, 0}
	pts[IndexTip] = mgl64.Vec3{centerX, centerY - 0.25, 0}
	pts[MiddleTip] = mgl64.Vec3{centerX, centerY - 0.30, 0}
	pts[RingPIP] = mgl64.Vec3{centerX, centerY - 0.10, 0}
	pts[RingTip] = mgl64.Vec3{centerX, centerY - 0.25, 0}
	pts[PinkyPIP] = mgl64.Vec3{centerX, centerY - 0.10, 0}
	pts[PinkyTip] = mgl64.Vec3{centerX, centerY - 0.25, 0}

	// Thumb tip placed pinchDistance away from the index tip.
	pts[ThumbTip] = mgl64.Vec3{pts[IndexTip][0] + pinchDistance, pts[IndexTip][1], 0}

	// Fill remaining landmark slots with stable, non-colliding placeholder
	// positions so the sample always carries exactly NumLandmarks points.
	for i := range pts {
		if pts[i] == (mgl64.Vec3{}) && i != Wrist {
			pts[i] = mgl64.Vec3{centerX + 0.001*float64(i), centerY + 0.001*float64(i), 0}
		}
	}

	return &Sample{Points: pts}
}

// FistSample builds a well-formed sample whose four fingers are all curled
// (tip closer to the wrist than its pip), yielding FIST regardless of the
// thumb-index distance.
func FistSample(centerX, centerY float64) *Sample {
	pts := make([]mgl64.Vec3, NumLandmarks)

	pts[Wrist] = mgl64.Vec3{centerX, centerY, 0}

	curl := func(pip, tip int) {
		pts[pip] = mgl64.Vec3{centerX, centerY - 0.08, 0}
		pts[tip] = mgl64.Vec3{centerX, centerY - 0.04, 0} // closer to wrist than pip
	}
	curl(IndexPIP, IndexTip)
	curl(MiddleMCP, MiddleTip)
	curl(RingPIP, RingTip)
	curl(PinkyPIP, PinkyTip)

	pts[ThumbTip] = mgl64.Vec3{centerX + 0.02, centerY, 0}

	for i := range pts {
		if pts[i] == (mgl64.Vec3{}) && i != Wrist {
			pts[i] = mgl64.Vec3{centerX + 0.001*float64(i), centerY + 0.001*float64(i), 0}
		}
	}

	return &Sample{Points: pts}
}
