// Package gesture turns raw hand landmark samples into the discrete
// symbols and continuous pointer the rest of the core consumes. The
// classifier is a pure function of its inputs plus the pinch latch's
// hysteresis state; it performs no retries and never errors.
package gesture

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/handscene/core/pkg/landmark"
)

// Symbol is the closed set of gesture outcomes the classifier can emit.
type Symbol int

const (
	// None means no hand was present in the sample (or it was malformed).
	None Symbol = iota
	// Open means the hand is not a fist (fewer than all four tracked fingers
	// curled) and no pinch is latched.
	Open
	// Fist means all four tracked fingers are curled.
	Fist
	// Pinch means the pinch latch is engaged and the hand is not a fist.
	Pinch
)

func (s Symbol) String() string {
	switch s {
	case Open:
		return "OPEN"
	case Fist:
		return "FIST"
	case Pinch:
		return "PINCH"
	default:
		return "NONE"
	}
}

// Pointer is the continuous, normalized hand control derived from a sample.
// X and Y are in [-1,1]; Z is a zoom factor in [0,1] (0 = far, 1 = near).
type Pointer struct {
	X, Y, Z float64
}

// palmSizeFloor is the wrist-to-middle-MCP distance that maps to zoom 0.
const palmSizeFloor = 0.10

// palmSizeScale maps the palm-size range onto [0,1]: clamp((size-0.10)*3.33,0,1).
const palmSizeScale = 3.33

// Classifier is a per-hand gesture classifier with hysteresis state for the
// pinch latch. It is not safe for concurrent use; the core orchestrator
// owns a single instance and calls Classify from its single executor.
type Classifier struct {
	pinchEnter float64
	pinchExit  float64
	mirror     bool

	latch bool
}

// NewClassifier creates a Classifier with the given pinch hysteresis
// thresholds. pinchEnter must be strictly less than pinchExit.
func NewClassifier(pinchEnter, pinchExit float64, mirror bool) *Classifier {
	return &Classifier{
		pinchEnter: pinchEnter,
		pinchExit:  pinchExit,
		mirror:     mirror,
	}
}

// Latched reports the current pinch latch state.
func (c *Classifier) Latched() bool {
	return c.latch
}

// SetMirror updates whether the upstream image is mirrored (selfie view).
func (c *Classifier) SetMirror(mirror bool) {
	c.mirror = mirror
}

// Classify turns one landmark sample into a gesture symbol, the (possibly
// updated) pinch latch, and the raw pointer derived from the palm center.
// When sample is nil or malformed, Classify emits None and leaves the
// pointer and latch state untouched (the caller/smoother is responsible
// for any subsequent decay).
func (c *Classifier) Classify(sample *landmark.Sample, lastPointer Pointer) (Symbol, bool, Pointer) {
	if sample.Malformed() {
		return None, c.latch, lastPointer
	}

	pts := sample.Points
	wrist := pts[landmark.Wrist]
	middleMCP := pts[landmark.MiddleMCP]

	cx := (wrist[0] + middleMCP[0]) / 2
	cy := (wrist[1] + middleMCP[1]) / 2

	var px float64
	if c.mirror {
		px = (0.5 - cx) * 2
	} else {
		px = (cx - 0.5) * 2
	}
	py := (0.5 - cy) * 2

	palmSize := distance(wrist, middleMCP)
	pz := clamp01((palmSize - palmSizeFloor) * palmSizeScale)

	raw := Pointer{X: px, Y: py, Z: pz}

	curled := curledFinger(pts, landmark.IndexTip, landmark.IndexPIP) &&
		curledFinger(pts, landmark.MiddleTip, landmark.MiddleMCP) &&
		curledFinger(pts, landmark.RingTip, landmark.RingPIP) &&
		curledFinger(pts, landmark.PinkyTip, landmark.PinkyPIP)

	if curled {
		c.latch = false
		return Fist, c.latch, raw
	}

	d := distance(pts[landmark.ThumbTip], pts[landmark.IndexTip])
	switch {
	case !c.latch && d < c.pinchEnter:
		c.latch = true
	case c.latch && d > c.pinchExit:
		c.latch = false
	}

	if c.latch {
		return Pinch, c.latch, raw
	}
	return Open, c.latch, raw
}

// curledFinger reports whether the finger's tip is closer to the wrist
// than its pip joint, per the spec's curl test (squared distances avoid
// an unnecessary sqrt).
func curledFinger(pts []mgl64.Vec3, tip, pip int) bool {
	wrist := pts[landmark.Wrist]
	return sqDistance(pts[tip], wrist) < sqDistance(pts[pip], wrist)
}

func distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

func sqDistance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).LenSqr()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
