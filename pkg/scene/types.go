// Package scene owns everything downstream of a gesture symbol: the mode
// state machine, the particle morph controller, the orbit camera, and the
// photo pick resolver. Formations are immutable once generated; mode,
// morph parameter, and pointer state are owned by the core orchestrator
// and only ever written through the methods in this package.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mode is the closed set of application modes. Exactly one is in effect
// at any time; transitions are event-driven and atomic.
type Mode int

const (
	// ModeTree is the initial mode: particles form a tree.
	ModeTree Mode = iota
	// ModeScattered: particles are scattered, photos are pickable.
	ModeScattered
	// ModePhotoView: a single photo is held in a camera-locked pose.
	ModePhotoView
)

func (m Mode) String() string {
	switch m {
	case ModeScattered:
		return "SCATTERED"
	case ModePhotoView:
		return "PHOTO_VIEW"
	default:
		return "TREE"
	}
}

// MorphTarget returns the morph parameter this mode converges toward:
// 0 (pure tree) for ModeTree, 1 (pure scatter) otherwise.
func (m Mode) MorphTarget() float64 {
	if m == ModeTree {
		return 0
	}
	return 1
}

// Transform is a particle or photo's renderable pose: position, euler
// rotation, uniform scale, and an RGB color (possibly pulsed above 1.0).
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
	Color    mgl64.Vec3
}

// FormationEntry is one immutable particle slot within a Formation.
type FormationEntry struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
	Color    mgl64.Vec3
}

// Formation is a precomputed, immutable array of N particle entries. Tree
// and scatter formations share the same N and index order so interpolation
// between them is index-parallel.
type Formation []FormationEntry
