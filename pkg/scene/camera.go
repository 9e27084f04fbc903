package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/handscene/core/pkg/gesture"
)

// phiEpsilon keeps the polar angle strictly inside (0, π) so sin(phi) never
// collapses to zero and the orbit basis stays well-defined at the poles.
const phiEpsilon = 1e-3

// CameraPose is the camera's current placement. Look-at is always the
// world origin, per the spec's single canonical convention.
type CameraPose struct {
	Position mgl64.Vec3
}

// CameraController converts the smoothed pointer and current mode into a
// target camera pose and eases the live pose toward it every render tick.
type CameraController struct {
	cameraZ  float64
	position mgl64.Vec3
}

// NewCameraController creates a controller at the TREE-mode resting pose.
func NewCameraController(cameraZ float64) *CameraController {
	return &CameraController{cameraZ: cameraZ, position: mgl64.Vec3{0, 0, cameraZ}}
}

// Pose returns the live camera pose.
func (cc *CameraController) Pose() CameraPose {
	return CameraPose{Position: cc.position}
}

// Advance eases the live position toward the mode/pointer-derived target.
// SCATTERED uses heavier damping (k=0.8) than TREE/PHOTO_VIEW (k=2.0) so
// the orbit feels weighted.
func (cc *CameraController) Advance(pointer gesture.Pointer, mode Mode, dt float64) {
	target := cc.targetFor(pointer, mode)
	k := 2.0
	if mode == ModeScattered {
		k = 0.8
	}
	alpha := clamp01(dt * k)
	cc.position = cc.position.Add(target.Sub(cc.position).Mul(alpha))
}

// targetFor computes the mode-dependent target position. PHOTO_VIEW
// inherits SCATTERED's target so the camera never leaps when a photo is held.
func (cc *CameraController) targetFor(p gesture.Pointer, mode Mode) mgl64.Vec3 {
	if mode == ModeTree {
		return mgl64.Vec3{0, 0, cc.cameraZ}
	}
	theta := p.X * 0.15 * math.Pi
	phi := math.Pi/2 - p.Y*math.Pi/12
	phi = clampPhi(phi)
	r := cc.cameraZ - p.Z*5

	return mgl64.Vec3{
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
		r * math.Sin(phi) * math.Cos(theta),
	}
}

func clampPhi(phi float64) float64 {
	if phi < phiEpsilon {
		return phiEpsilon
	}
	if phi > math.Pi-phiEpsilon {
		return math.Pi - phiEpsilon
	}
	return phi
}
