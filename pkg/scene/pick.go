package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// proxyRadiusScale turns a photo's aspect-ratio-adjusted plane extents into
// its bounding-sphere pick radius.
const proxyRadiusScale = 0.7

// PhotoProxy is one photo's current world pose and pick geometry, assembled
// by the caller each time a pick is attempted (current slot transforms are
// the morph controller's / PHOTO_VIEW override's responsibility, not this
// package's).
type PhotoProxy struct {
	Index       int
	Position    mgl64.Vec3
	AspectRatio float64
}

// radius returns the proxy's bounding-sphere radius: max(width,height)*0.7,
// where width=aspect, height=1 for aspect = image_w/image_h.
func (p PhotoProxy) radius() float64 {
	width := p.AspectRatio
	height := 1.0
	if width <= 0 {
		width = height
	}
	return math.Max(width, height) * proxyRadiusScale
}

// Resolve projects the pointer (already in NDC, i.e. both components in
// [-1,1]) through the camera and returns the nearest eligible photo's
// index, or false if no proxy is hit.
//
// The spec leaves the projection matrix unspecified (no FOV is given); this
// implementation uses a simplified unit-FOV unprojection: the ray direction
// is normalize(forward + right*x + up*y), with forward/right/up built from
// the camera pose under the spec's fixed look-at-origin convention.
func Resolve(pointerX, pointerY float64, pose CameraPose, proxies []PhotoProxy) (int, bool) {
	origin := pose.Position
	forward := mgl64.Vec3{}.Sub(origin)
	if forward.LenSqr() == 0 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()

	worldUp := mgl64.Vec3{0, 1, 0}
	right := forward.Cross(worldUp)
	if right.LenSqr() < 1e-9 {
		right = mgl64.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up := right.Cross(forward).Normalize()

	dir := forward.Add(right.Mul(pointerX)).Add(up.Mul(pointerY)).Normalize()

	bestT := math.Inf(1)
	bestIndex := -1
	bestFound := false
	for _, proxy := range proxies {
		t, hit := intersectSphere(origin, dir, proxy.Position, proxy.radius())
		if !hit {
			continue
		}
		if t < bestT || (t == bestT && (!bestFound || proxy.Index < bestIndex)) {
			bestT = t
			bestIndex = proxy.Index
			bestFound = true
		}
	}
	return bestIndex, bestFound
}

// intersectSphere solves for the smallest positive ray parameter t where a
// unit-direction ray from origin hits the sphere at center with radius r.
func intersectSphere(origin, dir, center mgl64.Vec3, r float64) (float64, bool) {
	oc := origin.Sub(center)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - r*r
	disc := b*b - 4*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / 2
	t2 := (-b + sq) / 2
	if t1 > 0 {
		return t1, true
	}
	if t2 > 0 {
		return t2, true
	}
	return 0, false
}
