package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// morphRate (k) is the convergence rate of the morph parameter toward its
// mode-dependent target; at k=2 the gap closes roughly 63% in 0.5s and
// roughly 86% in 1s.
const morphRate = 2.0

// idlePerturbThreshold gates the small idle-float position wobble to the
// scattered half of the morph range.
const idlePerturbThreshold = 0.5

// MorphController owns the morph parameter and the two immutable formations
// it interpolates between, producing a per-particle render transform on
// demand. Formations are read-only; m and the idle clock are the only
// mutable state, and only this controller writes them.
type MorphController struct {
	tree, scatter Formation
	m             float64
	elapsed       float64
}

// NewMorphController creates a controller over the given formations, which
// must share the same length and index order.
func NewMorphController(tree, scatter Formation) *MorphController {
	return &MorphController{tree: tree, scatter: scatter}
}

// M returns the current morph parameter.
func (mc *MorphController) M() float64 {
	return mc.m
}

// Len returns the particle count shared by both formations.
func (mc *MorphController) Len() int {
	return len(mc.tree)
}

// Advance steps the morph parameter toward mode's target by dt seconds and
// advances the idle clock used for the ambient position/rotation/color motion.
func (mc *MorphController) Advance(dt float64, mode Mode) {
	target := mode.MorphTarget()
	mc.m += clamp01(dt*morphRate) * (target - mc.m)
	mc.elapsed += dt
}

// Transform computes particle i's render transform at the current morph
// parameter and mode: position lerped between the two formations (plus a
// small idle wobble once m crosses idlePerturbThreshold), rotation lerped
// plus a constant spin term, and the mode's scale/color pulsation terms.
func (mc *MorphController) Transform(i int, mode Mode) Transform {
	tp := mc.tree[i]
	sp := mc.scatter[i]
	m := mc.m
	t := mc.elapsed
	fi := float64(i)

	position := lerpVec3(tp.Position, sp.Position, m)
	if m > idlePerturbThreshold {
		position = position.Add(mgl64.Vec3{
			math.Cos(t*0.5+fi) * 0.02,
			math.Sin(t+fi) * 0.02,
			0,
		})
	}

	rotation := tp.Rotation.Mul(1 - m).Add(sp.Rotation.Mul(m)).Add(mgl64.Vec3{0, t * 0.1, 0})

	scale := tp.Scale
	if mode != ModeTree {
		scale *= 1.5
	}

	pulse := 1 + 0.5*math.Sin(2*t+13*fi) + 0.5
	color := tp.Color.Mul(pulse)

	return Transform{Position: position, Rotation: rotation, Scale: scale, Color: color}
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
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
