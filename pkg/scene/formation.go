package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// formationSeed fixes the pseudo-random generator used to build both
// formations so that property tests are reproducible across runs, per spec.
const formationSeed = 20240601

// treeLayers is the number of concentric disc layers (k) the tree formation
// is stratified into. Not specified numerically by the spec; chosen to give
// a visually smooth cone taper while keeping per-layer particle counts
// meaningful even for small N.
const treeLayers = 16

// scaleJitterMin/scaleJitterMax bound the per-particle scale jitter applied
// to both formations.
const (
	scaleJitterMin = 0.6
	scaleJitterMax = 1.2
)

// palette cycles {green, gold, red} as the spec's layer coloring rule.
var palette = [3]mgl64.Vec3{
	{0.15, 0.75, 0.20}, // green
	{0.85, 0.65, 0.10}, // gold
	{0.80, 0.12, 0.12}, // red
}

// GenerateTreeFormation builds the immutable "tree" formation: n particles
// stratified into treeLayers concentric discs of a cone tapering toward
// the top, per the spec's cone-stratified generation rule. Rotation is
// left at zero for every entry — the spec's generation rule only
// constrains position, scale, and color; all rotational motion in the
// rendered scene comes from the morph controller's time-based spin term.
func GenerateTreeFormation(n int, height float64) Formation {
	if n <= 0 {
		return Formation{}
	}
	rng := rand.New(rand.NewSource(formationSeed))

	baseRadius := height * 0.6
	radii := make([]float64, treeLayers)
	sqSum := 0.0
	for j := 0; j < treeLayers; j++ {
		yj := height/2 - float64(j)*(height/treeLayers)
		radii[j] = baseRadius * math.Pow(1-yj/height, 0.7)
		sqSum += radii[j] * radii[j]
	}

	counts := make([]int, treeLayers)
	assigned := 0
	for j := 0; j < treeLayers; j++ {
		share := 0
		if sqSum > 0 {
			share = int(math.Round(float64(n) * (radii[j] * radii[j]) / sqSum))
		}
		counts[j] = share
		assigned += share
	}
	// Reconcile rounding drift against the last layer so the total is exact.
	counts[treeLayers-1] += n - assigned

	entries := make(Formation, 0, n)
	for j := 0; j < treeLayers; j++ {
		yj := height/2 - float64(j)*(height/treeLayers)
		r := radii[j]
		color := palette[j%3]
		for i := 0; i < counts[j]; i++ {
			if len(entries) >= n {
				break
			}
			theta := rng.Float64() * 2 * math.Pi
			radial := r * math.Sqrt(rng.Float64())
			jitter := (rng.Float64() - 0.5) * (height / treeLayers) * 0.3

			entries = append(entries, FormationEntry{
				Position: mgl64.Vec3{radial * math.Cos(theta), yj + jitter, radial * math.Sin(theta)},
				Rotation: mgl64.Vec3{},
				Scale:    scaleJitterMin + rng.Float64()*(scaleJitterMax-scaleJitterMin),
				Color:    color,
			})
		}
	}
	// Top up with apex particles if the layers above left the total short.
	// The reconciliation step already makes the layer counts sum to n, so
	// this loop is a guard and adds nothing in practice.
	for len(entries) < n {
		entries = append(entries, FormationEntry{
			Position: mgl64.Vec3{0, height / 2, 0},
			Scale:    scaleJitterMin + rng.Float64()*(scaleJitterMax-scaleJitterMin),
			Color:    palette[len(entries)%3],
		})
	}

	return entries
}

// GenerateScatterFormation builds the immutable "scatter" formation: n
// particles uniform in a cube of side bounds, with the first photoCount
// indices drawn from a smaller sub-cube (side 0.6*bounds) so photo-bearing
// particles cluster closer to the origin.
func GenerateScatterFormation(n, photoCount int, bounds float64) Formation {
	if n <= 0 {
		return Formation{}
	}
	rng := rand.New(rand.NewSource(formationSeed + 1))

	entries := make(Formation, n)
	for i := 0; i < n; i++ {
		side := bounds
		if i < photoCount {
			side = 0.6 * bounds
		}
		half := side / 2
		pos := mgl64.Vec3{
			(rng.Float64()*2 - 1) * half,
			(rng.Float64()*2 - 1) * half,
			(rng.Float64()*2 - 1) * half,
		}
		entries[i] = FormationEntry{
			Position: pos,
			Rotation: mgl64.Vec3{},
			Scale:    scaleJitterMin + rng.Float64()*(scaleJitterMax-scaleJitterMin),
			Color:    palette[i%3],
		}
	}
	return entries
}
