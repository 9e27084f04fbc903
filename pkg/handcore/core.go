// Package handcore wires the gesture classifier, pointer smoother, mode
// state machine, morph controller, camera controller, and pick resolver
// into the two-clock pipeline described by the core orchestrator: a
// detector tick advanced once per landmark sample, and a render tick
// advanced once per display frame.
package handcore

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/handscene/core/internal/config"
	"github.com/handscene/core/pkg/gesture"
	"github.com/handscene/core/pkg/landmark"
	"github.com/handscene/core/pkg/pointer"
	"github.com/handscene/core/pkg/scene"
)

// Core is the gesture-to-scene control pipeline. It owns every mutable
// piece of pipeline state; callers only ever drive it through Tick and
// AdvanceRender, and observe it through the On* event registries. Event
// callbacks fire synchronously from within Tick/AdvanceRender, so they must
// not call back into the same Core — doing so deadlocks.
type Core struct {
	mu     sync.Mutex
	cfg    *config.Config
	source landmark.Source

	classifier *gesture.Classifier
	smoother   *pointer.Smoother
	sm         *scene.ModeStateMachine
	morph      *scene.MorphController
	camera     *scene.CameraController
	arena      *scene.Arena

	lastRawPointer      gesture.Pointer
	lastDetectorTs       int64
	haveLastDetectorTs   bool
	sinceLastSampleMs    float64
	malformedSampleCount int64

	logger *log.Logger

	modeChanged      *Registry[scene.Mode]
	grabEdge         *Registry[bool]
	pointerUpdated   *Registry[PointerUpdate]
	selectionChanged *Registry[Selection]
}

// New builds a Core from cfg, wired to source as the landmark producer,
// with photoCount photo-bearing slots among the particle_count formation.
// The tree and scatter formations are generated deterministically from cfg.
func New(cfg *config.Config, source landmark.Source, photoCount int) *Core {
	tree := scene.GenerateTreeFormation(cfg.ParticleCount, cfg.TreeHeight)
	scatter := scene.GenerateScatterFormation(cfg.ParticleCount, photoCount, cfg.ScatterBounds*2)
	return NewWithFormations(cfg, source, photoCount, tree, scatter)
}

// NewWithFormations builds a Core over caller-supplied formations instead
// of generating them, for callers (including tests) that need deterministic
// control over particle placement.
func NewWithFormations(cfg *config.Config, source landmark.Source, photoCount int, tree, scatter scene.Formation) *Core {
	return &Core{
		cfg:              cfg,
		source:           source,
		classifier:       gesture.NewClassifier(cfg.PinchEnter, cfg.PinchExit, cfg.MirrorInput),
		smoother:         pointer.NewSmoother(cfg.PointerAlpha60Hz),
		sm:               scene.NewModeStateMachine(float64(cfg.PhotoViewGraceMs)),
		morph:            scene.NewMorphController(tree, scatter),
		camera:           scene.NewCameraController(cfg.CameraZ),
		arena:            scene.NewArena(cfg.ParticleCount, photoCount),
		logger:           log.Default(),
		modeChanged:      NewRegistry[scene.Mode](),
		grabEdge:         NewRegistry[bool](),
		pointerUpdated:   NewRegistry[PointerUpdate](),
		selectionChanged: NewRegistry[Selection](),
	}
}

// SetLogger overrides the logger used for diagnostics (malformed-sample
// counts and the like). A nil logger discards diagnostics.
func (c *Core) SetLogger(logger *log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

// Arena exposes the photo slot arena so callers can load textures.
func (c *Core) Arena() *scene.Arena { return c.arena }

// Mode returns the current application mode.
func (c *Core) Mode() scene.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sm.Mode()
}

// OnModeChanged registers a callback fired on every mode transition.
func (c *Core) OnModeChanged(cb func(scene.Mode)) func() { return c.modeChanged.Register(cb) }

// OnGrabEdge registers a callback fired on every rising/falling grab edge.
func (c *Core) OnGrabEdge(cb func(bool)) func() { return c.grabEdge.Register(cb) }

// OnPointerUpdated registers a callback fired at render rate with the
// smoothed pointer.
func (c *Core) OnPointerUpdated(cb func(PointerUpdate)) func() { return c.pointerUpdated.Register(cb) }

// OnSelectionChanged registers a callback fired when a photo selection is
// entered or cleared.
func (c *Core) OnSelectionChanged(cb func(Selection)) func() { return c.selectionChanged.Register(cb) }

// Tick is the detector tick: it invokes the landmark source for one frame,
// classifies the resulting sample (if any), and feeds the mode state
// machine. A detector error is never retried; per the spec it is fatal to
// the experience and surfaced to the caller.
func (c *Core) Tick(ctx context.Context, frame []byte, width, height int, timestampMs int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sample, err := c.source.Detect(ctx, frame, width, height, timestampMs)
	if err != nil {
		return fmt.Errorf("handcore: detector unavailable: %w", err)
	}
	if sample.Malformed() {
		if sample != nil {
			c.malformedSampleCount++
			if c.logger != nil {
				c.logger.Printf("handcore: malformed landmark sample dropped (count=%d)", c.malformedSampleCount)
			}
		}
		sample = nil
	}

	// A non-increasing timestamp (clock regression, or two ticks sharing
	// the same millisecond) clamps dt to zero for this tick rather than
	// skipping it outright — the sample still gets classified and fed to
	// the state machine, it just contributes no elapsed time to the grace
	// timer. lastDetectorTs only ever advances, so a later regression is
	// measured against the last timestamp actually accepted.
	dtMs := 0.0
	if c.haveLastDetectorTs && timestampMs > c.lastDetectorTs {
		dtMs = float64(timestampMs - c.lastDetectorTs)
	}
	if !c.haveLastDetectorTs || timestampMs > c.lastDetectorTs {
		c.lastDetectorTs = timestampMs
		c.haveLastDetectorTs = true
	}

	symbol, _, raw := c.classifier.Classify(sample, c.lastRawPointer)
	c.lastRawPointer = raw
	if sample != nil {
		c.sinceLastSampleMs = 0
	}

	result := c.sm.Tick(symbol, dtMs, pickerFunc(func() (int, bool) {
		return scene.Resolve(c.lastRawPointer.X, c.lastRawPointer.Y, c.camera.Pose(), c.photoProxiesLocked())
	}))

	c.publishLocked(result)
	return nil
}

// AdvanceRender is the render tick: it steps the pointer smoother, morph
// controller, and camera controller by dt seconds and publishes the
// resulting pointer_updated event.
func (c *Core) AdvanceRender(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dt < 0 {
		dt = 0
	}
	c.sinceLastSampleMs += dt * 1000

	raw := c.lastRawPointer
	if c.sinceLastSampleMs > float64(c.cfg.NoHandOriginDecayMs) {
		raw = gesture.Pointer{}
	}

	mode := c.sm.Mode()
	smoothed, visible := c.smoother.Update(raw, dt)
	c.camera.Advance(smoothed, mode, dt)
	c.morph.Advance(dt, mode)

	c.pointerUpdated.Notify(PointerUpdate{X: smoothed.X, Y: smoothed.Y, Z: smoothed.Z, Visible: visible})
}

// ParticleTransform returns the current render transform for particle i,
// honoring the PHOTO_VIEW override: the selected slot's transform is
// replaced with a camera-locked pose rather than the morph-interpolated one.
func (c *Core) ParticleTransform(i int) scene.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := c.sm.Mode()
	if mode == scene.ModePhotoView {
		if sel, ok := c.sm.Selection(); ok && sel == i {
			return c.photoViewPoseLocked()
		}
	}
	return c.morph.Transform(i, mode)
}

// photoViewPoseLocked places the held photo on the camera's line of sight
// to the origin, CameraZ-viewDistance units in front of the camera (so
// viewDistance from the origin while the camera sits at distance CameraZ).
// The returned rotation is zero.
func (c *Core) photoViewPoseLocked() scene.Transform {
	pose := c.camera.Pose()
	const viewDistance = 3.0
	dir := pose.Position.Normalize()
	position := dir.Mul(viewDistance - c.cfg.CameraZ).Add(pose.Position)
	return scene.Transform{
		Position: position,
		Scale:    1.0,
		Color:    mgl64.Vec3{1, 1, 1},
	}
}

func (c *Core) photoProxiesLocked() []scene.PhotoProxy {
	mode := c.sm.Mode()
	slots := c.arena.All()
	proxies := make([]scene.PhotoProxy, 0, len(slots))
	for _, s := range slots {
		if !s.HasPhoto() {
			continue
		}
		proxies = append(proxies, scene.PhotoProxy{
			Index:       s.Index,
			Position:    c.morph.Transform(s.Index, mode).Position,
			AspectRatio: s.AspectRatio,
		})
	}
	return proxies
}

func (c *Core) publishLocked(r scene.TickResult) {
	if r.ModeChanged {
		c.modeChanged.Notify(r.Mode)
	}
	if r.GrabEdge {
		c.grabEdge.Notify(r.Grab)
	}
	if r.SelectionChanged {
		c.selectionChanged.Notify(Selection{Index: r.Selection, Ok: r.HasSelection})
	}
}

type pickerFunc func() (int, bool)

func (f pickerFunc) Resolve() (int, bool) { return f() }
