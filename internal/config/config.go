// Package config provides TOML configuration loading for the handscene core.
//
// The configuration file supports the following structure:
//
//	pinch_enter = 0.06
//	pinch_exit = 0.10
//	pointer_alpha_60hz = 0.15
//	detector_min_interval_ms = 32
//	no_hand_origin_decay_ms = 200
//	photo_view_grace_ms = 1000
//	particle_count = 800
//	scatter_bounds = 10.0
//	tree_height = 8.0
//	camera_z = 15.0
//	mirror_input = true
//
// Example usage:
//
//	cfg, err := config.Load("handscene.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Pinch enter threshold: %f\n", cfg.PinchEnter)
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the complete set of tunables for the gesture-to-scene core.
// All values are supplied at construction time; the core persists nothing.
type Config struct {
	// PinchEnter is the thumb-index distance below which the pinch latch trips.
	PinchEnter float64 `toml:"pinch_enter"`
	// PinchExit is the thumb-index distance above which the pinch latch releases.
	// Must be strictly greater than PinchEnter to preclude oscillation.
	PinchExit float64 `toml:"pinch_exit"`
	// PointerAlpha60Hz is the smoother's per-frame alpha, calibrated at 60 Hz.
	PointerAlpha60Hz float64 `toml:"pointer_alpha_60hz"`
	// DetectorMinIntervalMs throttles the detector tick (default 32ms, ~30Hz).
	DetectorMinIntervalMs int64 `toml:"detector_min_interval_ms"`
	// NoHandOriginDecayMs is how long the raw pointer holds before collapsing to origin.
	NoHandOriginDecayMs int64 `toml:"no_hand_origin_decay_ms"`
	// PhotoViewGraceMs is the grace period before PHOTO_VIEW falls back to SCATTERED on NONE.
	PhotoViewGraceMs int64 `toml:"photo_view_grace_ms"`
	// ParticleCount is N, the number of particles shared by both formations.
	ParticleCount int `toml:"particle_count"`
	// ScatterBounds is the cube half-side used by the scatter formation.
	ScatterBounds float64 `toml:"scatter_bounds"`
	// TreeHeight is the vertical extent of the tree formation.
	TreeHeight float64 `toml:"tree_height"`
	// CameraZ is the baseline camera distance from the origin.
	CameraZ float64 `toml:"camera_z"`
	// MirrorInput is true when the upstream image is mirrored (selfie view).
	MirrorInput bool `toml:"mirror_input"`
}

// Default returns the calibrated default configuration from the spec.
func Default() *Config {
	return &Config{
		PinchEnter:            0.06,
		PinchExit:             0.10,
		PointerAlpha60Hz:      0.15,
		DetectorMinIntervalMs: 32,
		NoHandOriginDecayMs:   200,
		PhotoViewGraceMs:      1000,
		ParticleCount:         800,
		ScatterBounds:         10.0,
		TreeHeight:            8.0,
		CameraZ:               15.0,
		MirrorInput:           true,
	}
}

// Load reads and parses a TOML configuration file.
// If the file does not exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.PinchEnter <= 0 {
		return fmt.Errorf("pinch_enter must be positive, got %f", c.PinchEnter)
	}
	if c.PinchExit <= c.PinchEnter {
		return fmt.Errorf("pinch_exit (%f) must be strictly greater than pinch_enter (%f)", c.PinchExit, c.PinchEnter)
	}
	if c.PointerAlpha60Hz <= 0 || c.PointerAlpha60Hz > 1 {
		return fmt.Errorf("pointer_alpha_60hz must be in (0,1], got %f", c.PointerAlpha60Hz)
	}
	if c.DetectorMinIntervalMs <= 0 {
		return fmt.Errorf("detector_min_interval_ms must be positive, got %d", c.DetectorMinIntervalMs)
	}
	if c.NoHandOriginDecayMs <= 0 {
		return fmt.Errorf("no_hand_origin_decay_ms must be positive, got %d", c.NoHandOriginDecayMs)
	}
	if c.PhotoViewGraceMs <= 0 {
		return fmt.Errorf("photo_view_grace_ms must be positive, got %d", c.PhotoViewGraceMs)
	}
	if c.ParticleCount <= 0 {
		return fmt.Errorf("particle_count must be positive, got %d", c.ParticleCount)
	}
	if c.ScatterBounds <= 0 {
		return fmt.Errorf("scatter_bounds must be positive, got %f", c.ScatterBounds)
	}
	if c.TreeHeight <= 0 {
		return fmt.Errorf("tree_height must be positive, got %f", c.TreeHeight)
	}
	if c.CameraZ <= 0 {
		return fmt.Errorf("camera_z must be positive, got %f", c.CameraZ)
	}
	return nil
}
