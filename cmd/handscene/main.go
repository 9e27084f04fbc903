// Package main provides the CLI harness for the handscene gesture-to-scene
// control core. It wires a configured Core to a landmark source and drives
// its two clocks, logging the published events. Camera capture and the
// real landmark detector are external collaborators per the core's scope
// and are not implemented here; the -mock flag lets the harness run and be
// observed without either attached.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handscene/core/internal/config"
	"github.com/handscene/core/pkg/handcore"
	"github.com/handscene/core/pkg/landmark"
	"github.com/handscene/core/pkg/scene"
)

var version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to TOML configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	noMirror := flag.Bool("no-mirror", false, "Disable mirrored (selfie) pointer derivation")
	photoCount := flag.Int("photos", 12, "Number of photo-bearing slots")
	verbose := flag.Bool("verbose", false, "Log every published event")
	useMock := flag.Bool("mock", true, "Drive the core from a scripted gesture sequence instead of a real detector")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "handscene - gesture-to-scene control core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThe landmark detector and camera capture are external collaborators;\n")
		fmt.Fprintf(os.Stderr, "this binary is a harness, not a full application.\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("handscene version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *noMirror {
		cfg.MirrorInput = false
	}

	if *verbose {
		log.Printf("configuration: particles=%d photos=%d pinch=[%.2f,%.2f] mirror=%v",
			cfg.ParticleCount, *photoCount, cfg.PinchEnter, cfg.PinchExit, cfg.MirrorInput)
	}

	var source landmark.Source
	if *useMock {
		source = landmark.NewMockSource(scriptedGestureSequence()...)
	} else {
		log.Fatal("no real landmark detector is wired into this harness; pass -mock")
	}

	core := handcore.New(cfg, source, *photoCount)

	core.OnModeChanged(func(m scene.Mode) {
		log.Printf("mode_changed: %s", m)
	})
	core.OnGrabEdge(func(grabbing bool) {
		log.Printf("grab_edge: %v", grabbing)
	})
	core.OnSelectionChanged(func(s handcore.Selection) {
		log.Printf("selection_changed: index=%d ok=%v", s.Index, s.Ok)
	})
	if *verbose {
		frame := 0
		core.OnPointerUpdated(func(p handcore.PointerUpdate) {
			frame++
			if frame%60 == 0 {
				log.Printf("pointer_updated: x=%.3f y=%.3f z=%.3f visible=%v", p.X, p.Y, p.Z, p.Visible)
			}
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	detectorInterval := time.Duration(cfg.DetectorMinIntervalMs) * time.Millisecond
	detectorTicker := time.NewTicker(detectorInterval)
	defer detectorTicker.Stop()
	renderTicker := time.NewTicker(time.Second / 60)
	defer renderTicker.Stop()

	log.Println("handscene harness running. Press Ctrl+C to stop.")

	start := time.Now()
	for {
		select {
		case sig := <-sigCh:
			log.Printf("received signal %v, shutting down", sig)
			return
		case <-detectorTicker.C:
			ts := time.Since(start).Milliseconds()
			if err := core.Tick(ctx, nil, 0, 0, ts); err != nil {
				log.Printf("detector unavailable, stopping: %v", err)
				return
			}
		case <-renderTicker.C:
			core.AdvanceRender(1.0 / 60.0)
		}
	}
}

// scriptedGestureSequence stands in for a real detector: it steps through
// open, pinch, and fist once so the harness has something to demonstrate;
// after the last frame the mock source reports no hand.
func scriptedGestureSequence() []*landmark.Sample {
	var frames []*landmark.Sample
	for i := 0; i < 60; i++ {
		frames = append(frames, landmark.PalmSample(0.5, 0.5, 0.2))
	}
	for i := 0; i < 30; i++ {
		d := 0.2 - float64(i)*0.006
		frames = append(frames, landmark.PalmSample(0.5, 0.5, d))
	}
	for i := 0; i < 60; i++ {
		frames = append(frames, landmark.PalmSample(0.5, 0.5, 0.04))
	}
	for i := 0; i < 60; i++ {
		frames = append(frames, landmark.FistSample(0.5, 0.5))
	}
	return frames
}
