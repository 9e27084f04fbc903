package scene

import (
	"testing"

	"github.com/handscene/core/pkg/gesture"
)

type fixedPicker struct {
	index int
	ok    bool
}

func (p fixedPicker) Resolve() (int, bool) { return p.index, p.ok }

func TestModeStateMachine_InitialModeIsTree(t *testing.T) {
	sm := NewModeStateMachine(1000)
	if sm.Mode() != ModeTree {
		t.Errorf("expected initial mode TREE, got %s", sm.Mode())
	}
}

func TestModeStateMachine_FistToOpenTransition(t *testing.T) {
	sm := NewModeStateMachine(1000)

	for i := 0; i < 30; i++ {
		r := sm.Tick(gesture.Fist, 16, nil)
		if r.ModeChanged || r.Mode != ModeTree || r.Grab {
			t.Fatalf("tick %d: expected stable TREE, no grab, got %+v", i, r)
		}
	}

	changes := 0
	for i := 0; i < 30; i++ {
		r := sm.Tick(gesture.Open, 16, nil)
		if r.ModeChanged {
			changes++
		}
		if r.Grab {
			t.Errorf("tick %d: expected grab=false throughout OPEN run", i)
		}
	}
	if changes != 1 {
		t.Errorf("expected exactly one mode_changed(SCATTERED), got %d", changes)
	}
	if sm.Mode() != ModeScattered {
		t.Errorf("expected final mode SCATTERED, got %s", sm.Mode())
	}
}

func TestModeStateMachine_PinchPickEntersPhotoView(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.Tick(gesture.Open, 16, nil) // TREE -> SCATTERED

	r := sm.Tick(gesture.Pinch, 16, fixedPicker{index: 0, ok: true})
	if !r.GrabEdge || !r.Grab {
		t.Fatalf("expected a rising grab edge, got %+v", r)
	}
	if r.Mode != ModePhotoView || !r.ModeChanged {
		t.Fatalf("expected mode_changed(PHOTO_VIEW), got %+v", r)
	}
	if !r.HasSelection || r.Selection != 0 || !r.SelectionChanged {
		t.Fatalf("expected selection_changed(Some(0)), got %+v", r)
	}
}

func TestModeStateMachine_PinchWithoutHitStaysScattered(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.Tick(gesture.Open, 16, nil)

	r := sm.Tick(gesture.Pinch, 16, fixedPicker{ok: false})
	if r.Mode != ModeScattered || r.ModeChanged {
		t.Fatalf("expected to remain SCATTERED, got %+v", r)
	}
	if !r.Grab {
		t.Error("expected grab true even without a hit")
	}
}

func TestModeStateMachine_PickOnlyAttemptedOnRisingEdge(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.Tick(gesture.Open, 16, nil)
	sm.Tick(gesture.Pinch, 16, fixedPicker{ok: false}) // rising edge, no hit

	calls := 0
	picker := pickerFunc(func() (int, bool) { calls++; return 0, true })
	sm.Tick(gesture.Pinch, 16, picker) // sustained pinch, not a rising edge
	if calls != 0 {
		t.Errorf("expected Resolve not called on sustained pinch, got %d calls", calls)
	}
}

type pickerFunc func() (int, bool)

func (f pickerFunc) Resolve() (int, bool) { return f() }

func TestModeStateMachine_PinchReleaseReturnsToScatter(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.Tick(gesture.Open, 16, nil)
	sm.Tick(gesture.Pinch, 16, fixedPicker{index: 0, ok: true})

	r := sm.Tick(gesture.Open, 16, nil)
	if r.Grab {
		t.Error("expected falling grab edge")
	}
	if r.GrabEdge != true {
		t.Error("expected a grab edge on release")
	}
	if r.Mode != ModeScattered || !r.ModeChanged {
		t.Fatalf("expected mode_changed(SCATTERED), got %+v", r)
	}
	if r.HasSelection || !r.SelectionChanged {
		t.Fatalf("expected selection_changed(None), got %+v", r)
	}
}

func TestModeStateMachine_FistFromScatteredClearsSelectionAndGoesTree(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.Tick(gesture.Open, 16, nil)
	sm.Tick(gesture.Pinch, 16, fixedPicker{index: 2, ok: true})

	r := sm.Tick(gesture.Fist, 16, nil)
	if r.Mode != ModeScattered {
		t.Fatalf("expected PHOTO_VIEW+FIST to fall to SCATTERED first, got %s", r.Mode)
	}
	if r.HasSelection || !r.SelectionChanged {
		t.Fatalf("expected the FIST to clear the selection, got %+v", r)
	}
	r2 := sm.Tick(gesture.Fist, 16, nil)
	if r2.Mode != ModeTree {
		t.Fatalf("expected next FIST tick to reach TREE, got %s", r2.Mode)
	}
}

func TestModeStateMachine_NoHandGraceInPhotoView(t *testing.T) {
	sm := NewModeStateMachine(1000) // 1000ms grace
	sm.Tick(gesture.Open, 16, nil)
	sm.Tick(gesture.Pinch, 16, fixedPicker{index: 0, ok: true})

	const dtMs = 40.0 // 25 Hz
	changed := 0
	for i := 0; i < 40; i++ {
		r := sm.Tick(gesture.None, dtMs, nil)
		if r.ModeChanged {
			changed++
		}
	}
	if sm.Mode() != ModeScattered {
		t.Errorf("expected SCATTERED after >1s of NONE, got %s", sm.Mode())
	}
	if changed != 1 {
		t.Errorf("expected exactly one mode_changed after the grace window, got %d", changed)
	}
}

func TestModeStateMachine_NoneInPhotoViewDropsGrabImmediately(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.Tick(gesture.Open, 16, nil)
	sm.Tick(gesture.Pinch, 16, fixedPicker{index: 0, ok: true})

	r := sm.Tick(gesture.None, 16, nil)
	if r.Grab {
		t.Error("expected grab=false immediately on NONE in PHOTO_VIEW")
	}
	if r.Mode != ModePhotoView {
		t.Errorf("expected to remain in PHOTO_VIEW within the grace window, got %s", r.Mode)
	}
}

func TestModeStateMachine_UnrecognizedModeIsIgnoredNotPanicked(t *testing.T) {
	sm := NewModeStateMachine(1000)
	sm.mode = Mode(99) // out of range; never reachable through the exported API
	sm.selection, sm.hasSelection = 4, true

	r := sm.Tick(gesture.Pinch, 16, fixedPicker{index: 0, ok: true})

	if r.Mode != Mode(99) || r.ModeChanged {
		t.Errorf("expected the unrecognized mode left untouched, got %+v", r)
	}
	if r.Grab || r.GrabEdge {
		t.Errorf("expected no grab change on an unrecognized mode, got %+v", r)
	}
	if !r.HasSelection || r.Selection != 4 || r.SelectionChanged {
		t.Errorf("expected selection left untouched, got %+v", r)
	}
}
