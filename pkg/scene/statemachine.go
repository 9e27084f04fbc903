package scene

import (
	"log"

	"github.com/handscene/core/pkg/gesture"
)

// Picker resolves a rising pinch edge in SCATTERED mode to a photo slot
// index. Implementations should be cheap enough to call synchronously from
// the state machine tick — the spec calls for at most one Resolve per
// rising grab edge.
type Picker interface {
	Resolve() (index int, ok bool)
}

// TickResult reports the mode state machine's output for one detector tick:
// the resulting mode and grab level, plus which events (if any) fired.
type TickResult struct {
	Mode             Mode
	ModeChanged      bool
	Grab             bool
	GrabEdge         bool
	Selection        int
	HasSelection     bool
	SelectionChanged bool
}

// ModeStateMachine implements the TREE/SCATTERED/PHOTO_VIEW transition
// table. It is not concurrency-safe; the core orchestrator owns it and
// drives it only from the detector tick.
type ModeStateMachine struct {
	mode         Mode
	grab         bool
	selection    int
	hasSelection bool
	graceMs      float64
	noneMs       float64
}

// NewModeStateMachine creates a state machine starting in ModeTree, with
// graceMs the PHOTO_VIEW → SCATTERED fallback timeout on continuous NONE.
func NewModeStateMachine(graceMs float64) *ModeStateMachine {
	return &ModeStateMachine{mode: ModeTree, graceMs: graceMs}
}

// Mode returns the current mode.
func (sm *ModeStateMachine) Mode() Mode {
	return sm.mode
}

// Selection returns the currently held photo slot index, if any.
func (sm *ModeStateMachine) Selection() (int, bool) {
	return sm.selection, sm.hasSelection
}

// Tick advances the state machine by one detector sample. pick is invoked
// at most once, and only on the rising edge of grab while in SCATTERED —
// never eagerly, so callers can defer the (possibly non-trivial) raycast
// until it is actually needed.
func (sm *ModeStateMachine) Tick(symbol gesture.Symbol, dtMs float64, pick Picker) TickResult {
	prevMode := sm.mode
	prevGrab := sm.grab
	prevSelection, prevHasSelection := sm.selection, sm.hasSelection

	switch sm.mode {
	case ModeTree:
		sm.tickTree(symbol)
	case ModeScattered:
		sm.tickScattered(symbol, prevGrab, pick)
	case ModePhotoView:
		sm.tickPhotoView(symbol, dtMs)
	default:
		// Never reached through the exported API (Mode is a closed set of
		// three values and NewModeStateMachine always starts at ModeTree),
		// but Mode is just an int underneath: coerce rather than panic if
		// it is ever driven out of range.
		log.Printf("scene: mode state machine tick on unrecognized mode %v; ignoring", sm.mode)
	}

	return TickResult{
		Mode:             sm.mode,
		ModeChanged:      sm.mode != prevMode,
		Grab:             sm.grab,
		GrabEdge:         sm.grab != prevGrab,
		Selection:        sm.selection,
		HasSelection:     sm.hasSelection,
		SelectionChanged: sm.hasSelection != prevHasSelection || (sm.hasSelection && sm.selection != prevSelection),
	}
}

func (sm *ModeStateMachine) tickTree(symbol gesture.Symbol) {
	switch symbol {
	case gesture.Open:
		sm.mode = ModeScattered
		sm.grab = false
	case gesture.Pinch:
		sm.mode = ModeScattered
		sm.grab = true
	default: // Fist, None
		sm.grab = false
	}
}

func (sm *ModeStateMachine) tickScattered(symbol gesture.Symbol, wasGrabbing bool, pick Picker) {
	switch symbol {
	case gesture.Fist:
		sm.mode = ModeTree
		sm.grab = false
		sm.clearSelection()
	case gesture.Pinch:
		sm.grab = true
		if !wasGrabbing && pick != nil {
			if idx, ok := pick.Resolve(); ok {
				sm.mode = ModePhotoView
				sm.selection = idx
				sm.hasSelection = true
			}
		}
	default: // Open, None
		sm.grab = false
	}
}

func (sm *ModeStateMachine) tickPhotoView(symbol gesture.Symbol, dtMs float64) {
	switch symbol {
	case gesture.Pinch:
		sm.grab = true
		sm.noneMs = 0
	case gesture.None:
		sm.grab = false
		sm.noneMs += dtMs
		if sm.noneMs > sm.graceMs {
			sm.mode = ModeScattered
			sm.clearSelection()
			sm.noneMs = 0
		}
	default: // Open, Fist
		sm.grab = false
		sm.mode = ModeScattered
		sm.clearSelection()
		sm.noneMs = 0
	}
}

func (sm *ModeStateMachine) clearSelection() {
	sm.selection = 0
	sm.hasSelection = false
}
