package scene

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SlotID identifies a photo slot for its lifetime. Generated with uuid.NewString,
// the same identity scheme Gekko3D uses for asset handles.
type SlotID string

// NewSlotID mints a fresh, globally unique slot identity.
func NewSlotID() SlotID {
	return SlotID(uuid.NewString())
}

// PhotoSlot binds one formation index to an optional photo texture. Index
// ties the slot to its position in both the tree and scatter formations;
// a slot with no photo assigned renders as a plain particle.
type PhotoSlot struct {
	ID            SlotID
	Index         int
	TextureHandle string
	AspectRatio   float64
}

// HasPhoto reports whether a texture has been assigned to this slot.
func (p *PhotoSlot) HasPhoto() bool {
	return p.TextureHandle != ""
}

// Arena owns the fixed-size array of photo slots and the index that maps a
// SlotID back to its position. Safe for concurrent use: texture assignment
// happens off the detector/render ticks (e.g. from an asynchronous loader
// goroutine), while ByIndex/All are read during render ticks.
type Arena struct {
	mu    sync.RWMutex
	slots []*PhotoSlot
	byID  map[SlotID]int
}

// NewArena creates an arena with n slots, the first photoCount of which
// start with freshly minted identities; the remainder are plain particles
// (Index set, ID left empty) and can never receive a photo.
func NewArena(n, photoCount int) *Arena {
	if photoCount > n {
		photoCount = n
	}
	a := &Arena{
		slots: make([]*PhotoSlot, n),
		byID:  make(map[SlotID]int, photoCount),
	}
	for i := 0; i < n; i++ {
		slot := &PhotoSlot{Index: i}
		if i < photoCount {
			slot.ID = NewSlotID()
			a.byID[slot.ID] = i
		}
		a.slots[i] = slot
	}
	return a
}

// ErrSlotNotFound is returned by Get and SetTexture for an unknown SlotID.
var ErrSlotNotFound = fmt.Errorf("scene: slot not found")

// Get returns the slot for id, or ErrSlotNotFound if id is unknown.
func (a *Arena) Get(id SlotID) (*PhotoSlot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i, ok := a.byID[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return a.slots[i], nil
}

// ByIndex returns the slot at the given formation index, or nil if out of range.
func (a *Arena) ByIndex(index int) *PhotoSlot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if index < 0 || index >= len(a.slots) {
		return nil
	}
	return a.slots[index]
}

// All returns a snapshot slice of every slot, photo-bearing or not.
func (a *Arena) All() []*PhotoSlot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*PhotoSlot, len(a.slots))
	copy(out, a.slots)
	return out
}

// SetTexture assigns a loaded texture handle and aspect ratio to a slot.
func (a *Arena) SetTexture(id SlotID, handle string, aspectRatio float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	i, ok := a.byID[id]
	if !ok {
		return ErrSlotNotFound
	}
	// Replace the slot with an updated copy instead of mutating it, so
	// pointers already handed out by Get/ByIndex/All are never written to.
	slot := *a.slots[i]
	slot.TextureHandle = handle
	slot.AspectRatio = aspectRatio
	a.slots[i] = &slot
	return nil
}
