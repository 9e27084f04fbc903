package handcore

import "sync"

// Registry is a generic callback fan-out list, modeled on the event-source
// registries used to publish scene/input events: callers Register a
// handler and get back an unsubscribe func; Notify delivers to every
// handler registered at call time.
type Registry[T any] struct {
	mu        sync.Mutex
	nextID    int
	callbacks map[int]func(T)
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{callbacks: make(map[int]func(T))}
}

// Register adds a callback and returns a func that removes it.
func (r *Registry[T]) Register(cb func(T)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.callbacks[id] = cb
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.callbacks, id)
		r.mu.Unlock()
	}
}

// Notify delivers v to every callback currently registered. Callbacks run
// synchronously on the caller's goroutine, matching the single-threaded
// executor model: no event is ever delivered out of frame order.
func (r *Registry[T]) Notify(v T) {
	r.mu.Lock()
	cbs := make([]func(T), 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		cbs = append(cbs, cb)
	}
	r.mu.Unlock()

	for _, cb := range cbs {
		cb(v)
	}
}

// PointerUpdate is the payload of a pointer_updated event.
type PointerUpdate struct {
	X, Y, Z float64
	Visible bool
}

// Selection is the payload of a selection_changed event.
type Selection struct {
	Index int
	Ok    bool
}
