package vdom

import "sync"

// HandleID identifies an event handle on the wire. The display side keys its
// live registrations by this ID.
type HandleID uint32

// Event is the payload delivered to a callback when the display side fires
// an event.
type Event struct {
	Type    string // Event name, e.g. "click", "input"
	Value   string // Input/select value, if any
	Checked bool   // Checkbox state, if any
	Key     string // Key name for keyboard events
}

// Callback handles a display-side event.
type Callback func(Event)

// EventHandle is a stable-identity cell holding the current callback for one
// event name on one element. The identity survives re-renders while the
// event name persists; only the callback inside is swapped. It must be
// released exactly once when the event name disappears from its element.
type EventHandle struct {
	id HandleID

	mu       sync.Mutex
	callback Callback
	released bool
}

// ID returns the handle's wire identity.
func (h *EventHandle) ID() HandleID {
	return h.id
}

// Invoke calls the current callback. Invoking a released handle is a no-op.
func (h *EventHandle) Invoke(ev Event) {
	h.mu.Lock()
	cb := h.callback
	released := h.released
	h.mu.Unlock()
	if released || cb == nil {
		return
	}
	cb(ev)
}

// swap replaces the callback in place. No edit-script entry corresponds to
// this: the display-side registration is untouched.
func (h *EventHandle) swap(cb Callback) {
	h.mu.Lock()
	h.callback = cb
	h.mu.Unlock()
}

func (h *EventHandle) markReleased() {
	h.mu.Lock()
	h.callback = nil
	h.released = true
	h.mu.Unlock()
}

// HandleRegistry allocates event handles and resolves dispatch lookups from
// the host. One registry exists per engine; the host looks handles up by ID
// when an event arrives off the wire.
type HandleRegistry struct {
	mu      sync.RWMutex
	next    HandleID
	handles map[HandleID]*EventHandle
}

// NewHandleRegistry creates an empty registry.
func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{handles: make(map[HandleID]*EventHandle)}
}

// Allocate creates a handle for a freshly registered event callback.
func (r *HandleRegistry) Allocate(cb Callback) *EventHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := &EventHandle{id: r.next, callback: cb}
	r.handles[h.id] = h
	return h
}

// Release deregisters a handle. Releasing twice is a no-op.
func (r *HandleRegistry) Release(h *EventHandle) {
	if h == nil {
		return
	}
	h.markReleased()
	r.mu.Lock()
	delete(r.handles, h.id)
	r.mu.Unlock()
}

// Lookup resolves a handle by ID for event dispatch.
func (r *HandleRegistry) Lookup(id HandleID) (*EventHandle, bool) {
	r.mu.RLock()
	h, ok := r.handles[id]
	r.mu.RUnlock()
	return h, ok
}

// Len returns the number of live handles.
func (r *HandleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
