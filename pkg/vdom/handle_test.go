package vdom

import "testing"

func TestRegistryAllocateAndLookup(t *testing.T) {
	r := NewHandleRegistry()

	var got Event
	h := r.Allocate(func(ev Event) { got = ev })

	if h.ID() == 0 {
		t.Error("allocated handle has zero ID")
	}
	found, ok := r.Lookup(h.ID())
	if !ok || found != h {
		t.Fatalf("Lookup(%d) = %v, %v; want the allocated handle", h.ID(), found, ok)
	}

	h.Invoke(Event{Type: "click", Value: "v"})
	if got.Type != "click" || got.Value != "v" {
		t.Errorf("callback received %+v, want click/v", got)
	}
}

func TestRegistryIDsAreUnique(t *testing.T) {
	r := NewHandleRegistry()
	seen := make(map[HandleID]bool)
	for i := 0; i < 100; i++ {
		h := r.Allocate(func(Event) {})
		if seen[h.ID()] {
			t.Fatalf("duplicate handle ID %d", h.ID())
		}
		seen[h.ID()] = true
	}
	if r.Len() != 100 {
		t.Errorf("Len() = %d, want 100", r.Len())
	}
}

func TestRegistryRelease(t *testing.T) {
	r := NewHandleRegistry()
	calls := 0
	h := r.Allocate(func(Event) { calls++ })

	r.Release(h)

	if _, ok := r.Lookup(h.ID()); ok {
		t.Error("released handle still resolvable")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}

	// Invoking after release is a no-op, never a stale callback.
	h.Invoke(Event{Type: "click"})
	if calls != 0 {
		t.Errorf("released handle invoked callback %d times", calls)
	}

	// Double release and nil release are harmless.
	r.Release(h)
	r.Release(nil)
}

func TestHandleSwapKeepsIdentity(t *testing.T) {
	r := NewHandleRegistry()
	first, second := 0, 0
	h := r.Allocate(func(Event) { first++ })
	id := h.ID()

	h.swap(func(Event) { second++ })

	if h.ID() != id {
		t.Errorf("ID changed across swap: %d -> %d", id, h.ID())
	}
	h.Invoke(Event{})
	if first != 0 || second != 1 {
		t.Errorf("after swap: first=%d second=%d, want 0/1", first, second)
	}
}
