package vdom

import "log/slog"

// Engine computes edit scripts between a rendered baseline and fresh virtual
// trees. It owns the handle registry; the baseline itself is owned by the
// host, which must serialize cycles (one Diff must complete, including
// baseline replacement, before the next starts).
type Engine struct {
	registry *HandleRegistry
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for reconciliation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with a fresh handle registry.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: NewHandleRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's handle registry, used by the host to
// dispatch incoming events to callbacks.
func (e *Engine) Registry() *HandleRegistry {
	return e.registry
}

// Mount materializes a virtual forest into the initial rendered baseline,
// allocating a handle for every event callback. There is no prior state;
// the result is handed to the display side wholesale.
func (e *Engine) Mount(nodes ...*VNode) []*RenderedNode {
	return e.materializeList(Flatten(nodes...))
}

// Diff compares the previous baseline against a new virtual forest and
// returns the edit script plus the rendered forest to use as the next
// cycle's baseline. The old baseline must not be reused afterwards: handles
// for events that disappeared have been released, and surviving handles have
// had their callbacks swapped in place.
func (e *Engine) Diff(before []*RenderedNode, after ...*VNode) ([]Edit, []*RenderedNode) {
	var w scriptWriter
	next := e.diffSiblings(&w, before, Flatten(after...))
	return w.edits, next
}

// materializeList converts a flattened virtual sequence into rendered nodes.
func (e *Engine) materializeList(nodes []*VNode) []*RenderedNode {
	out := make([]*RenderedNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, e.materialize(n))
	}
	return out
}

func (e *Engine) materialize(v *VNode) *RenderedNode {
	switch v.Kind {
	case KindText:
		return &RenderedNode{Kind: RenderedText, Text: v.Text}

	case KindElement:
		rn := &RenderedNode{Kind: RenderedElement, Tag: v.Tag}
		if len(v.Attrs) > 0 {
			rn.Attrs = make(map[string]string, len(v.Attrs))
			for k, val := range v.Attrs {
				rn.Attrs[k] = attrString(val)
			}
		}
		if len(v.Events) > 0 {
			rn.Events = make(map[string]*EventHandle, len(v.Events))
			for name, cb := range v.Events {
				rn.Events[name] = e.registry.Allocate(cb)
			}
		}
		rn.Children = e.materializeList(Flatten(v.Children...))
		return rn

	case KindKeyed:
		rn := &RenderedNode{Kind: RenderedKeyed}
		seen := make(map[string]bool, len(v.Entries))
		for _, entry := range v.Entries {
			if seen[entry.Key] {
				e.logger.Warn("duplicate key in keyed fragment", "key", entry.Key)
			}
			seen[entry.Key] = true
			nodes := e.materializeList(Flatten(entry.Node))
			rn.Entries = append(rn.Entries, RenderedEntry{Key: entry.Key, Nodes: nodes})
			rn.Count += ForestCount(nodes)
		}
		return rn

	default:
		// Empty/Concat must have been flattened out upstream.
		panic("vdom: composite node reached materialization: " + v.Kind.String())
	}
}

// releaseTree releases every event handle held anywhere in a subtree that is
// leaving the baseline. Handles are released deterministically the moment
// their owning node disappears, never garbage-waited.
func (e *Engine) releaseTree(r *RenderedNode) {
	switch r.Kind {
	case RenderedElement:
		for _, h := range r.Events {
			e.registry.Release(h)
		}
		for _, c := range r.Children {
			e.releaseTree(c)
		}
	case RenderedKeyed:
		for _, entry := range r.Entries {
			for _, n := range entry.Nodes {
				e.releaseTree(n)
			}
		}
	}
}

func (e *Engine) releaseList(nodes []*RenderedNode) {
	for _, n := range nodes {
		e.releaseTree(n)
	}
}
