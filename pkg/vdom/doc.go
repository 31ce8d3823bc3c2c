// Package vdom implements the reconciliation engine at the heart of Loom.
//
// View code produces a fresh virtual tree (VNode) on every render pass. The
// engine compares it against the rendered baseline (RenderedNode) persisted
// from the previous pass and produces two things: an ordered edit script
// ([]Edit) for the display-side applier, and the new baseline that replaces
// the old one wholesale.
//
// # Node models
//
// VNode is a tagged union of Empty, Concat, Element, Text, and Keyed.
// Empty and Concat are grouping constructs flattened away before diffing.
// RenderedNode mirrors the virtual shape with materialized data: attribute
// values resolved to strings and event callbacks wrapped in EventHandles.
//
// # Edit script
//
// Edits address a flattened sequence of real (text/element) nodes. Skip and
// Delete carry run-length counts and adjacent entries are always merged; the
// applier advances its cursor by exactly the emitted counts. Keyed fragments
// reconcile by stable key, emitting Move edits instead of replacing
// reordered subtrees.
//
// # Event handles
//
// An EventHandle gives a callback a stable identity across renders. While an
// event name persists on an element, re-renders swap the callback inside the
// existing handle with no edit-script traffic; when the name disappears, the
// handle is released exactly once and the script records the removal.
//
// Diffing is synchronous and deterministic. The host must serialize render
// cycles, since the baseline is shared mutable state handed from one cycle
// to the next.
package vdom
