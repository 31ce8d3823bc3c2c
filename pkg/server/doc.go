// Package server hosts the reconciliation engine behind an HTTP/WebSocket
// surface.
//
// Each WebSocket connection gets a Session owning one engine, one rendered
// baseline, and one view function. Render cycles are serialized per session:
// a cycle runs the view, diffs against the baseline, swaps the baseline for
// the diff's output, and ships the encoded edit script to the client. Events
// arriving from the client are dispatched through the engine's handle
// registry and followed by a render cycle.
//
// The HTTP side is a chi router serving the mount page, the live WebSocket
// endpoint, and prometheus metrics. Render cycles are traced with otel
// spans.
package server
