// Package protocol implements the wire format between the reconciliation
// engine and the display-side applier.
//
// The server sends two message kinds: Mount, carrying the fully materialized
// initial node forest, and Update, carrying an edit script. The client sends
// Event messages when a registered handler fires.
//
// # Edit encoding
//
// Edits serialize to compact JSON objects with one-letter field tags:
//
//	{"s":3}                  skip 3 nodes
//	{"d":2}                  delete 2 nodes
//	{"r":node}               replace one node
//	{"i":node}               insert one node
//	{"a":{...},"e":{...},"c":[...]}  in-place update (attrs/events/children)
//	{"f":4,"n":2}            move 2 nodes from index 4 to the cursor
//
// In attribute diffs a null value means "remove the attribute", distinct
// from setting it to the empty string. In event diffs values are handle IDs,
// null meaning "remove the registration".
//
// # Node encoding
//
// A text node is a bare JSON string. An element is an object:
//
//	{"t":"div","a":{"class":"x"},"e":{"click":7},"c":[...]}
//
// Empty members are omitted. Keyed fragments never appear on the wire; their
// members are flattened into individual nodes.
package protocol
