package el

import "github.com/loomui/loom/pkg/vdom"

// Text creates a text node.
func Text(content string) *VNode { return vdom.Text(content) }

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode { return vdom.Textf(format, args...) }

// On binds a callback to an event name.
func On(name string, cb vdom.Callback) vdom.EventBinding { return vdom.On(name, cb) }

// Nothing contributes no output. Useful as the arm of a conditional.
func Nothing() *VNode { return vdom.Empty() }

// Group flattens children without a wrapper element.
func Group(children ...*VNode) *VNode { return vdom.Concat(children...) }

// If renders node when the condition holds and nothing otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return vdom.Empty()
}

// IfElse renders one of two nodes depending on the condition.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When defers construction of the node until the condition holds. Use it when
// building the subtree would dereference state that is only valid conditionally.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return vdom.Empty()
}

// Unless renders node when the condition does not hold.
func Unless(condition bool, node *VNode) *VNode {
	return If(!condition, node)
}

// Range maps a slice to child nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, len(items))
	for i, item := range items {
		out[i] = fn(item, i)
	}
	return out
}

// Repeat builds n child nodes by index.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	out := make([]*VNode, n)
	for i := range out {
		out[i] = fn(i)
	}
	return out
}

// Keyed creates a keyed fragment from entries in render order.
func Keyed(entries ...vdom.KeyedEntry) *VNode { return vdom.Keyed(entries...) }

// Entry pairs a stable key with a subtree for use inside Keyed.
func Entry(key string, node *VNode) vdom.KeyedEntry { return vdom.Entry(key, node) }

// KeyedRange maps a slice to a keyed fragment, deriving each key from the item.
func KeyedRange[T any](items []T, fn func(item T, index int) (string, *VNode)) *VNode {
	entries := make([]vdom.KeyedEntry, len(items))
	for i, item := range items {
		key, node := fn(item, i)
		entries[i] = vdom.Entry(key, node)
	}
	return vdom.Keyed(entries...)
}
