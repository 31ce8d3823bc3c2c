package vdom

import "fmt"

// Attrs holds element attributes for El.
type Attrs map[string]any

// EventBinding attaches a callback to a named event when passed to El.
type EventBinding struct {
	Name     string
	Callback Callback
}

// On binds a callback to an event name (e.g., "click").
func On(name string, cb Callback) EventBinding {
	return EventBinding{Name: name, Callback: cb}
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Empty creates a node that contributes nothing to the output.
func Empty() *VNode {
	return &VNode{Kind: KindEmpty}
}

// Concat groups nodes without a wrapper element. The group is flattened away
// before diffing.
func Concat(children ...*VNode) *VNode {
	return &VNode{Kind: KindConcat, Children: children}
}

// El creates an element node. Arguments may be Attrs, EventBinding, *VNode,
// []*VNode, or string (shorthand for a text child).
func El(tag string, args ...any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attrs:
			if node.Attrs == nil {
				node.Attrs = make(map[string]any, len(v))
			}
			for k, val := range v {
				node.Attrs[k] = val
			}
		case EventBinding:
			if node.Events == nil {
				node.Events = make(map[string]Callback)
			}
			node.Events[v.Name] = v.Callback
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		default:
			panic(fmt.Sprintf("vdom: invalid argument %T to El(%q)", arg, tag))
		}
	}
	return node
}

// Keyed creates a keyed fragment from entries in render order.
func Keyed(entries ...KeyedEntry) *VNode {
	return &VNode{Kind: KindKeyed, Entries: entries}
}

// Entry pairs a stable key with a subtree for use inside Keyed.
func Entry(key string, node *VNode) KeyedEntry {
	return KeyedEntry{Key: key, Node: node}
}
