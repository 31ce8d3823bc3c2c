package vdom

// VKind is the virtual node type discriminator.
type VKind uint8

const (
	KindEmpty  VKind = iota // Contributes nothing
	KindConcat              // Transparent grouping, flattened before diffing
	KindElement
	KindText
	KindKeyed // Reorderable group identified by stable keys
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindConcat:
		return "Concat"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindKeyed:
		return "Keyed"
	default:
		return "Unknown"
	}
}

// VNode is a virtual tree node. View code produces a fresh VNode forest on
// every render pass; the engine never mutates it.
type VNode struct {
	Kind     VKind
	Tag      string              // Element tag name (e.g., "div")
	Attrs    map[string]any      // Element attributes
	Events   map[string]Callback // Element event handlers, by event name
	Children []*VNode            // Element children (KindElement, KindConcat)
	Text     string              // For KindText
	Entries  []KeyedEntry        // For KindKeyed, in render order
}

// KeyedEntry is one member of a keyed group.
type KeyedEntry struct {
	Key  string
	Node *VNode
}

// IsReal reports whether the node is a real display node (text or element),
// as opposed to a grouping construct.
func (v *VNode) IsReal() bool {
	return v != nil && (v.Kind == KindText || v.Kind == KindElement)
}

// Flatten expands Concat groups and drops Empty/nil nodes, returning the
// sequence of real nodes and keyed fragments. The diff engine requires its
// virtual input to be flattened first.
func Flatten(nodes ...*VNode) []*VNode {
	var out []*VNode
	return appendFlat(out, nodes)
}

func appendFlat(dst []*VNode, nodes []*VNode) []*VNode {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch n.Kind {
		case KindEmpty:
		case KindConcat:
			dst = appendFlat(dst, n.Children)
		default:
			dst = append(dst, n)
		}
	}
	return dst
}
