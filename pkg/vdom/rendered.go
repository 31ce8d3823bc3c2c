package vdom

// RKind is the rendered node type discriminator.
type RKind uint8

const (
	RenderedText RKind = iota
	RenderedElement
	RenderedKeyed
)

// String returns the string representation of the RKind.
func (k RKind) String() string {
	switch k {
	case RenderedText:
		return "Text"
	case RenderedElement:
		return "Element"
	case RenderedKeyed:
		return "Keyed"
	default:
		return "Unknown"
	}
}

// RenderedNode is the persisted baseline mirroring what the display surface
// currently shows. The engine owns it exclusively: each diff cycle replaces
// the baseline wholesale with the tree it returns.
type RenderedNode struct {
	Kind     RKind
	Text     string                  // For RenderedText
	Tag      string                  // For RenderedElement
	Attrs    map[string]string       // Materialized attribute values
	Events   map[string]*EventHandle // Live event registrations, by event name
	Children []*RenderedNode         // For RenderedElement
	Entries  []RenderedEntry         // For RenderedKeyed, in display order
	Count    int                     // For RenderedKeyed: total real nodes, recursively
}

// RenderedEntry is one member of a rendered keyed fragment. Nodes holds the
// entry's flattened subtree.
type RenderedEntry struct {
	Key   string
	Nodes []*RenderedNode
}

// NodeCount returns the number of real (text/element) nodes the subtree
// occupies in the flattened display sequence. Positional edits (Skip,
// Delete, Move) are measured in this unit.
func (r *RenderedNode) NodeCount() int {
	if r == nil {
		return 0
	}
	if r.Kind == RenderedKeyed {
		return r.Count
	}
	return 1
}

// ForestCount sums NodeCount over a rendered forest.
func ForestCount(nodes []*RenderedNode) int {
	total := 0
	for _, n := range nodes {
		total += n.NodeCount()
	}
	return total
}
