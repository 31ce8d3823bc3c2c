package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/loomui/loom/pkg/vdom"
)

// Node is the wire form of one real display node.
type Node struct {
	Text     string
	IsText   bool
	Tag      string
	Attrs    map[string]string
	Events   map[string]vdom.HandleID
	Children []*Node
}

// TextNode creates a wire text node.
func TextNode(content string) *Node {
	return &Node{Text: content, IsText: true}
}

// FromNodes converts a rendered forest to wire nodes, flattening keyed
// fragments into their member nodes.
func FromNodes(nodes []*vdom.RenderedNode) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		out = appendWire(out, n)
	}
	return out
}

func appendWire(dst []*Node, r *vdom.RenderedNode) []*Node {
	switch r.Kind {
	case vdom.RenderedText:
		return append(dst, TextNode(r.Text))

	case vdom.RenderedElement:
		n := &Node{Tag: r.Tag}
		if len(r.Attrs) > 0 {
			n.Attrs = make(map[string]string, len(r.Attrs))
			for k, v := range r.Attrs {
				n.Attrs[k] = v
			}
		}
		if len(r.Events) > 0 {
			n.Events = make(map[string]vdom.HandleID, len(r.Events))
			for name, h := range r.Events {
				n.Events[name] = h.ID()
			}
		}
		n.Children = FromNodes(r.Children)
		return append(dst, n)

	case vdom.RenderedKeyed:
		for _, entry := range r.Entries {
			for _, member := range entry.Nodes {
				dst = appendWire(dst, member)
			}
		}
		return dst

	default:
		panic(fmt.Sprintf("protocol: unknown rendered kind %v", r.Kind))
	}
}

type wireElement struct {
	Tag      string                   `json:"t"`
	Attrs    map[string]string        `json:"a,omitempty"`
	Events   map[string]vdom.HandleID `json:"e,omitempty"`
	Children []*Node                  `json:"c,omitempty"`
}

// MarshalJSON encodes a text node as a bare string and an element as a
// tagged object.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsText {
		return json.Marshal(n.Text)
	}
	return json.Marshal(wireElement{
		Tag:      n.Tag,
		Attrs:    n.Attrs,
		Events:   n.Events,
		Children: n.Children,
	})
}

// UnmarshalJSON decodes either node form.
func (n *Node) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		n.IsText = true
		return json.Unmarshal(data, &n.Text)
	}
	var el wireElement
	if err := json.Unmarshal(data, &el); err != nil {
		return err
	}
	if el.Tag == "" {
		return fmt.Errorf("protocol: element node missing tag: %s", data)
	}
	n.IsText = false
	n.Text = ""
	n.Tag = el.Tag
	n.Attrs = el.Attrs
	n.Events = el.Events
	n.Children = el.Children
	return nil
}
