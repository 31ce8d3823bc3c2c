package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/loomui/loom/pkg/vdom"
)

// Edit is the wire form of one edit-script operation.
type Edit struct {
	Op     vdom.EditOp
	Count  int
	Node   *Node
	Attrs  map[string]*string
	Events map[string]*vdom.HandleID // nil means remove the registration
	Kids   []Edit
	From   int
}

// FromEdits converts an engine edit script to its wire form.
func FromEdits(edits []vdom.Edit) []Edit {
	out := make([]Edit, len(edits))
	for i, e := range edits {
		out[i] = fromEdit(e)
	}
	return out
}

func fromEdit(e vdom.Edit) Edit {
	w := Edit{Op: e.Op, Count: e.Count, From: e.From}
	switch e.Op {
	case vdom.EditReplace, vdom.EditInsert:
		nodes := FromNodes([]*vdom.RenderedNode{e.Node})
		w.Node = nodes[0]
	case vdom.EditInPlace:
		w.Attrs = e.Attrs
		if len(e.Events) > 0 {
			w.Events = make(map[string]*vdom.HandleID, len(e.Events))
			for name, h := range e.Events {
				if h == nil {
					w.Events[name] = nil
					continue
				}
				id := h.ID()
				w.Events[name] = &id
			}
		}
		w.Kids = FromEdits(e.Kids)
	}
	return w
}

type wireEdit struct {
	Skip    *int                      `json:"s,omitempty"`
	Delete  *int                      `json:"d,omitempty"`
	Replace *Node                     `json:"r,omitempty"`
	Insert  *Node                     `json:"i,omitempty"`
	Attrs   map[string]*string        `json:"a,omitempty"`
	Events  map[string]*vdom.HandleID `json:"e,omitempty"`
	Kids    []Edit                    `json:"c,omitempty"`
	From    *int                      `json:"f,omitempty"`
	Count   *int                      `json:"n,omitempty"`
}

// MarshalJSON encodes the edit with its operation's short field tags.
func (e Edit) MarshalJSON() ([]byte, error) {
	var w wireEdit
	switch e.Op {
	case vdom.EditSkip:
		w.Skip = &e.Count
	case vdom.EditDelete:
		w.Delete = &e.Count
	case vdom.EditReplace:
		w.Replace = e.Node
	case vdom.EditInsert:
		w.Insert = e.Node
	case vdom.EditInPlace:
		w.Attrs = e.Attrs
		w.Events = e.Events
		w.Kids = e.Kids
		if len(e.Attrs) == 0 && len(e.Events) == 0 && len(e.Kids) == 0 {
			// An InPlace that changes nothing still needs a distinguishable
			// encoding; emit an explicit empty child list.
			w.Kids = []Edit{}
			return json.Marshal(struct {
				Kids []Edit `json:"c"`
			}{w.Kids})
		}
	case vdom.EditMove:
		w.From = &e.From
		w.Count = &e.Count
	default:
		return nil, fmt.Errorf("protocol: unknown edit op %v", e.Op)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an edit, inferring the operation from which short
// tags are present.
func (e *Edit) UnmarshalJSON(data []byte) error {
	var w wireEdit
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Edit{}
	switch {
	case w.Skip != nil:
		e.Op = vdom.EditSkip
		e.Count = *w.Skip
	case w.Delete != nil:
		e.Op = vdom.EditDelete
		e.Count = *w.Delete
	case w.Replace != nil:
		e.Op = vdom.EditReplace
		e.Node = w.Replace
	case w.Insert != nil:
		e.Op = vdom.EditInsert
		e.Node = w.Insert
	case w.From != nil && w.Count != nil:
		e.Op = vdom.EditMove
		e.From = *w.From
		e.Count = *w.Count
	case w.Attrs != nil || w.Events != nil || w.Kids != nil:
		e.Op = vdom.EditInPlace
		e.Attrs = w.Attrs
		e.Events = w.Events
		e.Kids = w.Kids
	default:
		return fmt.Errorf("protocol: unrecognizable edit: %s", data)
	}
	return nil
}
