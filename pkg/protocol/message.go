package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/loomui/loom/pkg/vdom"
)

// Message kinds exchanged over the live connection.
const (
	KindMount  = "mount"
	KindUpdate = "update"
	KindEvent  = "event"
)

// Mount carries the fully materialized initial forest for a surface.
type Mount struct {
	Selector string  `json:"sel"`
	Nodes    []*Node `json:"nodes"`
}

// Update carries an edit script for a surface.
type Update struct {
	Selector string `json:"sel"`
	Edits    []Edit `json:"edits"`
}

// Event is a client-side event dispatched back to a registered handle.
type Event struct {
	Handle  vdom.HandleID `json:"h"`
	Type    string        `json:"t"`
	Value   string        `json:"v,omitempty"`
	Checked bool          `json:"c,omitempty"`
	Key     string        `json:"key,omitempty"`
}

// Message is the envelope framing every wire exchange.
type Message struct {
	Kind   string  `json:"k"`
	Mount  *Mount  `json:"mount,omitempty"`
	Update *Update `json:"update,omitempty"`
	Event  *Event  `json:"event,omitempty"`
}

// EncodeMount encodes the initial materialization of a surface.
func EncodeMount(selector string, forest []*vdom.RenderedNode) ([]byte, error) {
	return json.Marshal(Message{
		Kind:  KindMount,
		Mount: &Mount{Selector: selector, Nodes: FromNodes(forest)},
	})
}

// EncodeUpdate encodes an edit script for a surface.
func EncodeUpdate(selector string, edits []vdom.Edit) ([]byte, error) {
	return json.Marshal(Message{
		Kind:   KindUpdate,
		Update: &Update{Selector: selector, Edits: FromEdits(edits)},
	})
}

// DecodeMessage decodes and validates one wire message.
func DecodeMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("protocol: decode message: %w", err)
	}
	switch msg.Kind {
	case KindMount:
		if msg.Mount == nil {
			return nil, errors.New("protocol: mount message missing payload")
		}
	case KindUpdate:
		if msg.Update == nil {
			return nil, errors.New("protocol: update message missing payload")
		}
	case KindEvent:
		if msg.Event == nil {
			return nil, errors.New("protocol: event message missing payload")
		}
		if msg.Event.Handle == 0 {
			return nil, errors.New("protocol: event message missing handle")
		}
		if msg.Event.Type == "" {
			return nil, errors.New("protocol: event message missing type")
		}
	default:
		return nil, fmt.Errorf("protocol: unknown message kind %q", msg.Kind)
	}
	return &msg, nil
}

// DecodeEvent decodes a client event message.
func DecodeEvent(data []byte) (*Event, error) {
	msg, err := DecodeMessage(data)
	if err != nil {
		return nil, err
	}
	if msg.Kind != KindEvent {
		return nil, fmt.Errorf("protocol: expected event message, got %q", msg.Kind)
	}
	return msg.Event, nil
}

// VDOMEvent converts a wire event to the engine's callback payload.
func (ev *Event) VDOMEvent() vdom.Event {
	return vdom.Event{
		Type:    ev.Type,
		Value:   ev.Value,
		Checked: ev.Checked,
		Key:     ev.Key,
	}
}
