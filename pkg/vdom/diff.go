package vdom

import (
	"fmt"
	"strconv"
)

// diffSiblings walks the previous rendered array and the new (flattened)
// virtual sequence in lockstep by position, emitting edits into w and
// returning the rendered nodes that replace old in the baseline.
func (e *Engine) diffSiblings(w *scriptWriter, old []*RenderedNode, next []*VNode) []*RenderedNode {
	out := make([]*RenderedNode, 0, len(next))
	i := 0

	for _, n := range next {
		if i >= len(old) {
			// Old nodes have run out: everything remaining is an insert.
			rn := e.materialize(n)
			e.emitInserts(w, rn)
			out = append(out, rn)
			continue
		}
		o := old[i]
		i++

		switch {
		case o.Kind == RenderedKeyed && n.Kind == KindKeyed:
			out = append(out, e.diffKeyed(w, o, n))

		case o.Kind == RenderedKeyed:
			// A fragment occupies Count flattened positions; a one-node
			// Replace cannot stand in for it.
			w.delete(o.Count)
			e.releaseTree(o)
			rn := e.materialize(n)
			e.emitInserts(w, rn)
			out = append(out, rn)

		case n.Kind == KindKeyed:
			w.delete(1)
			e.releaseTree(o)
			rn := e.materialize(n)
			e.emitInserts(w, rn)
			out = append(out, rn)

		default:
			out = append(out, e.diffNode(w, o, n))
		}
	}

	// Unconsumed old nodes are deleted in bulk, measured in real nodes.
	remainder := 0
	for ; i < len(old); i++ {
		remainder += old[i].NodeCount()
		e.releaseTree(old[i])
	}
	w.delete(remainder)

	return out
}

// diffNode compares one rendered node against one virtual node, emitting a
// Skip, Replace, or InPlace edit and returning the updated rendered node.
func (e *Engine) diffNode(w *scriptWriter, o *RenderedNode, n *VNode) *RenderedNode {
	if n.Kind == KindEmpty || n.Kind == KindConcat {
		// Precondition violation in the upstream flattening step.
		panic("vdom: composite node reached single-node diff: " + n.Kind.String())
	}

	if o.Kind == RenderedText && n.Kind == KindText {
		if o.Text == n.Text {
			w.skip(1)
			return o
		}
		rn := e.materialize(n)
		w.replace(rn)
		return rn
	}

	if o.Kind == RenderedElement && n.Kind == KindElement && o.Tag == n.Tag {
		return e.diffElement(w, o, n)
	}

	// Text vs element, or a different element name: incompatible.
	e.releaseTree(o)
	rn := e.materialize(n)
	w.replace(rn)
	return rn
}

// diffElement computes an in-place update for two same-named elements. If
// nothing changed anywhere in the subtree the whole node collapses to a
// single Skip, which is what lets long static subtrees cost O(1) per render.
func (e *Engine) diffElement(w *scriptWriter, o *RenderedNode, n *VNode) *RenderedNode {
	rn := &RenderedNode{Kind: RenderedElement, Tag: o.Tag}

	// Attributes: set changed/added, nil-sentinel removed ones. The sentinel
	// is distinct from setting an empty string.
	var attrDiff map[string]*string
	if len(n.Attrs) > 0 {
		rn.Attrs = make(map[string]string, len(n.Attrs))
	}
	for k, val := range n.Attrs {
		s := attrString(val)
		rn.Attrs[k] = s
		if prev, ok := o.Attrs[k]; !ok || prev != s {
			v := s
			attrDiff = setAttr(attrDiff, k, &v)
		}
	}
	for k := range o.Attrs {
		if _, ok := n.Attrs[k]; !ok {
			attrDiff = setAttr(attrDiff, k, nil)
		}
	}

	// Events: an event name present on both sides keeps its handle and has
	// its callback swapped in place, with no edit-script entry; the display
	// side registration is unaffected.
	var eventDiff map[string]*EventHandle
	if len(n.Events) > 0 {
		rn.Events = make(map[string]*EventHandle, len(n.Events))
	}
	for name, cb := range n.Events {
		if h, ok := o.Events[name]; ok {
			h.swap(cb)
			rn.Events[name] = h
			continue
		}
		h := e.registry.Allocate(cb)
		rn.Events[name] = h
		eventDiff = setEvent(eventDiff, name, h)
	}
	for name, h := range o.Events {
		if _, ok := n.Events[name]; !ok {
			eventDiff = setEvent(eventDiff, name, nil)
			e.registry.Release(h)
		}
	}

	var cw scriptWriter
	rn.Children = e.diffSiblings(&cw, o.Children, Flatten(n.Children...))

	if len(attrDiff) == 0 && len(eventDiff) == 0 && allSkips(cw.edits) {
		w.skip(1)
		return rn
	}
	w.inPlace(attrDiff, eventDiff, cw.edits)
	return rn
}

// diffKeyed reconciles two keyed fragments, relocating keyed subtrees with
// Move edits instead of replacing them. Moves are measured in real nodes at
// absolute positions within the enclosing sibling list, so the walk threads
// the writer's cursor plus a handled set rather than list indices.
//
// When the current old entry's key is needed later in the new list, the walk
// skips over it positionally and pulls it forward with a backward Move once
// the new list reaches its key. Entries matched at the cursor are never
// moved.
func (e *Engine) diffKeyed(w *scriptWriter, old *RenderedNode, next *VNode) *RenderedNode {
	oldEntries := old.Entries
	newEntries := next.Entries

	// First occurrence owns a duplicated key; later occurrences never match.
	oldIndex := make(map[string]int, len(oldEntries))
	for idx, entry := range oldEntries {
		if _, ok := oldIndex[entry.Key]; ok {
			e.logger.Warn("duplicate key in keyed fragment", "key", entry.Key, "side", "old")
			continue
		}
		oldIndex[entry.Key] = idx
	}
	newIndex := make(map[string]int, len(newEntries))
	for idx, entry := range newEntries {
		if _, ok := newIndex[entry.Key]; ok {
			e.logger.Warn("duplicate key in keyed fragment", "key", entry.Key, "side", "new")
			continue
		}
		newIndex[entry.Key] = idx
	}

	handled := make([]bool, len(oldEntries))
	// Live positions of entries skipped over while waiting to be claimed.
	deferred := make(map[int]int)
	out := &RenderedNode{Kind: RenderedKeyed, Entries: make([]RenderedEntry, 0, len(newEntries))}

	// claim relocates deferred entry k to the cursor and diffs it in place
	// against new entry ne. Extracting the nodes shifts every deferred entry
	// behind them down by the moved count.
	claim := func(k int, ne KeyedEntry) {
		from := deferred[k]
		count := ForestCount(oldEntries[k].Nodes)
		w.move(from, count)
		for m, p := range deferred {
			if p > from {
				deferred[m] = p - count
			}
		}
		delete(deferred, k)
		handled[k] = true
		nodes := e.diffSiblings(w, oldEntries[k].Nodes, Flatten(ne.Node))
		out.Entries = append(out.Entries, RenderedEntry{Key: ne.Key, Nodes: nodes})
	}

	insertFresh := func(ne KeyedEntry) {
		nodes := e.materializeList(Flatten(ne.Node))
		for _, rn := range nodes {
			e.emitInserts(w, rn)
		}
		out.Entries = append(out.Entries, RenderedEntry{Key: ne.Key, Nodes: nodes})
	}

	i, j := 0, 0
	for i < len(oldEntries) && j < len(newEntries) {
		if handled[i] {
			// Already moved or removed earlier; consumes no position.
			i++
			continue
		}
		oe := oldEntries[i]
		ne := newEntries[j]

		if oe.Key == ne.Key && oldIndex[oe.Key] == i && newIndex[ne.Key] == j {
			nodes := e.diffSiblings(w, oe.Nodes, Flatten(ne.Node))
			out.Entries = append(out.Entries, RenderedEntry{Key: ne.Key, Nodes: nodes})
			handled[i] = true
			i++
			j++
			continue
		}

		wantIdx, wanted := newIndex[oe.Key]
		if !wanted || oldIndex[oe.Key] != i || wantIdx <= j {
			// Not needed anywhere ahead in the new list: delete.
			w.delete(ForestCount(oe.Nodes))
			e.releaseList(oe.Nodes)
			handled[i] = true
			i++
			continue
		}

		// oe must wait for its future position; resolve the current new key.
		if k, ok := oldIndex[ne.Key]; ok && newIndex[ne.Key] == j && !handled[k] {
			if k > i {
				// The source lies ahead of the cursor: defer oe and keep
				// walking toward it instead of moving it forward.
				deferred[i] = w.pos
				w.skip(ForestCount(oe.Nodes))
				i++
				continue
			}
			claim(k, ne)
			j++
			continue
		}

		insertFresh(ne)
		j++
	}

	// New entries past the end of the old walk: claim deferred sources or
	// materialize fresh subtrees.
	for ; j < len(newEntries); j++ {
		ne := newEntries[j]
		if k, ok := oldIndex[ne.Key]; ok && newIndex[ne.Key] == j && !handled[k] {
			claim(k, ne)
			continue
		}
		insertFresh(ne)
	}

	// Old entries never claimed by the new list are deleted in bulk.
	remainder := 0
	for ; i < len(oldEntries); i++ {
		if handled[i] {
			continue
		}
		remainder += ForestCount(oldEntries[i].Nodes)
		e.releaseList(oldEntries[i].Nodes)
	}
	w.delete(remainder)

	for _, entry := range out.Entries {
		out.Count += ForestCount(entry.Nodes)
	}
	return out
}

// emitInserts emits one Insert per real node of a materialized subtree.
// Keyed fragments never cross the wire as nodes; their members are inserted
// individually.
func (e *Engine) emitInserts(w *scriptWriter, rn *RenderedNode) {
	if rn.Kind != RenderedKeyed {
		w.insert(rn)
		return
	}
	for _, entry := range rn.Entries {
		for _, n := range entry.Nodes {
			e.emitInserts(w, n)
		}
	}
}

func allSkips(edits []Edit) bool {
	for _, ed := range edits {
		if ed.Op != EditSkip {
			return false
		}
	}
	return true
}

func setAttr(m map[string]*string, k string, v *string) map[string]*string {
	if m == nil {
		m = make(map[string]*string)
	}
	m[k] = v
	return m
}

func setEvent(m map[string]*EventHandle, k string, h *EventHandle) map[string]*EventHandle {
	if m == nil {
		m = make(map[string]*EventHandle)
	}
	m[k] = h
	return m
}

// attrString converts an attribute value to its materialized string form.
func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
