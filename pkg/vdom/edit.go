package vdom

// EditOp is the type of edit-script operation.
type EditOp uint8

const (
	EditSkip    EditOp = iota + 1 // Advance past Count unchanged nodes
	EditDelete                    // Remove Count consecutive nodes at the cursor
	EditReplace                   // Swap exactly one node for Node
	EditInsert                    // Add Node at the cursor
	EditInPlace                   // Update one node's attrs/events/children
	EditMove                      // Relocate Count nodes from index From to the cursor
)

// String returns the string representation of the EditOp.
func (op EditOp) String() string {
	switch op {
	case EditSkip:
		return "Skip"
	case EditDelete:
		return "Delete"
	case EditReplace:
		return "Replace"
	case EditInsert:
		return "Insert"
	case EditInPlace:
		return "InPlace"
	case EditMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Edit is a single edit-script operation. The applier walks the live node
// list with a cursor, consuming edits in order; counts are measured in real
// (text/element) nodes.
type Edit struct {
	Op     EditOp
	Count  int                     // For Skip/Delete/Move
	Node   *RenderedNode           // For Replace/Insert (always a real node)
	Attrs  map[string]*string      // For InPlace: new value, nil means remove
	Events map[string]*EventHandle // For InPlace: new handle, nil means remove
	Kids   []Edit                  // For InPlace: child edits
	From   int                     // For Move: current absolute index of source
}

// IsNoop reports whether applying the edit leaves the surface unchanged: a
// Skip, or an InPlace whose child edits are nothing but skips and whose diff
// maps are both empty.
func (e Edit) IsNoop() bool {
	switch e.Op {
	case EditSkip:
		return true
	case EditInPlace:
		if len(e.Attrs) != 0 || len(e.Events) != 0 {
			return false
		}
		for _, k := range e.Kids {
			if k.Op != EditSkip {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// scriptWriter accumulates one sibling list's edit script. Adjacent Skip and
// Delete entries are merged as they are appended; the applier advances its
// cursor by exactly the emitted counts, so the merge is an invariant of the
// encoder, not an optimization.
//
// pos tracks the applier's cursor: the number of live nodes settled before
// it. The keyed reconciler reads it to address absolute node positions.
type scriptWriter struct {
	edits []Edit
	pos   int
}

func (w *scriptWriter) last() *Edit {
	if len(w.edits) == 0 {
		return nil
	}
	return &w.edits[len(w.edits)-1]
}

func (w *scriptWriter) skip(n int) {
	if n <= 0 {
		return
	}
	w.pos += n
	if last := w.last(); last != nil && last.Op == EditSkip {
		last.Count += n
		return
	}
	w.edits = append(w.edits, Edit{Op: EditSkip, Count: n})
}

func (w *scriptWriter) delete(n int) {
	if n <= 0 {
		return
	}
	if last := w.last(); last != nil && last.Op == EditDelete {
		last.Count += n
		return
	}
	w.edits = append(w.edits, Edit{Op: EditDelete, Count: n})
}

func (w *scriptWriter) replace(node *RenderedNode) {
	w.pos++
	w.edits = append(w.edits, Edit{Op: EditReplace, Node: node})
}

func (w *scriptWriter) insert(node *RenderedNode) {
	w.pos++
	w.edits = append(w.edits, Edit{Op: EditInsert, Node: node})
}

func (w *scriptWriter) inPlace(attrs map[string]*string, events map[string]*EventHandle, kids []Edit) {
	w.pos++
	w.edits = append(w.edits, Edit{Op: EditInPlace, Attrs: attrs, Events: events, Kids: kids})
}

// move relocates count nodes from live index `from` to the cursor. All moves
// the engine emits are backward (from < pos): extracting the nodes from
// before the cursor shifts the cursor down by count, and the subtree edits
// that follow re-advance it over the relocated nodes.
func (w *scriptWriter) move(from, count int) {
	w.pos -= count
	w.edits = append(w.edits, Edit{Op: EditMove, From: from, Count: count})
}
