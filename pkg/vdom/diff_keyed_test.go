package vdom

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// keyedList builds a keyed fragment of single-text entries.
func keyedList(keys ...string) *VNode {
	entries := make([]KeyedEntry, len(keys))
	for i, k := range keys {
		entries[i] = Entry(k, Text(k))
	}
	return Keyed(entries...)
}

func entryKeys(r *RenderedNode) []string {
	keys := make([]string, len(r.Entries))
	for i, en := range r.Entries {
		keys[i] = en.Key
	}
	return keys
}

func TestKeyedIdenticalOrderSkips(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "b", "c"))

	edits, next := e.Diff(base, keyedList("a", "b", "c"))

	wantOps(t, edits, EditSkip)
	if edits[0].Count != 3 {
		t.Errorf("Skip count = %d, want 3", edits[0].Count)
	}
	if next[0].Count != 3 {
		t.Errorf("fragment Count = %d, want 3", next[0].Count)
	}
}

func TestKeyedMinimalReorder(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "b", "c"))

	edits, next := e.Diff(base, keyedList("c", "a", "b"))

	// a and b are skipped in place while the walk reaches c, then pulled
	// forward one at a time; c itself is never moved.
	wantOps(t, edits, EditSkip, EditMove, EditSkip, EditMove, EditSkip)
	if edits[0].Count != 3 {
		t.Errorf("leading Skip = %d, want 3", edits[0].Count)
	}
	if edits[1].From != 0 || edits[1].Count != 1 {
		t.Errorf("first Move = (%d,%d), want (0,1)", edits[1].From, edits[1].Count)
	}
	if edits[3].From != 0 || edits[3].Count != 1 {
		t.Errorf("second Move = (%d,%d), want (0,1)", edits[3].From, edits[3].Count)
	}
	moves := 0
	for _, ed := range edits {
		if ed.Op == EditMove {
			moves++
		}
	}
	if moves != 2 {
		t.Errorf("script has %d moves, want exactly 2", moves)
	}
	if got := entryKeys(next[0]); strings.Join(got, "") != "cab" {
		t.Errorf("baseline entry order = %v, want [c a b]", got)
	}
	checkConservation(t, base, edits)
}

func TestKeyedSwapAdjacent(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "b"))

	edits, next := e.Diff(base, keyedList("b", "a"))

	wantOps(t, edits, EditSkip, EditMove, EditSkip)
	if edits[1].From != 0 || edits[1].Count != 1 {
		t.Errorf("Move = (%d,%d), want (0,1)", edits[1].From, edits[1].Count)
	}
	if got := entryKeys(next[0]); strings.Join(got, "") != "ba" {
		t.Errorf("baseline entry order = %v, want [b a]", got)
	}
	checkConservation(t, base, edits)
}

func TestKeyedDisjointSets(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "b"))

	edits, next := e.Diff(base, keyedList("b", "c"))

	// a is deleted, b is matched in place, c is materialized. No move for b.
	wantOps(t, edits, EditDelete, EditSkip, EditInsert)
	if edits[0].Count != 1 {
		t.Errorf("Delete count = %d, want a's node count 1", edits[0].Count)
	}
	if edits[2].Node.Text != "c" {
		t.Errorf("inserted node = %q, want c", edits[2].Node.Text)
	}
	if got := entryKeys(next[0]); strings.Join(got, "") != "bc" {
		t.Errorf("baseline entry order = %v, want [b c]", got)
	}
	checkConservation(t, base, edits)
}

func TestKeyedInsertInMiddle(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "c"))

	edits, _ := e.Diff(base, keyedList("a", "b", "c"))

	wantOps(t, edits, EditSkip, EditInsert, EditSkip)
	if edits[1].Node.Text != "b" {
		t.Errorf("inserted node = %q, want b", edits[1].Node.Text)
	}
}

func TestKeyedDeleteInMiddle(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "b", "c"))

	edits, _ := e.Diff(base, keyedList("a", "c"))

	wantOps(t, edits, EditSkip, EditDelete, EditSkip)
	checkConservation(t, base, edits)
}

func TestKeyedMultiNodeEntries(t *testing.T) {
	e := newTestEngine()
	wide := func(k string) KeyedEntry {
		return Entry(k, Concat(Text(k+"1"), Text(k+"2")))
	}
	base := e.Mount(Keyed(wide("a"), Entry("b", Text("b"))))
	if base[0].Count != 3 {
		t.Fatalf("fragment Count = %d, want 3", base[0].Count)
	}

	edits, next := e.Diff(base, Keyed(Entry("b", Text("b")), wide("a")))

	// a occupies two flattened positions, so the walk skips 2 and the move
	// relocates 2.
	wantOps(t, edits, EditSkip, EditMove, EditSkip)
	if edits[0].Count != 3 {
		t.Errorf("Skip = %d, want 3", edits[0].Count)
	}
	if edits[1].From != 0 || edits[1].Count != 2 {
		t.Errorf("Move = (%d,%d), want (0,2)", edits[1].From, edits[1].Count)
	}
	if next[0].Count != 3 {
		t.Errorf("fragment Count = %d, want 3", next[0].Count)
	}
	checkConservation(t, base, edits)
}

func TestKeyedEntryContentDiffsInPlace(t *testing.T) {
	e := newTestEngine()
	item := func(k, label string) KeyedEntry {
		return Entry(k, El("li", Text(label)))
	}
	base := e.Mount(Keyed(item("a", "first"), item("b", "second")))

	edits, _ := e.Diff(base, Keyed(item("b", "second!"), item("a", "first")))

	// a is skipped over while b matches in place with its label change, then
	// a is pulled forward and re-checked after the move.
	wantOps(t, edits, EditSkip, EditInPlace, EditMove, EditSkip)
	wantOps(t, edits[1].Kids, EditReplace)
	if edits[1].Kids[0].Node.Text != "second!" {
		t.Errorf("replacement = %q, want second!", edits[1].Kids[0].Node.Text)
	}
	checkConservation(t, base, edits)
}

func TestKeyedVersusRealNode(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(keyedList("a", "b"), Text("tail"))

	// Fragment replaced by a plain node: its whole flattened extent is
	// deleted, never a one-node Replace.
	edits, next := e.Diff(base, Text("head"), Text("tail"))

	wantOps(t, edits, EditDelete, EditInsert, EditSkip)
	if edits[0].Count != 2 {
		t.Errorf("Delete count = %d, want fragment extent 2", edits[0].Count)
	}
	if len(next) != 2 || next[0].Kind != RenderedText {
		t.Errorf("baseline = %v, want [Text Text]", next)
	}
	checkConservation(t, base, edits)
}

func TestRealNodeVersusKeyed(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(Text("head"))

	edits, next := e.Diff(base, keyedList("a", "b"))

	wantOps(t, edits, EditDelete, EditInsert, EditInsert)
	if next[0].Kind != RenderedKeyed || next[0].Count != 2 {
		t.Errorf("baseline = %v, want keyed fragment of 2", next[0])
	}
	checkConservation(t, base, edits)
}

func TestKeyedNestedFragmentCounts(t *testing.T) {
	e := newTestEngine()
	inner := Keyed(Entry("x", Text("x")), Entry("y", Text("y")))
	base := e.Mount(Keyed(Entry("a", inner), Entry("b", Text("b"))))

	if base[0].Count != 3 {
		t.Fatalf("outer Count = %d, want 3 (nested fragments count recursively)", base[0].Count)
	}

	edits, _ := e.Diff(base, Keyed(Entry("b", Text("b"))))

	wantOps(t, edits, EditDelete, EditSkip)
	if edits[0].Count != 2 {
		t.Errorf("Delete count = %d, want 2", edits[0].Count)
	}
	checkConservation(t, base, edits)
}

func TestKeyedDuplicateOldKeyDeletedAndWarned(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	base := e.Mount(Keyed(Entry("a", Text("first")), Entry("a", Text("shadow"))))
	buf.Reset()

	edits, next := e.Diff(base, Keyed(Entry("a", Text("first"))))

	// First occurrence wins the match; the shadowed duplicate is deleted.
	wantOps(t, edits, EditSkip, EditDelete)
	if got := entryKeys(next[0]); len(got) != 1 || got[0] != "a" {
		t.Errorf("baseline entries = %v, want [a]", got)
	}
	if !strings.Contains(buf.String(), "duplicate key") {
		t.Error("duplicate old key was not warned about")
	}
	checkConservation(t, base, edits)
}

func TestKeyedDuplicateNewKeyInsertedFreshAndWarned(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	base := e.Mount(keyedList("a"))

	edits, next := e.Diff(base, Keyed(Entry("a", Text("a")), Entry("a", Text("dup"))))

	wantOps(t, edits, EditSkip, EditInsert)
	if len(next[0].Entries) != 2 {
		t.Errorf("baseline entries = %d, want 2", len(next[0].Entries))
	}
	if !strings.Contains(buf.String(), "duplicate key") {
		t.Error("duplicate new key was not warned about")
	}
}

func TestKeyedEventHandlesSurviveMoves(t *testing.T) {
	e := newTestEngine()
	calls := map[string]int{}
	item := func(k string) KeyedEntry {
		return Entry(k, El("li", On("click", func(Event) { calls[k]++ })))
	}
	base := e.Mount(Keyed(item("a"), item("b")))
	ha := base[0].Entries[0].Nodes[0].Events["click"]

	_, next := e.Diff(base, Keyed(item("b"), item("a")))

	var movedA *RenderedNode
	for _, en := range next[0].Entries {
		if en.Key == "a" {
			movedA = en.Nodes[0]
		}
	}
	if movedA == nil {
		t.Fatal("entry a missing from new baseline")
	}
	if movedA.Events["click"] != ha {
		t.Error("moved entry did not keep its handle identity")
	}
	if e.Registry().Len() != 2 {
		t.Errorf("registry has %d handles, want 2", e.Registry().Len())
	}
	ha.Invoke(Event{Type: "click"})
	if calls["a"] != 1 {
		t.Errorf("calls = %v, want a invoked once via swapped callback", calls)
	}
}

func TestKeyedDroppedEntriesReleaseHandles(t *testing.T) {
	e := newTestEngine()
	item := func(k string) KeyedEntry {
		return Entry(k, El("li", On("click", func(Event) {})))
	}
	base := e.Mount(Keyed(item("a"), item("b"), item("c")))
	if e.Registry().Len() != 3 {
		t.Fatalf("registry has %d handles after mount, want 3", e.Registry().Len())
	}

	_, _ = e.Diff(base, Keyed(item("b")))

	if e.Registry().Len() != 1 {
		t.Errorf("registry has %d handles, want 1", e.Registry().Len())
	}
}
