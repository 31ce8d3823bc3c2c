package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// handleIdentity compares event handles by wire identity so rendered trees
// can be diffed with cmp.
var handleIdentity = cmp.Comparer(func(a, b *EventHandle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
})

func demoTree() *VNode {
	return El("section", Attrs{"class": "app", "data-count": 2},
		El("h1", Text("Items")),
		Keyed(
			Entry("a", El("li", On("click", func(Event) {}), Text("alpha"))),
			Entry("b", El("li", Text("beta"))),
		),
		Concat(Text("footer"), Empty()),
	)
}

func TestMountMaterializesForest(t *testing.T) {
	e := newTestEngine()

	base := e.Mount(demoTree())

	if len(base) != 1 {
		t.Fatalf("forest has %d roots, want 1", len(base))
	}
	root := base[0]
	if root.Kind != RenderedElement || root.Tag != "section" {
		t.Fatalf("root = %v %q, want Element section", root.Kind, root.Tag)
	}
	if root.Attrs["data-count"] != "2" {
		t.Errorf("data-count = %q, want materialized %q", root.Attrs["data-count"], "2")
	}
	// h1, keyed fragment, footer text: Concat/Empty flattened away.
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}
	frag := root.Children[1]
	if frag.Kind != RenderedKeyed || frag.Count != 2 {
		t.Errorf("fragment = %v Count=%d, want Keyed Count=2", frag.Kind, frag.Count)
	}
	if e.Registry().Len() != 1 {
		t.Errorf("registry has %d handles, want 1", e.Registry().Len())
	}
	if h := frag.Entries[0].Nodes[0].Events["click"]; h == nil {
		t.Error("mounted element lost its event handle")
	}
}

func TestDiffIdempotence(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(demoTree())

	edits, next := e.Diff(base, demoTree())

	wantOps(t, edits, EditSkip)
	if edits[0].Count != ForestCount(base) {
		t.Errorf("Skip count = %d, want full leaf count %d", edits[0].Count, ForestCount(base))
	}
	if diff := cmp.Diff(base, next, handleIdentity); diff != "" {
		t.Errorf("baseline changed across identity diff (-old +new):\n%s", diff)
	}
}

func TestMountThenDiffRoundTrip(t *testing.T) {
	e := newTestEngine()
	trees := [][]*VNode{
		{Text("plain")},
		{El("div", Attrs{"id": "x"}, El("span", "nested"))},
		{keyedList("a", "b", "c")},
		{Concat(Text("a"), El("hr"), Keyed(Entry("k", El("p", "v"))))},
	}
	for _, tree := range trees {
		base := e.Mount(tree...)
		edits, _ := e.Diff(base, tree...)
		wantOps(t, edits, EditSkip)
		if edits[0].Count != ForestCount(base) {
			t.Errorf("Skip count = %d, want %d", edits[0].Count, ForestCount(base))
		}
	}
}

func TestBaselineReplacedWholesale(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(El("div", Text("one")))

	_, next := e.Diff(base, El("div", Text("two")))
	edits, final := e.Diff(next, El("div", Text("two")))

	// The returned forest is the next cycle's comparison point.
	wantOps(t, edits, EditSkip)
	if diff := cmp.Diff(next, final, handleIdentity); diff != "" {
		t.Errorf("second identity diff changed the baseline:\n%s", diff)
	}
}

func TestForestCount(t *testing.T) {
	e := newTestEngine()
	base := e.Mount(
		Text("a"),
		El("div", El("span")), // children do not count at this level
		keyedList("x", "y"),
	)
	if got := ForestCount(base); got != 4 {
		t.Errorf("ForestCount = %d, want 4", got)
	}
}

func TestAttrString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"s", "s"},
		{true, "true"},
		{false, "false"},
		{7, "7"},
		{int64(8), "8"},
		{1.5, "1.5"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := attrString(c.in); got != c.want {
			t.Errorf("attrString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
