package layout

import (
	"testing"

	"github.com/matzehuels/arbor/pkg/tree"
)

func mustAdd(t *testing.T, tr *tree.Tree, parent tree.NodeID) tree.NodeID {
	t.Helper()
	id, err := tr.AddNode(parent)
	if err != nil {
		t.Fatalf("AddNode(%d): %v", parent, err)
	}
	return id
}

func nodeAt(t *testing.T, tr *tree.Tree, id tree.NodeID) *tree.Node {
	t.Helper()
	n, ok := tr.Node(id)
	if !ok {
		t.Fatalf("node %d not found", id)
	}
	return n
}

func TestNewDefaults(t *testing.T) {
	e := New(0, -1)
	if e.SpaceX != DefaultSpaceX || e.SpaceY != DefaultSpaceY {
		t.Errorf("engine = %+v, want defaults", e)
	}
}

func TestRecalculateVerticalSpacing(t *testing.T) {
	tr := tree.New()
	a := mustAdd(t, tr, tr.Root())
	b := mustAdd(t, tr, a)
	mustAdd(t, tr, b)

	e := New(10, 25)
	e.Recalculate(tr)

	for _, n := range tr.Nodes() {
		want := float64(tr.Depth(n.ID)) * e.SpaceY
		if n.Y != want {
			t.Errorf("node %d y = %v, want %v", n.ID, n.Y, want)
		}
	}
}

func TestRecalculateCentersParents(t *testing.T) {
	// root -> a, b, c; a -> d; c -> e, f
	tr := tree.New()
	a := mustAdd(t, tr, tr.Root())
	b := mustAdd(t, tr, tr.Root())
	c := mustAdd(t, tr, tr.Root())
	mustAdd(t, tr, a)
	mustAdd(t, tr, c)
	mustAdd(t, tr, c)
	_ = b

	e := New(10, 10)
	e.Recalculate(tr)

	for _, n := range tr.Nodes() {
		if n.IsLeaf() {
			continue
		}
		first := nodeAt(t, tr, n.Children[0])
		last := nodeAt(t, tr, n.Children[len(n.Children)-1])
		want := (first.X + last.X) / 2
		if n.X != want {
			t.Errorf("node %d x = %v, want midpoint %v", n.ID, n.X, want)
		}
	}
}

func TestRecalculateMidpointIgnoresMiddleChildren(t *testing.T) {
	// The parent centers over first/last only; a subtree hanging off a
	// middle child widens the span but must not pull the parent.
	tr := tree.New()
	mustAdd(t, tr, tr.Root())
	mid := mustAdd(t, tr, tr.Root())
	mustAdd(t, tr, tr.Root())
	mustAdd(t, tr, mid)
	mustAdd(t, tr, mid)
	mustAdd(t, tr, mid)

	e := New(10, 10)
	e.Recalculate(tr)

	root := nodeAt(t, tr, tr.Root())
	first := nodeAt(t, tr, root.Children[0])
	last := nodeAt(t, tr, root.Children[len(root.Children)-1])
	if want := (first.X + last.X) / 2; root.X != want {
		t.Errorf("root x = %v, want %v", root.X, want)
	}
}

func TestRecalculateLeafCursor(t *testing.T) {
	tr := tree.New()
	a := mustAdd(t, tr, tr.Root())
	b := mustAdd(t, tr, tr.Root())
	c := mustAdd(t, tr, tr.Root())

	e := New(10, 10)
	e.Recalculate(tr)

	want := map[tree.NodeID]float64{a: 0, b: 10, c: 20}
	for id, x := range want {
		if got := nodeAt(t, tr, id).X; got != x {
			t.Errorf("leaf %d x = %v, want %v", id, got, x)
		}
	}
}

func TestRecalculateRoundTripScenario(t *testing.T) {
	tr := tree.New()
	e := New(10, 10)
	e.Recalculate(tr)

	n2 := mustAdd(t, tr, 1)
	e.Recalculate(tr)
	if got := nodeAt(t, tr, n2).Y; got != e.SpaceY {
		t.Errorf("y(2) = %v, want %v", got, e.SpaceY)
	}
	if got := tr.Depth(n2); got != 1 {
		t.Errorf("depth(2) = %d, want 1", got)
	}

	n3 := mustAdd(t, tr, 1)
	n4 := mustAdd(t, tr, n2)
	e.Recalculate(tr)

	if x2, x4 := nodeAt(t, tr, n2).X, nodeAt(t, tr, n4).X; x2 != x4 {
		t.Errorf("single-child parent x = %v, child x = %v, want equal", x2, x4)
	}
	x1 := nodeAt(t, tr, 1).X
	if want := (nodeAt(t, tr, n2).X + nodeAt(t, tr, n3).X) / 2; x1 != want {
		t.Errorf("root x = %v, want %v", x1, want)
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	tr := tree.New()
	a := mustAdd(t, tr, tr.Root())
	mustAdd(t, tr, tr.Root())
	mustAdd(t, tr, a)
	mustAdd(t, tr, a)

	e := New(10, 10)
	e.Recalculate(tr)

	type pos struct{ x, y float64 }
	first := make(map[tree.NodeID]pos)
	for _, n := range tr.Nodes() {
		first[n.ID] = pos{n.X, n.Y}
	}

	e.Recalculate(tr)
	for _, n := range tr.Nodes() {
		if got := (pos{n.X, n.Y}); got != first[n.ID] {
			t.Errorf("node %d moved on recompute: %v -> %v", n.ID, first[n.ID], got)
		}
	}
}

func TestRecalculateColors(t *testing.T) {
	tr := tree.NewWithEndpoints()
	seeded := nodeAt(t, tr, tr.Root()).Children
	startID, goalID := seeded[0], seeded[len(seeded)-1]

	// Regular nodes added later displace the goal from the last slot
	// but never inherit the endpoint colors.
	extra := mustAdd(t, tr, tr.Root())
	deep := mustAdd(t, tr, extra)

	e := New(10, 10)
	e.Recalculate(tr)

	root := nodeAt(t, tr, tr.Root())
	if root.Color != DepthColor(0) {
		t.Errorf("root color = %q, want %q", root.Color, DepthColor(0))
	}
	if got := nodeAt(t, tr, extra).Color; got != DepthColor(1) {
		t.Errorf("depth-1 color = %q, want %q", got, DepthColor(1))
	}
	if got := nodeAt(t, tr, deep).Color; got != DepthColor(2) {
		t.Errorf("depth-2 color = %q, want %q", got, DepthColor(2))
	}

	if got := nodeAt(t, tr, startID).Color; got != StartColor {
		t.Errorf("start color = %q, want %q", got, StartColor)
	}
	if got := nodeAt(t, tr, goalID).Color; got != GoalColor {
		t.Errorf("goal color = %q, want %q", got, GoalColor)
	}
	if last := root.Children[len(root.Children)-1]; last != extra {
		t.Errorf("last child = %d, want appended node %d", last, extra)
	}
}

func TestDepthColorWraps(t *testing.T) {
	if DepthColor(0) != DepthColor(len(depthPalette)) {
		t.Error("palette should wrap around at its length")
	}
	if DepthColor(-3) != DepthColor(0) {
		t.Error("negative depth should map to depth 0")
	}
}
