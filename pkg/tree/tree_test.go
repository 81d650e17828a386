package tree

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	tr := New()

	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
	root, ok := tr.Node(1)
	if !ok {
		t.Fatal("root not found")
	}
	if !root.IsRoot() || !root.IsLeaf() {
		t.Errorf("root = %+v, want parentless leaf", root)
	}
	if got := tr.Root(); got != 1 {
		t.Errorf("Root() = %d, want 1", got)
	}
}

func TestNewWithEndpoints(t *testing.T) {
	tr := NewWithEndpoints()

	if tr.Len() != 3 {
		t.Fatalf("len = %d, want 3", tr.Len())
	}
	root, _ := tr.Node(tr.Root())
	if len(root.Children) != 2 {
		t.Fatalf("root children = %v, want 2 entries", root.Children)
	}

	start, _ := tr.Node(root.Children[0])
	goal, _ := tr.Node(root.Children[len(root.Children)-1])
	if start.Kind != KindStart {
		t.Errorf("first child kind = %v, want KindStart", start.Kind)
	}
	if goal.Kind != KindGoal {
		t.Errorf("last child kind = %v, want KindGoal", goal.Kind)
	}
}

func TestAddNode(t *testing.T) {
	tr := New()

	id, err := tr.AddNode(tr.Root())
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if id != 2 {
		t.Errorf("id = %d, want 2", id)
	}

	n, _ := tr.Node(id)
	if n.Parent != tr.Root() {
		t.Errorf("parent = %d, want %d", n.Parent, tr.Root())
	}
	root, _ := tr.Node(tr.Root())
	if !slices.Equal(root.Children, []NodeID{2}) {
		t.Errorf("root children = %v, want [2]", root.Children)
	}
}

func TestAddNodeAppendsLast(t *testing.T) {
	tr := New()
	a, _ := tr.AddNode(tr.Root())
	b, _ := tr.AddNode(tr.Root())
	c, _ := tr.AddNode(tr.Root())

	root, _ := tr.Node(tr.Root())
	if !slices.Equal(root.Children, []NodeID{a, b, c}) {
		t.Errorf("children = %v, want [%d %d %d]", root.Children, a, b, c)
	}
}

func TestAddNodeUnknownParent(t *testing.T) {
	tr := New()

	for _, parent := range []NodeID{None, 99} {
		if _, err := tr.AddNode(parent); !errors.Is(err, ErrUnknownParent) {
			t.Errorf("AddNode(%d) err = %v, want ErrUnknownParent", parent, err)
		}
	}
	if tr.Len() != 1 {
		t.Errorf("len = %d, want 1 (rejected adds must not create nodes)", tr.Len())
	}
}

func TestIDsNeverReused(t *testing.T) {
	tr := New()
	a, _ := tr.AddNode(tr.Root())
	tr.RemoveNode(a)

	b, _ := tr.AddNode(tr.Root())
	if b <= a {
		t.Errorf("new id = %d, want > %d (ids are never reused)", b, a)
	}
}

func TestRemoveNode(t *testing.T) {
	// root(1) -> a(2) -> c(4), d(5); root -> b(3)
	build := func() (*Tree, NodeID, NodeID, NodeID, NodeID) {
		tr := New()
		a, _ := tr.AddNode(tr.Root())
		b, _ := tr.AddNode(tr.Root())
		c, _ := tr.AddNode(a)
		d, _ := tr.AddNode(a)
		return tr, a, b, c, d
	}

	t.Run("Subtree", func(t *testing.T) {
		tr, a, b, c, d := build()
		if got := tr.RemoveNode(a); got != 3 {
			t.Errorf("removed = %d, want 3", got)
		}
		if tr.Len() != 2 {
			t.Errorf("len = %d, want 2", tr.Len())
		}
		for _, id := range []NodeID{a, c, d} {
			if _, ok := tr.Node(id); ok {
				t.Errorf("node %d still present", id)
			}
		}
		root, _ := tr.Node(tr.Root())
		if !slices.Equal(root.Children, []NodeID{b}) {
			t.Errorf("root children = %v, want [%d]", root.Children, b)
		}
	})

	t.Run("RootIsNoop", func(t *testing.T) {
		tr, _, _, _, _ := build()
		if got := tr.RemoveNode(tr.Root()); got != 0 {
			t.Errorf("removed = %d, want 0", got)
		}
		if tr.Len() != 5 {
			t.Errorf("len = %d, want 5", tr.Len())
		}
	})

	t.Run("UnknownIsNoop", func(t *testing.T) {
		tr, _, _, _, _ := build()
		if got := tr.RemoveNode(42); got != 0 {
			t.Errorf("removed = %d, want 0", got)
		}
	})

	t.Run("ClearsSelection", func(t *testing.T) {
		tr, a, _, c, _ := build()
		tr.Select(c)
		tr.RemoveNode(a)
		if got := tr.Selected(); got != None {
			t.Errorf("selected = %d, want None", got)
		}
	})

	t.Run("KeepsUnrelatedSelection", func(t *testing.T) {
		tr, a, b, _, _ := build()
		tr.Select(b)
		tr.RemoveNode(a)
		if got := tr.Selected(); got != b {
			t.Errorf("selected = %d, want %d", got, b)
		}
	})
}

func TestSelection(t *testing.T) {
	tr := New()
	a, _ := tr.AddNode(tr.Root())

	tr.Select(a)
	if got := tr.Selected(); got != a {
		t.Errorf("selected = %d, want %d", got, a)
	}

	// Stale ids are stored but filtered at read time.
	tr.Select(99)
	if got := tr.Selected(); got != None {
		t.Errorf("selected = %d, want None for stale id", got)
	}
}

func TestDepth(t *testing.T) {
	tr := New()
	a, _ := tr.AddNode(tr.Root())
	b, _ := tr.AddNode(a)

	tests := []struct {
		name string
		id   NodeID
		want int
	}{
		{"None", None, -1},
		{"Root", tr.Root(), 0},
		{"Child", a, 1},
		{"Grandchild", b, 2},
		{"Unknown", 42, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Depth(tt.id); got != tt.want {
				t.Errorf("Depth(%d) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestDepthMalformedStopsEarly(t *testing.T) {
	// A parent pointing outside the table must stop the walk rather
	// than loop. Build via Restore-free internal state.
	tr := &Tree{nodes: map[NodeID]*Node{
		5: {ID: 5, Parent: 99},
	}, nextID: 6}

	if got := tr.Depth(5); got != 0 {
		t.Errorf("Depth = %d, want 0 (accumulated hops before the gap)", got)
	}
}

func TestMaxDepth(t *testing.T) {
	tr := New()
	if got := tr.MaxDepth(); got != 0 {
		t.Errorf("MaxDepth = %d, want 0", got)
	}

	a, _ := tr.AddNode(tr.Root())
	b, _ := tr.AddNode(a)
	tr.AddNode(b)
	if got := tr.MaxDepth(); got != 3 {
		t.Errorf("MaxDepth = %d, want 3", got)
	}
}

func TestDescendants(t *testing.T) {
	tr := New()
	a, _ := tr.AddNode(tr.Root())
	b, _ := tr.AddNode(tr.Root())
	c, _ := tr.AddNode(a)

	got := tr.Descendants(tr.Root())
	want := []NodeID{a, c, b}
	if !slices.Equal(got, want) {
		t.Errorf("Descendants = %v, want %v (pre-order)", got, want)
	}
	if d := tr.Descendants(c); d != nil {
		t.Errorf("leaf descendants = %v, want nil", d)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	tr := New()
	tr.AddNode(tr.Root())
	tr.AddNode(tr.Root())

	visits := 0
	tr.Walk(tr.Root(), func(*Node) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("visits = %d, want 1", visits)
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
	}{
		{
			name: "Valid",
			nodes: []Node{
				{ID: 1, Children: []NodeID{2, 3}},
				{ID: 2, Parent: 1},
				{ID: 3, Parent: 1},
			},
		},
		{
			name:    "InvalidID",
			nodes:   []Node{{ID: 0}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "Duplicate",
			nodes:   []Node{{ID: 1}, {ID: 1}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "DanglingChild",
			nodes: []Node{
				{ID: 1, Children: []NodeID{9}},
			},
			wantErr: ErrDanglingChild,
		},
		{
			name: "Asymmetric",
			nodes: []Node{
				{ID: 1, Children: []NodeID{2}},
				{ID: 2, Parent: 3},
				{ID: 3, Parent: 1},
			},
			wantErr: ErrAsymmetricLink,
		},
		{
			name: "MultipleRoots",
			nodes: []Node{
				{ID: 1},
				{ID: 2},
			},
			wantErr: ErrMultipleRoots,
		},
		{
			name: "ParentCycle",
			nodes: []Node{
				{ID: 1, Parent: 2, Children: []NodeID{2}},
				{ID: 2, Parent: 1, Children: []NodeID{1}},
			},
			wantErr: ErrNoRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Restore(tt.nodes, None)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if tr.Len() != len(tt.nodes) {
				t.Errorf("len = %d, want %d", tr.Len(), len(tt.nodes))
			}
		})
	}
}

func TestRestoreResumesIDCounter(t *testing.T) {
	tr, err := Restore([]Node{
		{ID: 1, Children: []NodeID{7}},
		{ID: 7, Parent: 1},
	}, None)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	id, err := tr.AddNode(1)
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if id != 8 {
		t.Errorf("next id = %d, want 8", id)
	}
}

func TestValidateMutationsPreserveInvariants(t *testing.T) {
	tr := NewWithEndpoints()
	a, _ := tr.AddNode(tr.Root())
	b, _ := tr.AddNode(a)
	tr.AddNode(b)
	tr.RemoveNode(a)

	if err := tr.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
