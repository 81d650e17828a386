package layout

import (
	"testing"

	"github.com/matzehuels/arbor/pkg/tree"
)

// buildFamily builds:
//
//	root
//	├── a ── d
//	│        └── f
//	├── b
//	└── c ── e
//
// where d,f are under a and e is under c.
func buildFamily(t *testing.T) (tr *tree.Tree, a, b, c, d, e, f tree.NodeID) {
	t.Helper()
	tr = tree.New()
	a = mustAdd(t, tr, tr.Root())
	b = mustAdd(t, tr, tr.Root())
	c = mustAdd(t, tr, tr.Root())
	d = mustAdd(t, tr, a)
	f = mustAdd(t, tr, d)
	e = mustAdd(t, tr, c)
	return
}

func TestLeftUncle(t *testing.T) {
	tr, a, b, c, d, e, f := buildFamily(t)

	tests := []struct {
		name   string
		id     tree.NodeID
		want   tree.NodeID
		wantOK bool
	}{
		{"Root", tr.Root(), tree.None, false},
		{"LeftmostChild", a, tree.None, false},
		{"MiddleChild", b, a, true},
		{"RightChild", c, b, true},
		{"LeftmostLeaf", d, tree.None, false},
		{"DeepLeftmost", f, tree.None, false},
		{"CousinViaAncestor", e, b, true}, // e's parent c has left sibling b
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LeftUncle(tr, tt.id)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LeftUncle(%d) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRightAunt(t *testing.T) {
	tr, a, b, c, d, e, f := buildFamily(t)

	tests := []struct {
		name   string
		id     tree.NodeID
		want   tree.NodeID
		wantOK bool
	}{
		{"Root", tr.Root(), tree.None, false},
		{"RightmostChild", c, tree.None, false},
		{"MiddleChild", b, c, true},
		{"LeftChild", a, b, true},
		{"RightmostLeaf", e, tree.None, false},
		{"NephewViaAncestor", d, b, true}, // d's parent a has right sibling b
		{"DeepViaAncestors", f, b, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RightAunt(tr, tt.id)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RightAunt(%d) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtremeDescendants(t *testing.T) {
	tr, a, b, c, d, e, f := buildFamily(t)
	_, _ = c, d

	if got, ok := LeftmostDescendant(tr, tr.Root()); !ok || got != f {
		t.Errorf("LeftmostDescendant(root) = (%d, %v), want (%d, true)", got, ok, f)
	}
	if got, ok := RightmostDescendant(tr, tr.Root()); !ok || got != e {
		t.Errorf("RightmostDescendant(root) = (%d, %v), want (%d, true)", got, ok, e)
	}
	if got, ok := LeftmostDescendant(tr, b); !ok || got != b {
		t.Errorf("leaf should be its own leftmost descendant, got (%d, %v)", got, ok)
	}
	if got, ok := RightmostDescendant(tr, a); !ok || got != f {
		t.Errorf("RightmostDescendant(a) = (%d, %v), want (%d, true)", got, ok, f)
	}
	if _, ok := LeftmostDescendant(tr, 99); ok {
		t.Error("unknown id should report not found")
	}
}
