package layout

import (
	"slices"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Relative lookups used by renderers to draw extra connector curves
// between cousin-like subtrees. All four are read-only, O(depth), and
// recomputed on every render rather than cached. Lookups on malformed
// ancestor chains stop early and report not found instead of failing.

// LeftUncle walks up the ancestor chain starting at id and returns the
// first preceding sibling found at any level: the node's own left
// sibling, or an ancestor's left sibling if the node is the leftmost
// child. Returns (None, false) when the root is reached without one -
// the leftmost node at any depth has no left uncle.
func LeftUncle(t *tree.Tree, id tree.NodeID) (tree.NodeID, bool) {
	return sibling(t, id, -1)
}

// RightAunt is the mirror of [LeftUncle]: the first following sibling
// found walking up the ancestor chain.
func RightAunt(t *tree.Tree, id tree.NodeID) (tree.NodeID, bool) {
	return sibling(t, id, +1)
}

// sibling ascends from id, checking at each level whether the current
// node has a sibling at offset dir within its parent's children.
// The walk is bounded by the node count as a cycle guard.
func sibling(t *tree.Tree, id tree.NodeID, dir int) (tree.NodeID, bool) {
	for steps := 0; steps <= t.Len(); steps++ {
		n, ok := t.Node(id)
		if !ok || n.Parent == tree.None {
			return tree.None, false
		}
		p, ok := t.Node(n.Parent)
		if !ok {
			return tree.None, false
		}
		idx := slices.Index(p.Children, id)
		if idx >= 0 {
			if at := idx + dir; at >= 0 && at < len(p.Children) {
				return p.Children[at], true
			}
		}
		id = n.Parent
	}
	return tree.None, false
}

// LeftmostDescendant follows first children from id down to a leaf and
// returns it. A childless node is its own leftmost descendant. Returns
// (None, false) only when id itself is unknown.
func LeftmostDescendant(t *tree.Tree, id tree.NodeID) (tree.NodeID, bool) {
	return extreme(t, id, func(children []tree.NodeID) tree.NodeID { return children[0] })
}

// RightmostDescendant follows last children from id down to a leaf.
func RightmostDescendant(t *tree.Tree, id tree.NodeID) (tree.NodeID, bool) {
	return extreme(t, id, func(children []tree.NodeID) tree.NodeID { return children[len(children)-1] })
}

func extreme(t *tree.Tree, id tree.NodeID, pick func([]tree.NodeID) tree.NodeID) (tree.NodeID, bool) {
	n, ok := t.Node(id)
	if !ok {
		return tree.None, false
	}
	for steps := 0; steps <= t.Len(); steps++ {
		if n.IsLeaf() {
			return n.ID, true
		}
		next, ok := t.Node(pick(n.Children))
		if !ok {
			return n.ID, true
		}
		n = next
	}
	return n.ID, true
}
