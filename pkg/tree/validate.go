package tree

import "errors"

var (
	// ErrNoRoot is returned by [Tree.Validate] when no parentless node
	// exists. Every non-empty tree must have a root.
	ErrNoRoot = errors.New("tree has no root")

	// ErrMultipleRoots is returned by [Tree.Validate] when more than one
	// parentless node exists. Layout and depth queries assume a single root.
	ErrMultipleRoots = errors.New("tree has multiple roots")

	// ErrDanglingChild is returned by [Tree.Validate] when a Children
	// entry references an ID missing from the node table.
	ErrDanglingChild = errors.New("child ID not in node table")

	// ErrAsymmetricLink is returned by [Tree.Validate] when parent and
	// child links disagree: a node's parent must list it exactly once,
	// and every listed child must point back at its parent.
	ErrAsymmetricLink = errors.New("parent and child links disagree")

	// ErrTreeHasCycle is returned by [Tree.Validate] when following
	// parent links does not terminate at the root.
	ErrTreeHasCycle = errors.New("tree contains a cycle")
)

// Validate checks structural integrity and returns nil if the tree is
// well formed. It verifies:
//
//  1. Exactly one parentless root exists (for non-empty trees)
//  2. Every Children entry references an existing node
//  3. Parent and child links are symmetric, with no duplicate children
//  4. Following Parent from any node reaches the root (no cycles)
//
// Mutations through AddNode and RemoveNode preserve these invariants;
// Validate is the guard for restored or externally produced tables.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return nil
	}
	if err := t.validateLinks(); err != nil {
		return err
	}
	switch roots := t.Roots(); {
	case len(roots) == 0:
		return ErrNoRoot
	case len(roots) > 1:
		return ErrMultipleRoots
	}
	return t.detectCycles()
}

func (t *Tree) validateLinks() error {
	for id, n := range t.nodes {
		seen := make(map[NodeID]bool, len(n.Children))
		for _, c := range n.Children {
			child, ok := t.nodes[c]
			if !ok {
				return ErrDanglingChild
			}
			if child.Parent != id || seen[c] {
				return ErrAsymmetricLink
			}
			seen[c] = true
		}
		if n.Parent != None {
			p, ok := t.nodes[n.Parent]
			if !ok {
				return ErrAsymmetricLink
			}
			count := 0
			for _, c := range p.Children {
				if c == id {
					count++
				}
			}
			if count != 1 {
				return ErrAsymmetricLink
			}
		}
	}
	return nil
}

// detectCycles walks parent chains with a step bound. Symmetric links
// already guarantee reachability, so a chain longer than the node count
// can only mean a parent loop.
func (t *Tree) detectCycles() error {
	for id := range t.nodes {
		steps := 0
		for cur := id; cur != None; steps++ {
			if steps > len(t.nodes) {
				return ErrTreeHasCycle
			}
			n, ok := t.nodes[cur]
			if !ok {
				break
			}
			cur = n.Parent
		}
	}
	return nil
}
