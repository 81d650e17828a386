// Package tree provides an id-indexed arena for a single rooted tree
// edited interactively through add and remove operations.
//
// # Overview
//
// Arbor draws trees as node-link diagrams where every node is placed by
// the layout engine in pkg/layout. This package provides the underlying
// data structure: a node table keyed by stable integer IDs, with
// parent/child links kept symmetric by construction. IDs are assigned
// sequentially and never reused, so they are safe to hold across
// mutations.
//
// Nodes are created as leaves under an existing parent and removed
// together with their whole subtree. The root is permanent: removing it
// is a documented no-op, and a tree always has exactly one.
//
// # Basic Usage
//
// Create a tree with [New] (single root) or [NewWithEndpoints] (root
// plus fixed start/goal children), then grow it under existing nodes:
//
//	t := tree.New()
//	left, _ := t.AddNode(t.Root())
//	t.AddNode(t.Root())
//	t.AddNode(left)
//
// Query structure with [Tree.Node], [Tree.Depth], [Tree.Descendants],
// and [Tree.Walk]. [Tree.Validate] verifies integrity of tables that
// were restored from storage rather than built through mutations.
//
// # Derived State
//
// Color, X, and Y on [Node] are derived values owned by the layout
// engine and overwritten on every recompute. The tree never interprets
// them.
//
// # Error Policy
//
// Mutations prefer documented no-ops over errors where the original
// interaction model calls for it: removing the root or an unknown ID
// does nothing, and selection accepts stale IDs that are filtered at
// read time. The one hard error is [Tree.AddNode] with an unknown
// parent, which would otherwise create a second disconnected root.
package tree
