package tree

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Restore] when a node carries a
	// non-positive ID. All node IDs are positive integers.
	ErrInvalidNodeID = errors.New("node ID must be positive")

	// ErrDuplicateNodeID is returned by [Restore] when two nodes share
	// the same ID. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned by [Tree.AddNode] when the parent ID
	// does not reference an existing node. Every node except the root
	// must attach to an existing parent.
	ErrUnknownParent = errors.New("unknown parent node")
)

// NodeID is a stable handle for a node in a [Tree]. IDs are assigned
// sequentially starting at 1 and are never reused within a session.
type NodeID int

// None is the zero NodeID. It marks the absence of a node: the root's
// Parent field, an empty selection, or a failed lookup.
const None NodeID = 0

// NodeKind distinguishes regular nodes from the fixed endpoint nodes
// seeded by [NewWithEndpoints].
type NodeKind int

const (
	// KindRegular is an ordinary node. Its color is derived from depth.
	KindRegular NodeKind = iota
	// KindStart is the fixed "start" endpoint seeded as the root's first child.
	KindStart
	// KindGoal is the fixed "goal" endpoint seeded as the root's last child.
	KindGoal
)

// Node is one element of a rooted tree. Parent and Children express the
// structure; Color, X, and Y are derived by the layout engine and are
// overwritten on every recompute.
//
// Children order is significant: it is the left-to-right draw order and
// determines sibling and uncle/aunt relations.
type Node struct {
	ID       NodeID
	Parent   NodeID // None for the root
	Children []NodeID
	Kind     NodeKind

	// Derived layout state. Owned by the layout engine.
	Color string
	X, Y  float64
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == None }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an id-indexed arena of nodes forming a single rooted tree.
// The tree exclusively owns its node table: callers mutate it only
// through AddNode, RemoveNode, and Select, and read results back
// through the accessor methods.
//
// The zero value is not usable - use New, NewWithEndpoints, or Restore.
// Tree is not safe for concurrent use without external synchronization.
type Tree struct {
	nodes    map[NodeID]*Node
	nextID   NodeID
	selected NodeID
}

// New creates a tree holding a single root node with ID 1.
func New() *Tree {
	t := &Tree{nodes: make(map[NodeID]*Node), nextID: 1}
	t.attach(None, KindRegular)
	return t
}

// NewWithEndpoints creates a tree seeded with a root plus two fixed
// children: a start node (the root's first child) and a goal node (the
// root's last child). Start and goal keep fixed colors instead of
// depth-derived ones.
func NewWithEndpoints() *Tree {
	t := New()
	t.attach(t.Root(), KindStart)
	t.attach(t.Root(), KindGoal)
	return t
}

// AddNode allocates a new leaf node attached to parent and returns its ID.
// The new node is appended after the parent's existing children.
// Returns ErrUnknownParent if parent does not reference an existing node;
// attaching a second parentless root is not supported.
func (t *Tree) AddNode(parent NodeID) (NodeID, error) {
	if _, ok := t.nodes[parent]; !ok {
		return None, ErrUnknownParent
	}
	return t.attach(parent, KindRegular), nil
}

// attach allocates the next ID and links the node under parent.
// A parent of None is only valid for the very first node.
func (t *Tree) attach(parent NodeID, kind NodeKind) NodeID {
	id := t.nextID
	t.nextID++
	t.nodes[id] = &Node{ID: id, Parent: parent, Kind: kind}
	if p, ok := t.nodes[parent]; ok {
		p.Children = append(p.Children, id)
	}
	return id
}

// RemoveNode removes the node and its entire subtree, depth-first.
// Removing the root or an unknown ID is a documented no-op. If the
// selection points at any removed node it is cleared. Returns the
// number of nodes removed (zero for the no-op cases).
func (t *Tree) RemoveNode(id NodeID) int {
	n, ok := t.nodes[id]
	if !ok || n.IsRoot() {
		return 0
	}
	if p, ok := t.nodes[n.Parent]; ok {
		p.Children = slices.DeleteFunc(p.Children, func(c NodeID) bool { return c == id })
	}
	return t.removeSubtree(id)
}

func (t *Tree) removeSubtree(id NodeID) int {
	n, ok := t.nodes[id]
	if !ok {
		return 0
	}
	removed := 1
	for _, c := range slices.Clone(n.Children) {
		removed += t.removeSubtree(c)
	}
	if t.selected == id {
		t.selected = None
	}
	delete(t.nodes, id)
	return removed
}

// Select stores id as the current selection. The ID is not validated at
// call time: stale or unknown IDs may be stored, and Selected filters
// them out at read time.
func (t *Tree) Select(id NodeID) { t.selected = id }

// Selected returns the currently selected node ID, or None if nothing
// is selected or the stored ID no longer exists.
func (t *Tree) Selected() NodeID {
	if _, ok := t.nodes[t.selected]; !ok {
		return None
	}
	return t.selected
}

// Node returns the node with the given ID and true, or nil and false if
// not found. The returned pointer refers to the actual node, so layout
// code can write derived fields in place.
func (t *Tree) Node(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by ID.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return int(a.ID - b.ID) })
	return nodes
}

// IDs returns all node IDs in ascending order.
func (t *Tree) IDs() []NodeID {
	return slices.Sorted(maps.Keys(t.nodes))
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the ID of the unique parentless node, or None if the
// table is empty or malformed. When the single-root invariant is
// violated the lowest parentless ID wins.
func (t *Tree) Root() NodeID {
	roots := t.Roots()
	if len(roots) == 0 {
		return None
	}
	return roots[0]
}

// Roots returns every parentless node ID in ascending order. A valid
// tree has exactly one; Validate rejects anything else. Layout remains
// defensive and handles stray extra roots anyway.
func (t *Tree) Roots() []NodeID {
	var roots []NodeID
	for id, n := range t.nodes {
		if n.IsRoot() {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)
	return roots
}

// Depth returns the number of parent hops from id up to the root, so
// the root has depth 0. Depth(None) is -1 by convention, which lets a
// root's children compute to depth 0 from their parent's depth.
//
// The walk is bounded by the node count, so it terminates even on a
// malformed table: hitting an unknown ID stops early and returns the
// hops accumulated so far.
func (t *Tree) Depth(id NodeID) int {
	depth := -1
	for steps := 0; steps <= len(t.nodes); steps++ {
		n, ok := t.nodes[id]
		if !ok {
			return depth
		}
		depth++
		id = n.Parent
	}
	return depth
}

// MaxDepth returns the maximum depth over all nodes, or -1 for an
// empty tree.
func (t *Tree) MaxDepth() int {
	max := -1
	for id := range t.nodes {
		if d := t.Depth(id); d > max {
			max = d
		}
	}
	return max
}

// Descendants returns the IDs of every node strictly below id, in
// pre-order. Returns nil for leaves and unknown IDs.
func (t *Tree) Descendants(id NodeID) []NodeID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []NodeID
	for _, c := range n.Children {
		if _, ok := t.nodes[c]; ok {
			out = append(out, c)
			out = append(out, t.Descendants(c)...)
		}
	}
	return out
}

// Walk visits id and every descendant in pre-order, children in order.
// The walk stops early if fn returns false. Unknown IDs are skipped.
func (t *Tree) Walk(id NodeID, fn func(*Node) bool) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, fn)
	}
}

// Clone returns a deep copy of the tree, including derived layout
// state, the id counter, and the raw selection. Renderers take clones
// so they can run queries without holding the editor lock.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes:    make(map[NodeID]*Node, len(t.nodes)),
		nextID:   t.nextID,
		selected: t.selected,
	}
	for id, n := range t.nodes {
		node := *n
		node.Children = slices.Clone(n.Children)
		c.nodes[id] = &node
	}
	return c
}

// Restore rebuilds a tree from a node slice, typically decoded from a
// tree document. The input is validated: IDs must be positive and
// unique, and the linked structure must pass Validate. The ID counter
// resumes past the highest restored ID so fresh IDs are never reused.
func Restore(nodes []Node, selected NodeID) (*Tree, error) {
	t := &Tree{nodes: make(map[NodeID]*Node, len(nodes)), nextID: 1}
	for _, n := range nodes {
		if n.ID <= None {
			return nil, ErrInvalidNodeID
		}
		if _, exists := t.nodes[n.ID]; exists {
			return nil, ErrDuplicateNodeID
		}
		node := n
		node.Children = slices.Clone(n.Children)
		t.nodes[node.ID] = &node
		if node.ID >= t.nextID {
			t.nextID = node.ID + 1
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.selected = selected
	return t, nil
}
