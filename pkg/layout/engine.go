package layout

import "github.com/matzehuels/arbor/pkg/tree"

// Default spacing between nodes, in canvas units.
const (
	// DefaultSpaceX is the horizontal gap between adjacent leaves.
	DefaultSpaceX = 40.0

	// DefaultSpaceY is the vertical gap between consecutive depths.
	DefaultSpaceY = 60.0
)

// rootGapFactor spreads disjoint root trees apart: each extra root
// starts at maxX + SpaceX*rootGapFactor.
const rootGapFactor = 5

// Engine computes node positions and depth colors for a tree.
// SpaceX and SpaceY are the horizontal and vertical spacing constants;
// both must be positive. Engine is stateless between calls - every
// Recalculate is a full recompute over the current node table.
type Engine struct {
	SpaceX float64
	SpaceY float64
}

// New creates an engine with the given spacing. Non-positive values
// fall back to the defaults.
func New(spaceX, spaceY float64) Engine {
	if spaceX <= 0 {
		spaceX = DefaultSpaceX
	}
	if spaceY <= 0 {
		spaceY = DefaultSpaceY
	}
	return Engine{SpaceX: spaceX, SpaceY: spaceY}
}

// Recalculate assigns X, Y, and Color to every node in the tree.
//
// The pass has two phases. First a depth-first placement visits
// children in order: every node gets y = depth*SpaceY and its depth
// color, leaves take the running cursor as x and advance it by SpaceX,
// and internal nodes record the cursor observed before their subtree as
// a provisional x. Then a bottom-up pass from the deepest level to the
// root overwrites each parent's x with the midpoint of its first and
// last child's x, centering parents over their children's span
// regardless of child count.
//
// The whole pass is O(n) in the node count and idempotent: running it
// twice without a mutation yields identical coordinates. Trees with
// stray extra roots (which Validate rejects) are still placed, each
// root tree offset past the previous one.
func (e Engine) Recalculate(t *tree.Tree) {
	maxDepth := t.MaxDepth()
	cursor := 0.0
	maxX := 0.0
	for i, root := range t.Roots() {
		if i > 0 {
			cursor = maxX + e.SpaceX*rootGapFactor
		}
		cursor = e.place(t, root, 0, cursor)
		if cursor > maxX {
			maxX = cursor
		}
	}

	for depth := maxDepth; depth >= 0; depth-- {
		e.center(t, depth)
	}
}

// place runs the depth-first placement phase for one subtree, threading
// the running x cursor through it. Returns the cursor after the subtree.
func (e Engine) place(t *tree.Tree, id tree.NodeID, depth int, cursor float64) float64 {
	n, ok := t.Node(id)
	if !ok {
		return cursor
	}
	n.Y = float64(depth) * e.SpaceY
	n.Color = colorFor(n.Kind, depth)

	if n.IsLeaf() {
		n.X = cursor
		return cursor + e.SpaceX
	}

	// Provisional: overwritten by the centering phase.
	n.X = cursor
	for _, c := range n.Children {
		cursor = e.place(t, c, depth+1, cursor)
	}
	return cursor
}

// center overwrites the x of every node at the given depth that has
// children with the midpoint of its first and last child's x. Only the
// two extremes matter; middle children do not shift the parent.
func (e Engine) center(t *tree.Tree, depth int) {
	for _, n := range t.Nodes() {
		if n.IsLeaf() || t.Depth(n.ID) != depth {
			continue
		}
		first, okF := t.Node(n.Children[0])
		last, okL := t.Node(n.Children[len(n.Children)-1])
		if !okF || !okL {
			continue
		}
		n.X = (first.X + last.X) / 2
	}
}
