// Package layout computes node-link tree drawings: every node in a
// tree gets an (x, y) coordinate and a depth-derived color, so that an
// external renderer only has to read positions back and draw.
//
// # Algorithm
//
// [Engine.Recalculate] runs two phases over the whole tree:
//
//  1. Depth-first placement, children in order. y is depth*SpaceY.
//     Leaves consume the running x cursor and advance it by SpaceX;
//     internal nodes take the pre-subtree cursor as a provisional x.
//  2. Bottom-up centering from the deepest level to the root. Every
//     parent's x becomes the midpoint of its first and last child's x,
//     so parents sit centered over their children's span no matter how
//     many middle children there are.
//
// The recompute is O(n) and runs after every structural mutation; for
// interactively edited trees there is no need for incremental updates.
//
// # Relative Lookups
//
// [LeftUncle], [RightAunt], [LeftmostDescendant], and
// [RightmostDescendant] answer the topological queries renderers use to
// draw extra connector curves between cousin subtrees. They never
// affect layout and are cheap enough to recompute per render.
package layout
