// Package svg renders laid-out trees directly to SVG.
//
// Unlike the Graphviz renderer, this package performs no placement of
// its own: nodes are drawn at the exact coordinates the layout engine
// computed, so the output is a faithful picture of the engine's work.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

const (
	defaultRadius = 12.0
	defaultMargin = 40.0

	fallbackFill = "#cccccc"
	edgeStroke   = "#999999"
	guideStroke  = "#e6a23c"
	ringStroke   = "#1f1f1f"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	radius    float64
	margin    float64
	labels    bool
	selection bool
	guides    tree.NodeID
}

// WithRadius sets the node circle radius.
func WithRadius(r float64) Option {
	return func(o *renderer) { o.radius = r }
}

// WithMargin sets the whitespace around the drawing.
func WithMargin(m float64) Option {
	return func(o *renderer) { o.margin = m }
}

// WithLabels draws node ids inside the circles.
func WithLabels() Option {
	return func(o *renderer) { o.labels = true }
}

// WithSelection draws a ring around the selected node.
func WithSelection() Option {
	return func(o *renderer) { o.selection = true }
}

// WithGuides draws dashed guide curves from the given node to its
// left uncle, right aunt, and extreme descendants.
func WithGuides(id tree.NodeID) Option {
	return func(o *renderer) { o.guides = id }
}

// Render draws the tree as an SVG document.
// Node positions and colors must already be computed by a layout pass.
func Render(t *tree.Tree, opts ...Option) []byte {
	r := renderer{radius: defaultRadius, margin: defaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	minX, maxX, maxY := bounds(t)
	// Shift so the leftmost node sits at the margin.
	dx := r.margin - minX + r.radius
	dy := r.margin + r.radius
	width := maxX - minX + 2*(r.margin+r.radius)
	height := maxY + 2*(r.margin+r.radius)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	nodes := t.Nodes()
	renderEdges(&buf, t, nodes, dx, dy)
	if r.guides != tree.None {
		renderGuides(&buf, t, r.guides, dx, dy)
	}
	renderNodes(&buf, &r, t, nodes, dx, dy)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func bounds(t *tree.Tree) (minX, maxX, maxY float64) {
	first := true
	for _, n := range t.Nodes() {
		if first {
			minX, maxX, maxY = n.X, n.X, n.Y
			first = false
			continue
		}
		if n.X < minX {
			minX = n.X
		}
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}
	return minX, maxX, maxY
}

func renderEdges(buf *bytes.Buffer, t *tree.Tree, nodes []*tree.Node, dx, dy float64) {
	for _, n := range nodes {
		for _, c := range n.Children {
			child, ok := t.Node(c)
			if !ok {
				continue
			}
			fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`+"\n",
				n.X+dx, n.Y+dy, child.X+dx, child.Y+dy, edgeStroke)
		}
	}
}

func renderNodes(buf *bytes.Buffer, r *renderer, t *tree.Tree, nodes []*tree.Node, dx, dy float64) {
	for _, n := range nodes {
		fill := n.Color
		if fill == "" {
			fill = fallbackFill
		}
		fmt.Fprintf(buf, `  <circle id="node-%d" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			n.ID, n.X+dx, n.Y+dy, r.radius, fill)

		if r.selection && n.ID == t.Selected() {
			fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
				n.X+dx, n.Y+dy, r.radius+4, ringStroke)
		}
		if r.labels {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.0f" fill="white">%d</text>`+"\n",
				n.X+dx, n.Y+dy, r.radius, n.ID)
		}
	}
}

// renderGuides draws dashed curves from a node to the relatives the
// layout package can locate for it. Missing relatives are skipped.
func renderGuides(buf *bytes.Buffer, t *tree.Tree, id tree.NodeID, dx, dy float64) {
	from, ok := t.Node(id)
	if !ok {
		return
	}

	var targets []tree.NodeID
	if uncle, ok := layout.LeftUncle(t, id); ok {
		targets = append(targets, uncle)
	}
	if aunt, ok := layout.RightAunt(t, id); ok {
		targets = append(targets, aunt)
	}
	if left, ok := layout.LeftmostDescendant(t, id); ok {
		targets = append(targets, left)
	}
	if right, ok := layout.RightmostDescendant(t, id); ok {
		targets = append(targets, right)
	}
	for _, target := range targets {
		if target == id {
			continue
		}
		to, ok := t.Node(target)
		if !ok {
			continue
		}
		midX := (from.X + to.X) / 2
		midY := (from.Y+to.Y)/2 - 20
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" fill="none" stroke="%s" stroke-width="1.5" stroke-dasharray="4 3"/>`+"\n",
			from.X+dx, from.Y+dy, midX+dx, midY+dy, to.X+dx, to.Y+dy, guideStroke)
	}
}
