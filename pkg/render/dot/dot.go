// Package dot converts trees to Graphviz DOT and renders them.
//
// Graphviz performs its own hierarchical placement, so the output is an
// alternative view of the tree rather than a picture of the engine's
// layout. Use the svg subpackage for the engine-faithful rendering.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes kind and depth in node labels.
	// When false, only the node id is shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Start and goal nodes keep the colors the layout pass assigned, so the
// endpoints stay recognizable across both renderers.
func ToDOT(t *tree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes() {
		label := fmtLabel(t, n, opts.Detailed)
		fmt.Fprintf(&buf, "  %d [label=%q%s];\n", n.ID, label, fmtColor(n))
	}

	buf.WriteString("\n")
	for _, n := range t.Nodes() {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %d -> %d;\n", n.ID, c)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(t *tree.Tree, n *tree.Node, detailed bool) string {
	if !detailed {
		return strconv.Itoa(int(n.ID))
	}
	label := fmt.Sprintf("%d\ndepth: %d", n.ID, t.Depth(n.ID))
	switch n.Kind {
	case tree.KindStart:
		label += "\nstart"
	case tree.KindGoal:
		label += "\ngoal"
	}
	return label
}

func fmtColor(n *tree.Node) string {
	if n.Color == "" {
		return ""
	}
	return fmt.Sprintf(", fillcolor=%q, fontcolor=white", n.Color)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag so the drawing scales
// cleanly when embedded. Graphviz emits point units and an offset
// viewBox; browsers handle a zero-origin pixel viewBox better.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
