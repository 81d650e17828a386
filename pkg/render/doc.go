// Package render provides visualization rendering for tree documents.
//
// # Overview
//
// This package contains the rendering pipeline that transforms laid-out
// trees into visual outputs:
//
//   - Direct SVG rendering (in [svg] subpackage)
//   - Graphviz node-link diagrams (in [dot] subpackage)
//
// # SVG Rendering
//
// The [svg] subpackage draws the tree exactly as the layout engine
// placed it: nodes as circles at their computed positions, straight
// edges between parents and children, and the depth colors assigned by
// the layout pass. This is the faithful view of the engine's output.
//
//	out := svg.Render(t, svg.WithSelection(), svg.WithLabels())
//
// # Graphviz Rendering
//
// The [dot] subpackage converts a tree to Graphviz DOT format and lets
// Graphviz compute its own placement. Useful for comparing the engine's
// layout against a conventional hierarchical one, and for PNG export.
//
//	src := dot.ToDOT(t, dot.Options{})
//	png, err := dot.RenderPNG(src)
//
// [svg]: github.com/matzehuels/arbor/pkg/render/svg
// [dot]: github.com/matzehuels/arbor/pkg/render/dot
package render
