package layout

import "github.com/matzehuels/arbor/pkg/tree"

// depthPalette cycles as trees grow deeper than the palette length.
// Tableau-style categorical colors that stay readable on white.
var depthPalette = []string{
	"#4e79a7", // depth 0 - blue
	"#f28e2b", // orange
	"#59a14f", // green
	"#b07aa1", // purple
	"#e15759", // red
	"#76b7b2", // teal
	"#edc949", // yellow
	"#9c755f", // brown
}

// Fixed colors for the endpoint nodes seeded by tree.NewWithEndpoints.
const (
	StartColor = "#2e7d32"
	GoalColor  = "#c62828"
)

// DepthColor returns the hex color for a node at the given depth.
// Depths beyond the palette wrap around; negative depths map to the
// depth-0 color.
func DepthColor(depth int) string {
	if depth < 0 {
		depth = 0
	}
	return depthPalette[depth%len(depthPalette)]
}

// colorFor resolves a node's color: endpoint kinds keep their fixed
// colors, everything else derives from depth.
func colorFor(kind tree.NodeKind, depth int) string {
	switch kind {
	case tree.KindStart:
		return StartColor
	case tree.KindGoal:
		return GoalColor
	default:
		return DepthColor(depth)
	}
}
