package treefile

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kinds in serialized form.
const (
	KindStart = "start"
	KindGoal  = "goal"
)

// =============================================================================
// Document - Tree Serialization Format
// =============================================================================

// Document is the canonical serialization format for tree documents.
// Used for API responses, storage, caching, and file import/export.
//
// The format is human-readable and designed for round-trip fidelity:
// export → re-import produces an identical tree, including derived
// positions and the id counter (implied by the highest node id).
type Document struct {
	Name     string  `json:"name,omitempty" bson:"name,omitempty"`
	SpaceX   float64 `json:"space_x,omitempty" bson:"space_x,omitempty"`
	SpaceY   float64 `json:"space_y,omitempty" bson:"space_y,omitempty"`
	Selected int     `json:"selected,omitempty" bson:"selected,omitempty"`
	Nodes    []Node  `json:"nodes" bson:"nodes"`
}

// Node is the serialized form of a tree node.
type Node struct {
	ID       int     `json:"id" bson:"id"`
	Parent   int     `json:"parent,omitempty" bson:"parent,omitempty"` // 0 marks the root
	Children []int   `json:"children,omitempty" bson:"children,omitempty"`
	Kind     string  `json:"kind,omitempty" bson:"kind,omitempty"` // "start", "goal", or empty
	Color    string  `json:"color,omitempty" bson:"color,omitempty"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
}

// =============================================================================
// Tree ↔ Document Conversion
// =============================================================================

// FromTree converts a tree to its serialization format.
// Nodes are sorted by ID for deterministic output. The selection is
// read through Selected, so a stale id serializes as no selection.
func FromTree(t *tree.Tree, engine layout.Engine) Document {
	nodes := t.Nodes()
	doc := Document{
		SpaceX:   engine.SpaceX,
		SpaceY:   engine.SpaceY,
		Selected: int(t.Selected()),
		Nodes:    make([]Node, len(nodes)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = nodeFromTree(n)
	}
	return doc
}

// ToTree converts a Document back to a tree.
// Returns an error if the node table violates tree constraints.
func (d Document) ToTree() (*tree.Tree, error) {
	nodes := make([]tree.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		children := make([]tree.NodeID, len(n.Children))
		for j, c := range n.Children {
			children[j] = tree.NodeID(c)
		}
		nodes[i] = tree.Node{
			ID:       tree.NodeID(n.ID),
			Parent:   tree.NodeID(n.Parent),
			Children: children,
			Kind:     stringToKind(n.Kind),
			Color:    n.Color,
			X:        n.X,
			Y:        n.Y,
		}
	}
	t, err := tree.Restore(nodes, tree.NodeID(d.Selected))
	if err != nil {
		return nil, fmt.Errorf("restore tree: %w", err)
	}
	return t, nil
}

// Engine returns the layout engine described by the document's spacing,
// falling back to defaults for missing values.
func (d Document) Engine() layout.Engine {
	return layout.New(d.SpaceX, d.SpaceY)
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromTree(n *tree.Node) Node {
	children := make([]int, len(n.Children))
	for i, c := range n.Children {
		children[i] = int(c)
	}
	return Node{
		ID:       int(n.ID),
		Parent:   int(n.Parent),
		Children: children,
		Kind:     kindToString(n.Kind),
		Color:    n.Color,
		X:        n.X,
		Y:        n.Y,
	}
}

func kindToString(k tree.NodeKind) string {
	switch k {
	case tree.KindStart:
		return KindStart
	case tree.KindGoal:
		return KindGoal
	default:
		return ""
	}
}

func stringToKind(s string) tree.NodeKind {
	switch s {
	case KindStart:
		return tree.KindStart
	case KindGoal:
		return tree.KindGoal
	default:
		return tree.KindRegular
	}
}
