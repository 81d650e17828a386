package dot

import (
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

func buildTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.NewWithEndpoints()
	if _, err := tr.AddNode(tr.Root()); err != nil {
		t.Fatal(err)
	}
	e := layout.New(0, 0)
	e.Recalculate(tr)
	return tr
}

func TestToDOT(t *testing.T) {
	tr := buildTree(t)
	dot := ToDOT(tr, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, "rankdir=TB") {
		t.Error("missing rankdir")
	}
	// One declaration per node, one edge per parent-child link.
	for _, n := range tr.Nodes() {
		if !strings.Contains(dot, "  "+itoa(n.ID)+" [") {
			t.Errorf("missing declaration for node %d", n.ID)
		}
	}
	root := tr.Root()
	for _, n := range tr.Nodes() {
		if n.Parent == root {
			edge := itoa(root) + " -> " + itoa(n.ID) + ";"
			if !strings.Contains(dot, edge) {
				t.Errorf("missing edge %q", edge)
			}
		}
	}
}

func TestToDOTColors(t *testing.T) {
	tr := buildTree(t)
	dot := ToDOT(tr, Options{})

	if !strings.Contains(dot, layout.StartColor) {
		t.Error("start node should carry its layout color")
	}
	if !strings.Contains(dot, layout.GoalColor) {
		t.Error("goal node should carry its layout color")
	}
}

func TestToDOTDetailed(t *testing.T) {
	tr := buildTree(t)
	dot := ToDOT(tr, Options{Detailed: true})

	if !strings.Contains(dot, "depth: 0") {
		t.Error("detailed labels should include depth")
	}
	if !strings.Contains(dot, "start") || !strings.Contains(dot, "goal") {
		t.Error("detailed labels should name endpoint kinds")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point units should be stripped: %s", out)
	}
	if !strings.Contains(out, "<g/>") {
		t.Error("content should be preserved")
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg><g/></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("unmatched input should pass through, got %s", got)
	}
}

func itoa(id tree.NodeID) string {
	return strconv.Itoa(int(id))
}
