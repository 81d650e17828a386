package svg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// buildTree grows root -> (a, b), a -> c and runs a layout pass.
func buildTree(t *testing.T) (*tree.Tree, tree.NodeID) {
	t.Helper()
	tr := tree.New()
	a, err := tr.AddNode(tr.Root())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddNode(tr.Root()); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddNode(a); err != nil {
		t.Fatal(err)
	}
	e := layout.New(40, 60)
	e.Recalculate(tr)
	return tr, a
}

func TestRender(t *testing.T) {
	tr, _ := buildTree(t)
	out := string(Render(tr))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg header")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing svg closer")
	}

	// One circle per node, one line per parent-child link.
	if got, want := strings.Count(out, "<circle"), tr.Len(); got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
	if got, want := strings.Count(out, "<line"), tr.Len()-1; got != want {
		t.Errorf("lines = %d, want %d", got, want)
	}

	// Nodes carry their layout colors.
	for _, n := range tr.Nodes() {
		if !strings.Contains(out, fmt.Sprintf(`fill="%s"`, n.Color)) {
			t.Errorf("missing fill for node %d color %q", n.ID, n.Color)
		}
	}
}

func TestRenderLabels(t *testing.T) {
	tr, _ := buildTree(t)

	plain := string(Render(tr))
	if strings.Contains(plain, "<text") {
		t.Error("labels should be off by default")
	}

	labeled := string(Render(tr, WithLabels()))
	if got, want := strings.Count(labeled, "<text"), tr.Len(); got != want {
		t.Errorf("labels = %d, want %d", got, want)
	}
}

func TestRenderSelection(t *testing.T) {
	tr, a := buildTree(t)
	tr.Select(a)

	out := string(Render(tr, WithSelection()))
	// Selection ring adds one extra circle.
	if got, want := strings.Count(out, "<circle"), tr.Len()+1; got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
	if !strings.Contains(out, `fill="none"`) {
		t.Error("missing selection ring")
	}

	// Stale selection draws no ring.
	tr.RemoveNode(a)
	e := layout.New(40, 60)
	e.Recalculate(tr)
	out = string(Render(tr, WithSelection()))
	if strings.Contains(out, `fill="none"`) {
		t.Error("stale selection should not draw a ring")
	}
}

func TestRenderGuides(t *testing.T) {
	tr, a := buildTree(t)

	// Node a has a right aunt (sibling b) and a descendant leaf, so
	// guide curves appear for it.
	out := string(Render(tr, WithGuides(a)))
	if !strings.Contains(out, "<path") {
		t.Error("expected guide paths")
	}

	// The root has no relatives above it and is its own ancestor line,
	// but its extreme descendants still produce guides.
	out = string(Render(tr, WithGuides(tr.Root())))
	if !strings.Contains(out, "<path") {
		t.Error("expected descendant guides for root")
	}

	// Unknown ids draw nothing.
	out = string(Render(tr, WithGuides(tree.NodeID(99))))
	if strings.Contains(out, "<path") {
		t.Error("unknown id should draw no guides")
	}
}

func TestRenderBounds(t *testing.T) {
	tr, _ := buildTree(t)
	out := string(Render(tr))

	// Spacing 40/60 puts the leaves at x=0 and x=40 and the deepest
	// node at y=120; default margin plus radius pads 52 on every side.
	if !strings.Contains(out, `viewBox="0 0 144.0 224.0"`) {
		t.Errorf("unexpected viewBox in %q", out[:strings.Index(out, ">")+1])
	}

	// The leftmost node sits exactly at the margin offset.
	if !strings.Contains(out, `cx="52.0"`) {
		t.Error("leftmost node not shifted to the margin")
	}
}

func TestRenderSingleNode(t *testing.T) {
	tr := tree.New()
	e := layout.New(40, 60)
	e.Recalculate(tr)

	out := string(Render(tr))
	if got := strings.Count(out, "<circle"); got != 1 {
		t.Errorf("circles = %d, want 1", got)
	}
	if strings.Contains(out, "<line") {
		t.Error("single node should have no edges")
	}
}
