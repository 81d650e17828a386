package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// showCommand creates the "show" command for inspecting a document.
func (c *CLI) showCommand() *cobra.Command {
	var (
		file      string
		relatives int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a tree document as text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			t, err := doc.ToTree()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(titleFor(doc.Name, file)))
			printKeyValue("Nodes", fmt.Sprintf("%d", t.Len()))
			printKeyValue("Depth", fmt.Sprintf("%d", t.MaxDepth()))
			if sel := t.Selected(); sel != tree.None {
				printKeyValue("Selected", fmt.Sprintf("%d", sel))
			}
			fmt.Println()

			printSubtree(t, t.Root(), 0)

			if relatives > 0 {
				fmt.Println()
				printRelatives(t, tree.NodeID(relatives))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to show")
	cmd.Flags().IntVar(&relatives, "relatives", 0, "also show relative lookups for this node id")
	return cmd
}

func titleFor(name, file string) string {
	if name != "" {
		return name
	}
	return file
}

// printSubtree renders the tree as an indented outline, children in
// insertion order.
func printSubtree(t *tree.Tree, id tree.NodeID, depth int) {
	n, ok := t.Node(id)
	if !ok {
		return
	}

	label := fmt.Sprintf("%d", n.ID)
	switch n.Kind {
	case tree.KindStart:
		label += " (start)"
	case tree.KindGoal:
		label += " (goal)"
	}
	if n.ID == t.Selected() {
		label = StyleHighlight.Render(label + " *")
	}
	pos := StyleDim.Render(fmt.Sprintf("  x=%.0f y=%.0f", n.X, n.Y))

	fmt.Println(strings.Repeat("  ", depth) + label + pos)
	for _, child := range n.Children {
		printSubtree(t, child, depth+1)
	}
}

func printRelatives(t *tree.Tree, id tree.NodeID) {
	if _, ok := t.Node(id); !ok {
		printWarning("Node %d not found", id)
		return
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Relatives of %d", id)))
	printKeyValue("Left uncle", relativeLabel(layout.LeftUncle(t, id)))
	printKeyValue("Right aunt", relativeLabel(layout.RightAunt(t, id)))
	printKeyValue("Leftmost", relativeLabel(layout.LeftmostDescendant(t, id)))
	printKeyValue("Rightmost", relativeLabel(layout.RightmostDescendant(t, id)))
}

func relativeLabel(id tree.NodeID, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%d", id)
}
