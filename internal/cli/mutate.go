package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// The mutation commands share one shape: load the document, apply a
// single edit through the editor (which recomputes the layout), and
// write the document back.

// addCommand creates the "add" command.
func (c *CLI) addCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add <parent-id>",
		Short: "Add a node under an existing parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			return c.mutate(file, func(ed *editor.Editor) error {
				id, err := ed.AddNode(tree.NodeID(parent))
				if err != nil {
					return err
				}
				printSuccess("Added node %d under %d", id, parent)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to edit")
	return cmd
}

// removeCommand creates the "remove" command.
func (c *CLI) removeCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a node and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			return c.mutate(file, func(ed *editor.Editor) error {
				removed := ed.RemoveNode(tree.NodeID(id))
				if removed == 0 {
					printWarning("Node %d not removed (root or unknown)", id)
					return nil
				}
				printSuccess("Removed %d node(s)", removed)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to edit")
	return cmd
}

// selectCommand creates the "select" command.
func (c *CLI) selectCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Mark a node as selected",
		Long: `Mark a node as selected. Selecting an unknown id is accepted but
readers see no active selection, so the saved document carries none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			return c.mutate(file, func(ed *editor.Editor) error {
				ed.Select(tree.NodeID(id))
				if ed.Selected() == tree.None {
					printWarning("Node %d does not exist; no active selection", id)
				} else {
					printSuccess("Selected node %d", id)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to edit")
	return cmd
}

// mutate runs fn against the document in file and persists the result.
func (c *CLI) mutate(file string, fn func(*editor.Editor) error) error {
	doc, err := readDocument(file)
	if err != nil {
		return err
	}
	t, err := doc.ToTree()
	if err != nil {
		return err
	}

	ed := editor.FromTree(t, doc.Engine())
	if err := fn(ed); err != nil {
		return err
	}

	return treefile.WriteFile(ed.Snapshot(), ed.Engine(), file)
}

func parseNodeID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidNodeID, "invalid node id %q", raw)
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return 0, err
	}
	return id, nil
}
