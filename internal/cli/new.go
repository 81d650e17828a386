package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// newCommand creates the "new" command for starting a fresh document.
func (c *CLI) newCommand() *cobra.Command {
	var (
		endpoints bool
		spaceX    float64
		spaceY    float64
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a fresh tree document",
		Long: `Create a new tree document containing a single root node and write
it to the given file (default tree.json).

With --endpoints the root is seeded with fixed start and goal children,
drawn in their own colors by every renderer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultTreeFile
			if len(args) == 1 {
				path = args[0]
			}

			t := tree.New()
			if endpoints {
				t = tree.NewWithEndpoints()
			}
			engine := layout.New(spaceX, spaceY)
			engine.Recalculate(t)

			if err := treefile.WriteFile(t, engine, path); err != nil {
				return err
			}

			printSuccess("Created %s", path)
			printStats(t.Len(), t.MaxDepth(), false)
			printNextStep("Add a node", "arbor add 1 -f "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&endpoints, "endpoints", false, "seed the root with start and goal children")
	cmd.Flags().Float64Var(&spaceX, "space-x", 0, "horizontal node spacing (default 40)")
	cmd.Flags().Float64Var(&spaceY, "space-y", 0, "vertical level spacing (default 60)")
	return cmd
}
