package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/store"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// The store commands bridge tree document files and the named document
// store (file-based by default, MongoDB when configured).

// saveCommand creates the "save" command.
func (c *CLI) saveCommand() *cobra.Command {
	var (
		cfgPath string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a tree document under a name in the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			// Reject structurally broken files before they reach the store.
			if _, err := doc.ToTree(); err != nil {
				return err
			}

			st, err := c.openStore(cmd.Context(), cfgPath)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			rec, err := st.Save(cmd.Context(), name, doc)
			if err != nil {
				return err
			}
			printSuccess("Saved %q", name)
			printDetail("id: %s", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/arbor/arbor.toml)")
	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to save")
	return cmd
}

// loadCommand creates the "load" command.
func (c *CLI) loadCommand() *cobra.Command {
	var (
		cfgPath string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a stored document into a tree file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			st, err := c.openStore(cmd.Context(), cfgPath)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			rec, err := st.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			t, err := rec.Document.ToTree()
			if err != nil {
				return err
			}

			if err := treefile.WriteFile(t, rec.Document.Engine(), file); err != nil {
				return err
			}
			printSuccess("Loaded %q", name)
			printFile(file)
			printStats(t.Len(), t.MaxDepth(), false)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/arbor/arbor.toml)")
	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree file to write")
	return cmd
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context(), cfgPath)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			records, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No stored documents")
				return nil
			}

			for _, rec := range records {
				fmt.Println(StyleValue.Render(rec.Name) + "  " +
					StyleDim.Render(fmt.Sprintf("updated %s", rec.UpdatedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/arbor/arbor.toml)")
	return cmd
}

// openStore builds the configured store for a one-shot command.
func (c *CLI) openStore(ctx context.Context, cfgPath string) (store.Store, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return newStore(ctx, cfg.Store)
}
