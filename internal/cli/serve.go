package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/store"

	"github.com/matzehuels/arbor/internal/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfgPath   string
		addr      string
		file      string
		endpoints bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree editor over HTTP",
		Long: `Start the HTTP server. Mutations arrive as JSON requests and are
pushed to websocket subscribers, so every connected client follows the
same live tree.

The store and cache backends come from the config file: a local file
store by default, MongoDB and Redis when configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ed, err := c.newServeEditor(cfg, file, endpoints)
			if err != nil {
				return err
			}

			st, err := newStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close(context.Background())
			}

			ca, err := newServeCache(cmd.Context(), cfg.Cache)
			if err != nil {
				printWarning("Cache unavailable, serving without: %v", err)
				ca = cache.NewNullCache()
			}
			defer ca.Close()

			srv := server.New(logger, ed, st, ca, cfg.Server)
			printInfo("Serving on %s", cfg.Server.Addr)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/arbor/arbor.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "tree document to serve (default: a fresh tree)")
	cmd.Flags().BoolVar(&endpoints, "endpoints", false, "seed a fresh tree with start and goal children")
	return cmd
}

// newServeEditor builds the live editor, either from a document file
// or as a fresh tree with the configured spacing.
func (c *CLI) newServeEditor(cfg config.Config, file string, endpoints bool) (*editor.Editor, error) {
	if file != "" {
		doc, err := readDocument(file)
		if err != nil {
			return nil, err
		}
		t, err := doc.ToTree()
		if err != nil {
			return nil, err
		}
		return editor.FromTree(t, engineFor(doc, cfg.Layout.SpaceX, cfg.Layout.SpaceY)), nil
	}

	e := layout.New(cfg.Layout.SpaceX, cfg.Layout.SpaceY)
	if endpoints {
		return editor.NewWithEndpoints(e), nil
	}
	return editor.New(e), nil
}

// newStore builds the configured document store.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return store.NewFileStore(cfg.Dir)
	}
}

// newServeCache builds the configured render cache.
func newServeCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}
