package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/render/dot"
	"github.com/matzehuels/arbor/pkg/render/svg"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// Output formats accepted by the render command.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		file    string
		output  string
		formats string
		noCache bool
		labels  bool
		guides  int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a tree document as SVG, PNG, or DOT",
		Long: `Render a tree document. SVG output draws the tree at the exact
positions the layout engine computed; PNG and DOT go through Graphviz,
which performs its own placement.

Outputs are cached by document content and options, so re-rendering an
unchanged tree is instant. Use --no-cache to bypass the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			t, err := doc.ToTree()
			if err != nil {
				return err
			}

			renderCache, err := newRenderCache(noCache)
			if err != nil {
				return err
			}
			defer renderCache.Close()

			base := strings.TrimSuffix(output, ".svg")
			r := &documentRenderer{
				cache:  renderCache,
				keyer:  cache.NewDefaultKeyer(),
				doc:    doc,
				tree:   t,
				labels: labels,
				guides: tree.NodeID(guides),
			}

			p := newProgress(logger)
			for _, format := range parseFormats(formats) {
				path, cached, err := r.render(cmd.Context(), format, base)
				if err != nil {
					return err
				}
				printFile(path)
				printStats(t.Len(), t.MaxDepth(), cached)
			}
			p.done(fmt.Sprintf("Rendered %d node(s)", t.Len()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to render")
	cmd.Flags().StringVarP(&output, "output", "o", "tree", "output path without extension")
	cmd.Flags().StringVar(&formats, "formats", FormatSVG, "comma-separated output formats (svg,png,dot)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw node ids inside the circles")
	cmd.Flags().IntVar(&guides, "guides", 0, "draw relative guide curves for this node id")
	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{FormatSVG}
	}
	return strings.Split(s, ",")
}

// documentRenderer renders one document into multiple formats, sharing
// the content hash across cache lookups.
type documentRenderer struct {
	cache  cache.Cache
	keyer  cache.Keyer
	doc    treefile.Document
	tree   *tree.Tree
	labels bool
	guides tree.NodeID
}

// render produces one output file and reports whether it came from the
// cache.
func (r *documentRenderer) render(ctx context.Context, format, base string) (string, bool, error) {
	path := base + "." + format

	key, err := r.cacheKey(format)
	if err != nil {
		return "", false, err
	}
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		return path, true, os.WriteFile(path, data, 0644)
	}

	data, err := r.produce(format)
	if err != nil {
		return "", false, err
	}
	if err := r.cache.Set(ctx, key, data, 24*time.Hour); err != nil {
		return "", false, err
	}
	return path, false, os.WriteFile(path, data, 0644)
}

func (r *documentRenderer) produce(format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		opts := []svg.Option{svg.WithSelection()}
		if r.labels {
			opts = append(opts, svg.WithLabels())
		}
		if r.guides != tree.None {
			opts = append(opts, svg.WithGuides(r.guides))
		}
		return svg.Render(r.tree, opts...), nil
	case FormatDOT:
		return []byte(dot.ToDOT(r.tree, dot.Options{})), nil
	case FormatPNG:
		return dot.RenderPNG(dot.ToDOT(r.tree, dot.Options{}))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

func (r *documentRenderer) cacheKey(format string) (string, error) {
	data, err := json.Marshal(struct {
		Doc    treefile.Document `json:"doc"`
		Labels bool              `json:"labels"`
		Guides int               `json:"guides"`
	}{r.doc, r.labels, int(r.guides)})
	if err != nil {
		return "", err
	}
	return r.keyer.RenderKey(cache.Hash(data), cache.RenderKeyOpts{Format: format}), nil
}
