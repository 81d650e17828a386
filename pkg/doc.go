// Package pkg provides the core libraries for Arbor tree editing and layout.
//
// # Overview
//
// Arbor maintains a mutable tree of nodes, computes a compact layered layout
// for it, and renders the result. The pkg directory is organized into three
// main areas:
//
//  1. Domain logic (tree structure, layout, editing)
//  2. Infrastructure (caching, storage, configuration, observability)
//  3. Serialization and rendering (documents, SVG, DOT)
//
// # Architecture
//
// The typical data flow through Arbor:
//
//	tree document (JSON)
//	         ↓
//	    [tree] package (arena tree, mutations, queries)
//	         ↓
//	    [layout] package (positions, relatives, depth colors)
//	         ↓
//	    [render/svg] / [render/dot] packages
//	         ↓
//	    SVG/PNG/DOT output
//
// # Quick Start
//
// Build a tree, lay it out, and render it:
//
//	import (
//	    "github.com/matzehuels/arbor/pkg/layout"
//	    "github.com/matzehuels/arbor/pkg/render/svg"
//	    "github.com/matzehuels/arbor/pkg/tree"
//	)
//
//	// 1. Build a tree
//	t := tree.New()
//	child, _ := t.AddNode(t.Root())
//	t.AddNode(child)
//
//	// 2. Compute the layout
//	engine := layout.New(40, 60)
//	engine.Recalculate(t)
//
//	// 3. Render to SVG
//	out := svg.Render(t, svg.WithLabels(true))
//
// # Main Packages
//
// ## Domain Logic
//
// [tree] - Arena-backed tree structure. Nodes live in a flat map keyed by
// stable numeric ids, with parent and ordered child links. Supports adding
// nodes, removing whole subtrees, selection, and pre-order traversal.
//
// [layout] - Layered layout engine. Assigns each node a row by depth, places
// leaves left to right with a cursor, and centers parents over their
// children bottom-up. Also answers relative queries (uncles, aunts, outer
// descendants) and assigns depth-based colors.
//
// [editor] - Concurrency-safe facade over a tree plus an engine. Every
// mutation relayouts the tree and notifies subscribed listeners, which is
// what the HTTP server's websocket push is built on.
//
// ## Infrastructure
//
// [cache] - Content-addressed render cache with file, Redis, and null
// backends. Keys are derived from document hashes so a changed tree never
// serves a stale render.
//
// [store] - Named document persistence with file and MongoDB backends.
//
// [config] - TOML configuration for the CLI and server, with defaults that
// work without any config file.
//
// [observability] - Hook interfaces for cache and server events with no-op
// defaults.
//
// [errors] - Structured errors with hierarchical codes, used for HTTP status
// mapping and user-facing CLI messages.
//
// ## Serialization and Rendering
//
// [treefile] - The JSON document format: node table, selection, and layout
// spacing. Converts to and from [tree.Tree].
//
// [render/svg] - Direct SVG rendering that is faithful to the engine's
// computed positions, with optional labels, selection ring, and relative
// guides.
//
// [render/dot] - Graphviz DOT export and PNG/SVG rasterization via
// goccy/go-graphviz, useful for comparing the engine's placement with
// Graphviz's.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree
// [layout]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/layout
// [editor]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/editor
// [cache]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [treefile]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/treefile
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/dot
// [tree.Tree]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree#Tree
package pkg
