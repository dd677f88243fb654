// Package pkg provides the libraries behind the lineage CLI and HTTP API.
//
// # Overview
//
// Lineage turns a flat member directory, where every member names at most
// one parent, into a single-rooted hierarchy and lays it out as a tree: one
// horizontal tier per generation, parents centred over their children,
// siblings in directory order. The pkg directory is organized by concern:
//
//  1. [lineage] - Domain logic (hierarchy building, tiered layout, diagnostics)
//  2. [family] - The member directory record and the seed family
//  3. [pipeline] - Orchestration (build → layout → render) with caching
//  4. [render] - Output formats (tree SVG, Graphviz nodelink)
//  5. [graph] - Serialization types for rosters and layouts
//
// # Architecture
//
// The typical data flow:
//
//	Roster file / seed / MongoDB
//	         ↓
//	    [source] package (member records)
//	         ↓
//	    [lineage] package (Build → TreeNode, Layout → Result)
//	         ↓
//	    [render] package (SVG, PNG, DOT)
//	         ↓
//	    files (CLI) or HTTP responses ([server])
//
// # Quick Start
//
// Build a hierarchy and lay it out:
//
//	import (
//	    "github.com/matzehuels/lineage/pkg/family"
//	    "github.com/matzehuels/lineage/pkg/lineage"
//	    "github.com/matzehuels/lineage/pkg/render/tree"
//	)
//
//	root, err := lineage.Build(family.ToLineage(family.SeedSingleRoot()))
//	if err != nil {
//	    fmt.Println(lineage.Describe(err))
//	    return
//	}
//	res, err := lineage.Layout(root, lineage.Frame{
//	    Width: 800, Height: 600, Margins: lineage.UniformMargins(50),
//	})
//	svg := tree.RenderSVG(res, tree.WithStyle(tree.Warm{}))
//
// # Main Packages
//
// ## Domain Logic
//
// [lineage] - Builds the hierarchy with duplicate, root, dangling-parent and
// cycle checks, then assigns every member a depth, an order within its tier
// and x/y coordinates inside the frame. Failures carry a [lineage.Kind] and
// the member IDs involved.
//
// [family] - The directory record (contact details, birth date, photo, bio)
// and its projection onto the fields the engine reads.
//
// ## Visualization
//
// [render/tree] - Draws the computed layout as circles joined by curves, or
// an error card in place of the tree.
//
// [render/nodelink] - Hands the hierarchy to Graphviz for node-link diagrams
// (SVG, PNG, DOT).
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline used by the CLI and the HTTP API. Ensures
// consistent defaults, validation and caching across entry points.
//
// [cache] - Cache backends (file, Redis, null) and cache key generation.
//
// [source] - Member sources: roster files (JSON, TOML), the seed family and
// a MongoDB collection.
//
// [config] - lineage.toml, the settings shared by the CLI and the server.
//
// [server] - The HTTP API (chi router, request IDs, access log).
//
// [observability] - Hooks for build, layout, render, cache and HTTP events.
//
// [errors] - Error codes and member field validators.
//
// # Testing
//
// Run tests:
//
//	go test ./...                   # All tests
//	go test ./pkg/lineage/...       # Specific package
//
// [lineage]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/lineage
// [family]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/family
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/render
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/render/tree
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/cache
// [source]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/source
// [config]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/errors
// [lineage.Kind]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/lineage#Kind
package pkg
