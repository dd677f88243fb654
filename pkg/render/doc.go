// Package render groups the output formats for computed lineages.
//
// # Tree Drawing
//
// The [tree] subpackage draws the positioned layout exactly as computed:
// circles at the node coordinates joined by vertical curves. It is the
// default visualization and needs no external tools.
//
//	svg := tree.RenderSVG(result, tree.WithStyle(tree.Warm{}))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage hands the hierarchy to Graphviz, which computes
// its own positions. Nodes appear as boxes connected by lines.
//
//	dot := nodelink.ToDOT(result, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// [tree]: github.com/matzehuels/lineage/pkg/render/tree
// [nodelink]: github.com/matzehuels/lineage/pkg/render/nodelink
package render
