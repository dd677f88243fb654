// Package nodelink renders a lineage as a Graphviz node-link diagram.
//
// # Overview
//
// Members appear as rounded boxes joined by plain lines; Graphviz computes
// the positions. It is an alternative to the tree drawing for cases where
// the hierarchy is large or the labels are long.
//
// # Usage
//
// Convert a computed layout to DOT, then render:
//
//	dot := nodelink.ToDOT(result, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB), pins every tier
// to one rank and keeps sibling order (ordering=out), so the diagram has
// the same shape as the tree drawing.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no external binaries are required.
package nodelink
