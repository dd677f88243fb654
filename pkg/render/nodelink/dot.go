package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/lineage"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds the relation below the member name.
	// When false, only the name is shown.
	Detailed bool
	// Style selects the colour scheme ("simple" or "warm").
	Style string
}

type colors struct {
	fill, stroke, edge, font string
}

func colorsFor(style string) colors {
	if style == graph.StyleWarm {
		return colors{fill: "#fdf8f6", stroke: "#8a6a5c", edge: "#a18072", font: "#43302b"}
	}
	return colors{fill: "white", stroke: "black", edge: "black", font: "black"}
}

// ToDOT converts a computed layout to Graphviz DOT format.
// Members of one tier are pinned to the same rank and edges keep the input
// sibling order, so Graphviz reproduces the tree's structure with its own
// spacing.
func ToDOT(res lineage.Result, opts Options) string {
	c := colorsFor(opts.Style)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=%q, color=%q, fontcolor=%q, fontsize=24, margin=\"0.2,0.1\"];\n",
		c.fill, c.stroke, c.font)
	fmt.Fprintf(&buf, "  edge [color=%q, arrowhead=none, penwidth=2];\n", c.edge)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range res.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, tier := range res.Tiers() {
		if len(tier) < 2 {
			continue
		}
		ids := make([]string, len(tier))
		for i, n := range tier {
			ids[i] = strconv.Quote(n.ID)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	for _, e := range res.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.FromID, e.ToID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n lineage.PositionedNode, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed || n.Relation == "" {
		return name
	}
	return name + "\n" + n.Relation
}

// Export creates a serializable nodelink layout from a DOT string generated
// with opts.
//
// Unlike tree layouts, nodelink positions are computed by Graphviz during
// rendering. The structural fields (nodes, edges, tiers) are still taken
// from res so consumers can inspect the hierarchy without parsing DOT.
func Export(dot string, res lineage.Result, opts Options) graph.Layout {
	l := graph.FromResult(res, opts.Style)
	l.VizType = graph.VizTypeNodelink
	l.DOT = dot
	l.Engine = "dot"
	l.Detailed = opts.Detailed
	return l
}

// Parse extracts the DOT string from a serialized nodelink layout.
//
// Returns an error if the layout is not a nodelink type or is missing the DOT string.
func Parse(layout graph.Layout) (string, error) {
	if layout.VizType != "" && layout.VizType != graph.VizTypeNodelink {
		return "", fmt.Errorf("invalid viz_type for nodelink layout: %q", layout.VizType)
	}
	if layout.DOT == "" {
		return "", fmt.Errorf("nodelink layout must contain DOT string")
	}
	return layout.DOT, nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element (pt units, odd
// origin) with a plain pixel viewBox so the SVG scales like the tree
// renderer's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
