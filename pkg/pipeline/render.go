package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/observability"
	"github.com/matzehuels/lineage/pkg/render/nodelink"
	"github.com/matzehuels/lineage/pkg/render/tree"
)

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	var (
		artifacts map[string][]byte
		err       error
	)
	if l.IsNodelink() {
		artifacts, err = RenderNodelink(ctx, l, opts)
	} else {
		artifacts, err = RenderTree(l, opts)
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// RenderTree generates tree outputs from a layout.
func RenderTree(l graph.Layout, opts Options) (map[string][]byte, error) {
	style, ok := tree.StyleByName(opts.Style)
	if !ok {
		return nil, ValidateStyle(opts.Style)
	}
	res := graph.ToResult(l)
	svgOpts := []tree.SVGOption{
		tree.WithStyle(style),
		tree.WithSubtitle(summary(l)),
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, tree.WithTitle(opts.Title))
	}
	if opts.NodeRadius > 0 {
		svgOpts = append(svgOpts, tree.WithRadius(opts.NodeRadius))
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = tree.RenderSVG(res, svgOpts...)
		case FormatJSON:
			l.Style = opts.Style
			data, err := graph.MarshalLayout(l)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format: %s", format)
		}
	}
	return artifacts, nil
}

// RenderNodelink generates nodelink outputs from a layout.
// The DOT source is regenerated when the requested style or labels differ
// from the ones the layout was computed with. An empty opts.Style keeps the
// layout's style.
func RenderNodelink(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.Parse(l)
	if err != nil {
		return nil, err
	}
	style := opts.Style
	if style == "" {
		style = l.Style
	}
	if style != l.Style || opts.Detailed != l.Detailed {
		res := graph.ToResult(l)
		dotOpts := nodelink.Options{Detailed: opts.Detailed, Style: style}
		dot = nodelink.ToDOT(res, dotOpts)
		l = nodelink.Export(dot, res, dotOpts)
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// ErrorCard draws the SVG shown in place of the tree when the lineage
// engine rejects the roster or the frame. It returns false for any other
// error, which has no user-facing explanation.
func ErrorCard(err error, opts Options) ([]byte, bool) {
	if lineage.KindOf(err) == "" {
		return nil, false
	}
	opts.SetLayoutDefaults()
	var svgOpts []tree.SVGOption
	if style, ok := tree.StyleByName(opts.Style); ok {
		svgOpts = append(svgOpts, tree.WithStyle(style))
	}
	return tree.RenderErrorSVG(opts.Width, opts.Height, err, svgOpts...), true
}

func summary(l graph.Layout) string {
	members := "members"
	if len(l.Nodes) == 1 {
		members = "member"
	}
	generations := "generations"
	if l.MaxDepth == 0 {
		generations = "generation"
	}
	return fmt.Sprintf("%d %s, %d %s", len(l.Nodes), members, l.MaxDepth+1, generations)
}
