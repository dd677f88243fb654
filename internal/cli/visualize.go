package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		style      string
		title      string
		radius     float64
		detailed   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visualization from a computed layout",
		Long: `Render visualization from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it. The layout contains all positioning information, so this step is
purely about drawing: tree layouts render to svg, nodelink layouts to svg,
png or dot.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a roster to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.PipelineOptions()
			opts.Logger = c.Logger
			opts.Formats = parseFormats(formatsStr)
			opts.Style = ""
			if cmd.Flags().Changed("style") {
				opts.Style = style
			}
			// Without --detailed the layout's own labels are kept.
			var detailedFlag *bool
			if cmd.Flags().Changed("detailed") {
				detailedFlag = &detailed
			}
			if cmd.Flags().Changed("radius") {
				opts.NodeRadius = radius
			}
			opts.Title = title
			return c.runVisualize(cmd.Context(), args[0], opts, detailedFlag, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVar(&style, "style", "", "visual style: simple, warm (default: the layout's style)")
	cmd.Flags().StringVar(&title, "title", "", "title drawn above the tree")
	cmd.Flags().Float64Var(&radius, "radius", 0, "node radius (default from config)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show relations in nodelink labels (default: the layout's setting)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, detailed *bool, output string, noCache bool) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts.VizType = layout.VizType
	if opts.Style == "" {
		opts.Style = layout.Style
	}
	opts.Detailed = layout.Detailed
	if detailed != nil {
		opts.Detailed = *detailed
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", layout.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	base := strings.TrimSuffix(strings.TrimSuffix(input, filepath.Ext(input)), ".layout")
	paths, err := writeArtifacts(artifacts, opts.Formats, base, output)
	if err != nil {
		return err
	}

	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(layout.Nodes), layout.MaxDepth+1, cacheHit)
	return nil
}
