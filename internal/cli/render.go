package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/pipeline"
)

// renderCommand creates the render command, which goes straight from a
// roster to rendered output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		title      string
		radius     float64
		noCache    bool
		flags      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [roster]",
		Short: "Render a member roster to SVG, PNG, DOT or JSON",
		Long: `Render a member roster to SVG, PNG, DOT or JSON.

Render runs layout and visualize in one step. Tree layouts render to svg and
json; nodelink layouts additionally render to png and dot through Graphviz.

When the roster does not form a single tree, the SVG output is an error card
that explains why; the command still fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(&flags)
			opts.Formats = parseFormats(formatsStr)
			if cmd.Flags().Changed("title") {
				opts.Title = title
			}
			if cmd.Flags().Changed("radius") {
				opts.NodeRadius = radius
			}
			return c.runRender(cmd.Context(), args, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, dot (comma-separated)")
	cmd.Flags().StringVar(&title, "title", "", "title drawn above the tree")
	cmd.Flags().Float64Var(&radius, "radius", 0, "node radius (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runRender loads the members and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, args []string, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	members, base, err := c.loadMembers(ctx, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	result, err := runner.Execute(ctx, members, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return c.writeErrorCard(err, opts, base, output)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", plural(len(members), "member", "members")))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, base, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.MemberCount, result.Stats.MaxDepth+1, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeErrorCard writes the SVG error card for an engine failure when svg
// output was requested. The original error is always returned.
func (c *CLI) writeErrorCard(err error, opts pipeline.Options, base, output string) error {
	card, ok := pipeline.ErrorCard(err, opts)
	if !ok || !slices.Contains(opts.Formats, pipeline.FormatSVG) {
		return err
	}
	path := artifactPath(pipeline.FormatSVG, opts.Formats, base, output)
	if werr := os.WriteFile(path, card, 0644); werr != nil {
		c.Logger.Warn("could not write error card", "path", path, "err", werr)
		return err
	}
	printWarning("Wrote error card")
	printFile(path)
	return err
}

// writeArtifacts writes each rendered format to disk and returns the paths
// in format order. A single format is written to output as given; several
// formats share output (or base) as a prefix.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(format, formats, base, output)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath is where the given format is written. A derived JSON path
// gets the .layout.json suffix so it never replaces a JSON roster.
func artifactPath(format string, formats []string, base, output string) string {
	if output != "" && len(formats) == 1 {
		return output
	}
	if output == "" && format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return basePath(output, base) + "." + format
}

// basePath strips a known format extension from output, or returns base
// when output is empty.
func basePath(output, base string) string {
	if output == "" {
		return base
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatDOT, pipeline.FormatJSON:
		return strings.TrimSuffix(output, ext)
	}
	return output
}
