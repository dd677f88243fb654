package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// layoutFlags are the layout and style flags shared by layout and render.
// Only flags the user set override the values from lineage.toml.
type layoutFlags struct {
	vizType       string
	width         float64
	height        float64
	margin        float64
	minSeparation float64
	style         string
	detailed      bool

	cmd *cobra.Command
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	fs := cmd.Flags()
	fs.StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: tree (default), nodelink")
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height")
	fs.Float64Var(&f.margin, "margin", pipeline.DefaultMargin, "margin on every side of the frame")
	fs.Float64Var(&f.minSeparation, "min-separation", lineage.DefaultMinSeparation, "minimum distance between neighbours in a generation (negative disables)")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple (default), warm")
	fs.BoolVar(&f.detailed, "detailed", false, "show relations in nodelink labels")
}

// apply overrides opts with the flags that were set on the command line.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	changed := func(name string) bool {
		return f.cmd != nil && f.cmd.Flags().Changed(name)
	}
	if changed("type") {
		opts.VizType = f.vizType
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("margin") {
		m := lineage.UniformMargins(f.margin)
		opts.Margins = &m
	}
	if changed("min-separation") {
		opts.MinSeparation = f.minSeparation
	}
	if changed("style") {
		opts.Style = f.style
	}
	if changed("detailed") {
		opts.Detailed = f.detailed
	}
}

// options returns the configured pipeline options with the flags applied.
func (c *CLI) options(f *layoutFlags) pipeline.Options {
	opts := c.cfg.PipelineOptions()
	opts.Logger = c.Logger
	opts.SetLayoutDefaults()
	f.apply(&opts)
	return opts
}
