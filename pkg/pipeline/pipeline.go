// Package pipeline provides the lineage pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the complete build → layout → render pipeline.
// By centralizing this logic, every entry point applies the same defaults,
// the same validation and the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Turn the member roster into a single-rooted hierarchy
//  2. Layout: Compute positions for every member inside the frame
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Build and layout run together; render can run on a stored layout.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    VizType: "tree",
//	    Formats: []string{"svg"},
//	    Style:   "warm",
//	}
//	result, err := runner.Execute(ctx, members, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.GenerateLayout(ctx, members, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/lineage"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultMargin is the default margin on each side of the frame.
	DefaultMargin = 50.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeTree

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// FormatsByVizType lists the output formats each visualization supports.
var FormatsByVizType = map[string][]string{
	graph.VizTypeTree:     {FormatSVG, FormatJSON},
	graph.VizTypeNodelink: {FormatSVG, FormatPNG, FormatDOT, FormatJSON},
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleSimple: true,
	graph.StyleWarm:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the lineage pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	VizType string `json:"viz_type,omitempty"`
	// Width and Height of zero select the defaults the first time
	// SetLayoutDefaults runs. After that a zero is kept and the layout
	// reports the frame as degenerate.
	Width   float64          `json:"width,omitempty"`
	Height  float64          `json:"height,omitempty"`
	Margins *lineage.Margins `json:"margins,omitempty"` // nil = DefaultMargin on every side
	// MinSeparation is the minimum centre distance between neighbours in a
	// tier. Zero selects lineage.DefaultMinSeparation; a negative value
	// disables the separation pass.
	MinSeparation float64 `json:"min_separation,omitempty"`
	Detailed      bool    `json:"detailed,omitempty"` // Show relations in nodelink labels

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Title      string   `json:"title,omitempty"`
	NodeRadius float64  `json:"node_radius,omitempty"` // 0 = lineage.DefaultNodeRadius

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	frameSet bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RosterHash is the content hash of the input roster.
	RosterHash string

	// Layout contains the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MemberCount int
	MaxDepth    int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if _, ok := FormatsByVizType[vizType]; !ok {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: tree, nodelink)", vizType)
	}
	return nil
}

// ValidateFormat checks that a format is supported by the visualization type.
func ValidateFormat(vizType, format string) error {
	supported, ok := FormatsByVizType[vizType]
	if !ok {
		return ValidateVizType(vizType)
	}
	if !slices.Contains(supported, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format for %s: %q (must be one of: %s)",
			vizType, format, strings.Join(supported, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported by the visualization type.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, warm)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
// The frame size is defaulted only on the first call, so a host can
// override Width or Height with zero afterwards.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if !o.frameSet {
		if o.Width == 0 {
			o.Width = DefaultWidth
		}
		if o.Height == 0 {
			o.Height = DefaultHeight
		}
		o.frameSet = true
	}
	if o.Margins == nil {
		m := lineage.UniformMargins(DefaultMargin)
		o.Margins = &m
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Frame sizes are not checked here: a frame too small for the tree is
// reported by the layout stage as DEGENERATE_AREA.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsTree returns true if this is a positioned tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeTree
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// Frame returns the drawing area described by the options.
func (o *Options) Frame() lineage.Frame {
	f := lineage.Frame{Width: o.Width, Height: o.Height, Margins: lineage.UniformMargins(DefaultMargin)}
	if o.Margins != nil {
		f.Margins = *o.Margins
	}
	return f
}

// separation resolves MinSeparation to the value passed to the layout.
func (o *Options) separation() float64 {
	switch {
	case o.MinSeparation == 0:
		return lineage.DefaultMinSeparation
	case o.MinSeparation < 0:
		return 0
	}
	return o.MinSeparation
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	f := o.Frame()
	k := cache.LayoutKeyOpts{
		VizType:       o.VizType,
		Width:         f.Width,
		Height:        f.Height,
		MarginTop:     f.Margins.Top,
		MarginRight:   f.Margins.Right,
		MarginBottom:  f.Margins.Bottom,
		MarginLeft:    f.Margins.Left,
		MinSeparation: o.separation(),
	}
	// Only the DOT source of nodelink layouts depends on labels and colours.
	if o.IsNodelink() {
		k.Detailed = o.Detailed
		k.Style = o.Style
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Detailed: o.IsNodelink() && o.Detailed,
		Title:    o.Title,
		Radius:   o.NodeRadius,
	}
}
