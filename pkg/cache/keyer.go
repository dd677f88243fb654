package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// RosterKey identifies a member roster loaded from a source.
	RosterKey(source, location string) string
	// LayoutKey identifies a layout computed from a roster.
	LayoutKey(rosterHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs besides the roster.
type LayoutKeyOpts struct {
	VizType       string  `json:"viz_type"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	MarginTop     float64 `json:"margin_top"`
	MarginRight   float64 `json:"margin_right"`
	MarginBottom  float64 `json:"margin_bottom"`
	MarginLeft    float64 `json:"margin_left"`
	MinSeparation float64 `json:"min_separation"`
	Detailed      bool    `json:"detailed"`
	Style         string  `json:"style,omitempty"`
}

// ArtifactKeyOpts are the render inputs besides the layout.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	Detailed bool    `json:"detailed,omitempty"`
	Title    string  `json:"title,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RosterKey returns "roster:<source>:<location>".
func (DefaultKeyer) RosterKey(source, location string) string {
	return fmt.Sprintf("roster:%s:%s", source, location)
}

// LayoutKey hashes the roster hash with the options.
func (DefaultKeyer) LayoutKey(rosterHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", rosterHash, opts)
}

// ArtifactKey hashes the layout hash with the options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
