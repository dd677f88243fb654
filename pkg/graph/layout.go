package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/lineage/pkg/lineage"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the unified serialization format for all visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Tree ("tree"):
//	  - Nodes: members with their x/y coordinates
//	  - Edges: parent to child connectors with end points
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot")
//	  - Detailed: whether the DOT labels include relations
//
// Shared fields (both types):
//   - Width, Height, Margins: frame dimensions
//   - Style: visual style ("simple", "warm")
//   - MaxDepth, Tiers: depth of the deepest member and depth → member IDs
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and style
	Width   float64         `json:"width" bson:"width"`
	Height  float64         `json:"height" bson:"height"`
	Margins lineage.Margins `json:"margins" bson:"margins"`
	Style   string          `json:"style,omitempty" bson:"style,omitempty"`

	// Hierarchy structure (shared)
	MaxDepth int              `json:"max_depth" bson:"max_depth"`
	Nodes    []Node           `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges    []Edge           `json:"edges,omitempty" bson:"edges,omitempty"`
	Tiers    map[int][]string `json:"tiers,omitempty" bson:"tiers,omitempty"`

	// Nodelink-specific
	DOT      string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine   string `json:"engine,omitempty" bson:"engine,omitempty"`
	Detailed bool   `json:"detailed,omitempty" bson:"detailed,omitempty"` // DOT labels carry relations
}

// IsTree returns true if this is a positioned tree layout.
func (l *Layout) IsTree() bool { return l.VizType == VizTypeTree }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Root returns the first node, which is the root of the hierarchy.
func (l *Layout) Root() (Node, bool) {
	if len(l.Nodes) == 0 {
		return Node{}, false
	}
	return l.Nodes[0], true
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeTree
	}

	switch {
	case l.IsTree() && len(l.Nodes) == 0:
		return Layout{}, fmt.Errorf("tree layout must contain nodes")
	case l.IsNodelink() && l.DOT == "":
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	case !l.IsTree() && !l.IsNodelink():
		return Layout{}, fmt.Errorf("unknown viz type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
