package graph

import (
	"github.com/matzehuels/lineage/pkg/lineage"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeTree     = "tree"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleWarm   = "warm"
)

// =============================================================================
// Node - Positioned Member
// =============================================================================

// Node is a member as it appears in a serialized layout.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label,omitempty" bson:"label,omitempty"` // Display name (defaults to ID)
	Relation string  `json:"relation,omitempty" bson:"relation,omitempty"`
	ParentID string  `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Depth    int     `json:"depth" bson:"depth"`
	Order    int     `json:"order" bson:"order"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge - Parent to Child Connector
// =============================================================================

// Edge links a parent (From) to one of its children (To). The coordinates
// are the centres of the two nodes.
type Edge struct {
	From string  `json:"from" bson:"from"`
	To   string  `json:"to" bson:"to"`
	X1   float64 `json:"x1" bson:"x1"`
	Y1   float64 `json:"y1" bson:"y1"`
	X2   float64 `json:"x2" bson:"x2"`
	Y2   float64 `json:"y2" bson:"y2"`
}

// =============================================================================
// Result ↔ Layout Conversion
// =============================================================================

// FromResult converts a computed layout to its serialization format.
// Node and edge order is preserved (breadth-first, siblings in input order).
func FromResult(res lineage.Result, style string) Layout {
	out := Layout{
		VizType:  VizTypeTree,
		Width:    res.Frame.Width,
		Height:   res.Frame.Height,
		Margins:  res.Frame.Margins,
		Style:    style,
		MaxDepth: res.MaxDepth,
		Nodes:    make([]Node, len(res.Nodes)),
		Edges:    make([]Edge, len(res.Connectors)),
		Tiers:    make(map[int][]string, res.MaxDepth+1),
	}
	for i, n := range res.Nodes {
		out.Nodes[i] = Node{
			ID:       n.ID,
			Label:    n.Name,
			Relation: n.Relation,
			ParentID: n.ParentID,
			X:        n.X,
			Y:        n.Y,
			Depth:    n.Depth,
			Order:    n.Order,
		}
		out.Tiers[n.Depth] = append(out.Tiers[n.Depth], n.ID)
	}
	for i, c := range res.Connectors {
		out.Edges[i] = Edge{From: c.FromID, To: c.ToID, X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2}
	}
	return out
}

// ToResult converts a serialized layout back to a [lineage.Result].
// Only the positional fields are restored; DOT and style are dropped.
func ToResult(l Layout) lineage.Result {
	res := lineage.Result{
		Frame:      lineage.Frame{Width: l.Width, Height: l.Height, Margins: l.Margins},
		MaxDepth:   l.MaxDepth,
		Nodes:      make([]lineage.PositionedNode, len(l.Nodes)),
		Connectors: make([]lineage.Connector, len(l.Edges)),
	}
	for i, n := range l.Nodes {
		res.Nodes[i] = lineage.PositionedNode{
			ID:       n.ID,
			Name:     n.Label,
			Relation: n.Relation,
			ParentID: n.ParentID,
			X:        n.X,
			Y:        n.Y,
			Depth:    n.Depth,
			Order:    n.Order,
		}
	}
	for i, e := range l.Edges {
		res.Connectors[i] = lineage.Connector{FromID: e.From, ToID: e.To, X1: e.X1, Y1: e.Y1, X2: e.X2, Y2: e.Y2}
	}
	return res
}
