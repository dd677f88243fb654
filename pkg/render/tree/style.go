package tree

import (
	"bytes"
	"fmt"
)

// Style defines the visual appearance of a tree drawing.
type Style interface {
	// Name is the style identifier used in options and cache keys.
	Name() string
	// RenderBackground writes the full-frame background.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderLink writes a parent to child curve.
	RenderLink(buf *bytes.Buffer, l Link)
	// RenderNode writes the circle and the labels of one member.
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderPanel writes the title panel.
	RenderPanel(buf *bytes.Buffer, title, subtitle string)
}

// Node contains the data needed to draw one member.
type Node struct {
	ID       string
	Name     string
	Relation string
	X, Y     float64
	Radius   float64
}

// Link contains the end points of one connector.
type Link struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
}

// Path returns the SVG path of a vertical cubic curve from the parent to
// the child with both control points at the mid height.
func (l Link) Path() string {
	mid := (l.Y1 + l.Y2) / 2
	return fmt.Sprintf("M%.2f,%.2fC%.2f,%.2f %.2f,%.2f %.2f,%.2f",
		l.X1, l.Y1, l.X1, mid, l.X2, mid, l.X2, l.Y2)
}

type palette struct {
	background string
	link       string
	nodeFill   string
	nodeStroke string
	name       string
	relation   string
	panelFill  string
	panelLine  string
	panelTitle string
	panelText  string
	font       string
	titleFont  string
}

// Simple draws the tree in neutral greys on a transparent background.
type Simple struct{}

// Warm draws the tree in the hub's brown brand palette.
type Warm struct{}

var (
	simplePalette = palette{
		link:       "#9ca3af",
		nodeFill:   "#ffffff",
		nodeStroke: "#4b5563",
		name:       "#111827",
		relation:   "#6b7280",
		panelFill:  "#ffffff",
		panelLine:  "#e5e7eb",
		panelTitle: "#111827",
		panelText:  "#6b7280",
		font:       "system-ui, sans-serif",
		titleFont:  "system-ui, sans-serif",
	}
	warmPalette = palette{
		background: "#fdf8f6",
		link:       "#a18072",
		nodeFill:   "#fdf8f6",
		nodeStroke: "#8a6a5c",
		name:       "#43302b",
		relation:   "#a18072",
		panelFill:  "#ffffff",
		panelLine:  "#f2e8e5",
		panelTitle: "#846358",
		panelText:  "#a18072",
		font:       "system-ui, sans-serif",
		titleFont:  "Georgia, serif",
	}
)

func (Simple) Name() string { return "simple" }
func (Warm) Name() string   { return "warm" }

func (Simple) RenderBackground(buf *bytes.Buffer, w, h float64) { simplePalette.drawBackground(buf, w, h) }
func (Warm) RenderBackground(buf *bytes.Buffer, w, h float64)   { warmPalette.drawBackground(buf, w, h) }
func (Simple) RenderLink(buf *bytes.Buffer, l Link)             { simplePalette.drawLink(buf, l) }
func (Warm) RenderLink(buf *bytes.Buffer, l Link)               { warmPalette.drawLink(buf, l) }
func (Simple) RenderNode(buf *bytes.Buffer, n Node)             { simplePalette.drawNode(buf, n) }
func (Warm) RenderNode(buf *bytes.Buffer, n Node)               { warmPalette.drawNode(buf, n) }
func (Simple) RenderPanel(buf *bytes.Buffer, title, sub string) { simplePalette.drawPanel(buf, title, sub) }
func (Warm) RenderPanel(buf *bytes.Buffer, title, sub string)   { warmPalette.drawPanel(buf, title, sub) }

func (p palette) drawBackground(buf *bytes.Buffer, w, h float64) {
	if p.background == "" {
		return
	}
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", w, h, p.background)
}

func (p palette) drawLink(buf *bytes.Buffer, l Link) {
	fmt.Fprintf(buf, `  <path class="link" data-from="%s" data-to="%s" d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		escapeXML(l.FromID), escapeXML(l.ToID), l.Path(), p.link)
}

func (p palette) drawNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <g class="node" id="node-%s" transform="translate(%.2f,%.2f)">`+"\n", escapeXML(n.ID), n.X, n.Y)
	fmt.Fprintf(buf, `    <circle r="%.0f" fill="%s" stroke="%s" stroke-width="3"/>`+"\n", n.Radius, p.nodeFill, p.nodeStroke)
	fmt.Fprintf(buf, `    <text class="name" dy="%.0f" text-anchor="middle" font-family="%s" font-size="12" font-weight="bold" fill="%s">%s</text>`+"\n",
		n.Radius+nameOffset, p.font, p.name, escapeXML(n.Name))
	if n.Relation != "" {
		fmt.Fprintf(buf, `    <text class="relation" dy="%.0f" text-anchor="middle" font-family="%s" font-size="10" fill="%s">%s</text>`+"\n",
			n.Radius+relationOffset, p.font, p.relation, escapeXML(n.Relation))
	}
	buf.WriteString("  </g>\n")
}

func (p palette) drawPanel(buf *bytes.Buffer, title, subtitle string) {
	if title == "" {
		return
	}
	w := panelWidth(title, subtitle)
	h := 36.0
	if subtitle != "" {
		h = 52
	}
	buf.WriteString(`  <g class="panel" transform="translate(16,16)">` + "\n")
	fmt.Fprintf(buf, `    <rect width="%.0f" height="%.0f" rx="8" fill="%s" fill-opacity="0.8" stroke="%s"/>`+"\n", w, h, p.panelFill, p.panelLine)
	fmt.Fprintf(buf, `    <text x="10" y="23" font-family="%s" font-size="15" font-weight="bold" fill="%s">%s</text>`+"\n",
		p.titleFont, p.panelTitle, escapeXML(title))
	if subtitle != "" {
		fmt.Fprintf(buf, `    <text x="10" y="40" font-family="%s" font-size="11" fill="%s">%s</text>`+"\n",
			p.font, p.panelText, escapeXML(subtitle))
	}
	buf.WriteString("  </g>\n")
}

// Label offsets below the circle edge. With the default radius of 30 they
// put the name at dy=45 and the relation at dy=60.
const (
	nameOffset     = 15.0
	relationOffset = 30.0
)

func panelWidth(title, subtitle string) float64 {
	n := max(len(title)*9, len(subtitle)*6)
	return float64(n + 20)
}

// StyleByName returns the style with the given name.
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "warm":
		return Warm{}, true
	}
	return nil, false
}
