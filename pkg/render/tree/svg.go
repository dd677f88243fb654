package tree

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/lineage/pkg/lineage"
)

// DefaultTitle is the heading of the panel in the top left corner.
const DefaultTitle = "Family Lineage"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    Style
	radius   float64
	title    string
	subtitle string
}

func WithStyle(s Style) SVGOption        { return func(r *svgRenderer) { r.style = s } }
func WithRadius(px float64) SVGOption    { return func(r *svgRenderer) { r.radius = px } }
func WithTitle(title string) SVGOption   { return func(r *svgRenderer) { r.title = title } }
func WithSubtitle(text string) SVGOption { return func(r *svgRenderer) { r.subtitle = text } }
func WithoutPanel() SVGOption            { return func(r *svgRenderer) { r.title = "" } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Simple{}, radius: lineage.DefaultNodeRadius, title: DefaultTitle}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = Simple{}
	}
	return r
}

// RenderSVG draws res. Links are drawn first so circles cover their ends.
func RenderSVG(res lineage.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := res.Frame.Width, res.Frame.Height

	var buf bytes.Buffer
	openSVG(&buf, w, h)
	r.style.RenderBackground(&buf, w, h)
	for _, c := range res.Connectors {
		r.style.RenderLink(&buf, Link{FromID: c.FromID, ToID: c.ToID, X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2})
	}
	for _, n := range res.Nodes {
		r.style.RenderNode(&buf, Node{ID: n.ID, Name: n.Name, Relation: n.Relation, X: n.X, Y: n.Y, Radius: r.radius})
	}
	r.style.RenderPanel(&buf, r.title, r.subtitle)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderErrorSVG draws a frame of the given size that shows the diagnostic
// for err in place of the tree. Non-positive sizes fall back to 800x600.
func RenderErrorSVG(width, height float64, err error, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	if !(width > 0) || !(height > 0) {
		width, height = 800, 600
	}

	var buf bytes.Buffer
	openSVG(&buf, width, height)
	r.style.RenderBackground(&buf, width, height)
	kind := lineage.KindOf(err)
	fmt.Fprintf(&buf, `  <text class="error" data-kind="%s" x="20" y="40" font-family="system-ui, sans-serif" font-size="14" fill="#b91c1c">%s</text>`+"\n",
		escapeXML(string(kind)), escapeXML(lineage.Describe(err)))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func openSVG(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
