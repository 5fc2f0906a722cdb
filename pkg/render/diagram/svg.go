// Package diagram renders an arranged family tree as a standalone SVG.
//
// Every card is emitted as a group with id "member-<id>" and every couple
// marker as a circle with id "union-<key>", matching the anchor ids used by
// layout and connector, so the SVG can be measured by any host that wants to
// recompute connectors against it.
package diagram

import (
	"bytes"
	"fmt"
	"html"
	"maps"
	"slices"

	"github.com/matzehuels/kintree/pkg/connector"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/viewport"
)

const diagramCSS = `
    .card { stroke-width: 1.5; }
    .card.selected { stroke: #3b82f6; stroke-width: 3; }
    .name { font: bold 14px sans-serif; fill: #f1f5f9; }
    .surname { font: 10px monospace; fill: #64748b; text-transform: uppercase; }
    .dates { font: 10px monospace; fill: #94a3b8; }
    .connector { fill: none; stroke: #475569; stroke-width: 2; }
    .union { fill: #e11d48; }`

// Palette holds the colours per gender.
type Palette struct {
	Background string
	Card       string
	Border     map[family.Gender]string
}

// DefaultPalette is the dark theme used by default.
func DefaultPalette() Palette {
	return Palette{
		Background: "#020617",
		Card:       "#0f172a",
		Border: map[family.Gender]string{
			family.Male:   "#60a5fa",
			family.Female: "#f472b6",
			family.Other:  "#a3a3a3",
		},
	}
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	selected string
	view     *viewport.Viewport
	palette  Palette
	title    string
}

func WithSelected(id string) SVGOption           { return func(r *svgRenderer) { r.selected = id } }
func WithViewport(v *viewport.Viewport) SVGOption { return func(r *svgRenderer) { r.view = v } }
func WithPalette(p Palette) SVGOption             { return func(r *svgRenderer) { r.palette = p } }
func WithTitle(t string) SVGOption                { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws connectors first, then union markers, then cards, so
// lines pass underneath the cards they join.
func RenderSVG(frame layout.Frame, members []family.Member, links []connector.Link, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.Width, frame.Height, frame.Width, frame.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", diagramCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.palette.Background)

	transform := ""
	if r.view != nil {
		transform = fmt.Sprintf(` transform="translate(%.2f %.2f) scale(%.4f)"`, r.view.X, r.view.Y, r.view.Scale)
	}
	fmt.Fprintf(&buf, `  <g id="canvas"%s>`+"\n", transform)

	for _, l := range links {
		fmt.Fprintf(&buf, `    <path class="connector" data-unit="%s" data-child="%s" d="%s"/>`+"\n",
			html.EscapeString(l.Unit), html.EscapeString(l.Child), l.Curve.Path())
	}

	for _, key := range slices.Sorted(maps.Keys(frame.Unions)) {
		u := frame.Unions[key]
		fmt.Fprintf(&buf, `    <circle id="%s" class="union" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
			html.EscapeString(layout.UnionAnchor(key)), u.CenterX(), u.CenterY(), u.W/2)
	}

	for _, m := range members {
		card, ok := frame.Cards[m.ID]
		if !ok {
			continue
		}
		r.renderCard(&buf, m, card)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCard(buf *bytes.Buffer, m family.Member, c geom.Rect) {
	class := "card"
	if m.ID == r.selected {
		class += " selected"
	}
	border, ok := r.palette.Border[m.Gender]
	if !ok {
		border = r.palette.Border[family.Other]
	}

	fmt.Fprintf(buf, `    <g id="%s">`+"\n", html.EscapeString(layout.MemberAnchor(m.ID)))
	fmt.Fprintf(buf, `      <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill="%s" stroke="%s"/>`+"\n",
		class, c.X, c.Y, c.W, c.H, r.palette.Card, border)
	fmt.Fprintf(buf, `      <text class="name" x="%.1f" y="%.1f">%s</text>`+"\n",
		c.X+14, c.Y+24, html.EscapeString(m.DisplayName()))
	if m.LastName != "" {
		fmt.Fprintf(buf, `      <text class="surname" x="%.1f" y="%.1f">%s</text>`+"\n",
			c.X+14, c.Y+40, html.EscapeString(m.LastName))
	}
	if span := m.Lifespan(); span != "" {
		fmt.Fprintf(buf, `      <text class="dates" x="%.1f" y="%.1f">%s</text>`+"\n",
			c.X+14, c.Y+c.H-10, html.EscapeString(span))
	}
	buf.WriteString("    </g>\n")
}
