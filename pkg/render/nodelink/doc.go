// Package nodelink renders a family tree as a Graphviz node-link diagram.
//
// # Overview
//
// This is an alternative to the card diagram in pkg/render/diagram for cases
// where Graphviz's own layout is preferred, or the DOT source is wanted for
// further processing.
//
// Members are boxes. Each couple placed by layout.Build gets a small point
// node (the union) joined to both partners; children hang from the union.
// Children of a single parent, or of parents that are not a placed couple,
// hang directly from each parent.
//
// # Usage
//
//	dot := nodelink.ToDOT(members, layout.Build(members), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [RenderSVG] runs Graphviz through github.com/goccy/go-graphviz, which
// embeds a WebAssembly build; no system Graphviz installation is needed.
// PDF and PNG conversion needs rsvg-convert, see pkg/render.
package nodelink
