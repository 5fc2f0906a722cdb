// Package render turns an arranged family diagram into files.
//
// # Overview
//
// This package contains the output side of kintree:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The family diagram itself (in [diagram] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := diagram.RenderSVG(frame, members, links)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [diagram]: github.com/matzehuels/kintree/pkg/render/diagram
// [nodelink]: github.com/matzehuels/kintree/pkg/render/nodelink
package render

// Output formats understood by the CLI.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatDOT, FormatPDF, FormatPNG}
