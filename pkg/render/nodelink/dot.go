package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kintree/pkg/connector"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds lifespans to node labels.
	Detailed bool
}

var genderFill = map[family.Gender]string{
	family.Male:   "#dbeafe",
	family.Female: "#fce7f3",
	family.Other:  "#f5f5f5",
}

// ToDOT converts a family tree to Graphviz DOT source.
func ToDOT(members []family.Member, forest layout.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, m := range members {
		fill, ok := genderFill[m.Gender]
		if !ok {
			fill = genderFill[family.Other]
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", m.ID, fmtLabel(m, opts.Detailed), fill)
	}

	couples := make(map[string]bool)
	forest.Walk(func(n *layout.Node, _ int) {
		if n.Spouse == nil {
			return
		}
		key := n.UnitKey()
		couples[key] = true
		u := unionID(key)
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, label=\"\"];\n", u)
		fmt.Fprintf(&buf, "  { rank=same; %q; %q; %q; }\n", n.Member.ID, u, n.Spouse.ID)
		fmt.Fprintf(&buf, "  %q -> %q [dir=none, weight=10];\n", n.Member.ID, u)
		fmt.Fprintf(&buf, "  %q -> %q [dir=none, weight=10];\n", u, n.Spouse.ID)
	})

	buf.WriteString("\n")
	for _, unit := range connector.Units(members) {
		for _, child := range unit.Children {
			if couples[unit.Key] {
				fmt.Fprintf(&buf, "  %q -> %q;\n", unionID(unit.Key), child)
				continue
			}
			for _, p := range unit.Parents {
				fmt.Fprintf(&buf, "  %q -> %q;\n", p, child)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func unionID(key string) string { return "union:" + key }

func fmtLabel(m family.Member, detailed bool) string {
	label := m.FullName()
	if detailed {
		if span := m.Lifespan(); span != "" {
			label += "\n" + span
		}
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a
// unitless one so the output scales like the card diagram.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
