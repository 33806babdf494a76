package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes the level and metadata in node labels.
	Detailed bool
}

// ToDOT converts a page to Graphviz DOT. Edges are drawn only between
// records that are both on the page.
func ToDOT(p hierarchy.Page, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	onPage := make(map[string]bool, len(p.Nodes))
	for i, n := range p.Nodes {
		onPage[n.ID()] = true
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), i < p.Ancestors)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range p.Nodes {
		if n.HasParent() && onPage[n.ParentID()] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ParentID(), n.ID())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n hierarchy.Node, detailed bool) string {
	label := hierarchy.LabelOf(n)
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("level: %d", n.Level())}
	if r, ok := n.(*hierarchy.Record); ok {
		for _, k := range slices.Sorted(maps.Keys(r.Meta)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, r.Meta[k]))
		}
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n hierarchy.Node, label string, faded bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case hierarchy.IsAuxiliary(n):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case faded:
		attrs = append(attrs, "fillcolor=whitesmoke", "fontcolor=gray40")
	}
	return attrs
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

// normalizeViewBox rewrites the root element so the diagram scales with
// its container.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
