// Package nodelink renders a sorted page as a node-link diagram.
//
// # Overview
//
// Each emitted record becomes a box and each parent link between two
// emitted records becomes an arrow, laid out top to bottom with Graphviz.
// Back-filled ancestors are drawn grey and synthesized roots dashed, so the
// page's own records stand out.
//
// # Usage
//
//	dot := nodelink.ToDOT(page, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
