// Package render turns sorted pages into output artifacts.
//
// # Formats
//
//   - text: indented outline for terminals (in [text] subpackage)
//   - json: the page document of package io
//   - choices: select-input choices as JSON
//   - dot, svg: Graphviz diagrams (in [nodelink] subpackage)
//   - png, pdf: the SVG diagram converted with rsvg-convert
//
// Use [ParseFormat] to validate user input and [Format.Binary] to decide
// whether output may be written to a terminal.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert a page diagram to print and raster formats with
// the external rsvg-convert tool from librsvg.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
package render
