// Package render draws covers as Schreier graphs.
//
// # Overview
//
// The Schreier graph of a cover has one node per sheet and, for every
// generator g and sheet s, an edge from s to g·s. Edges are coloured by
// generator. Sheet 0, the base point whose stabiliser is the subgroup, is
// drawn with a double outline, and the edges of the spanning tree used for
// the subgroup presentation can be drawn bold.
//
// # Usage
//
//	dot := render.ToDOT(c, render.Options{Tree: true})
//	svg, err := render.SVG(ctx, c, render.Options{Tree: true})
//
// [Render] dispatches on an output format name:
//
//	data, err := render.Render(ctx, c, render.FormatPNG, render.Options{})
//
// # Format Conversion
//
// SVG is produced in-process by [github.com/goccy/go-graphviz]. The [ToPDF]
// and [ToPNG] functions convert SVG with the external rsvg-convert tool
// (from librsvg).
package render
