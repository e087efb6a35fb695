// Package nodelink renders dependency graphs as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render it in-process:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Root: "curl"})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot)
//
// The DOT source can also be written out and processed with external
// Graphviz tools.
//
// # Layout
//
// Diagrams use top-to-bottom layout (rankdir=TB) with rounded box nodes.
// The root is filled light blue; names that were never expanded are dashed
// and grey. With [Options.Reverse] arrows point from a dependency to its
// dependents.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly; no system installation is required.
package nodelink
