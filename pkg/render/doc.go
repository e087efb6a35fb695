// Package render groups the output formats for dependency graphs.
//
// Every renderer reads an already built [graph.Graph]; none of them consult
// the package source again.
//
//   - [tree]: indented box-drawing tree with circular markers
//   - [diagram]: D2 edge statements
//   - [nodelink]: Graphviz DOT, rendered to SVG or PNG in-process
//
// All three start from the same graph:
//
//	lines := tree.Render(g, "curl")
//	d2 := diagram.Render(g, "curl")
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(g, nodelink.Options{Root: "curl"}))
//
// [graph.Graph]: github.com/matzehuels/apkgraph/pkg/graph
// [tree]: github.com/matzehuels/apkgraph/pkg/render/tree
// [diagram]: github.com/matzehuels/apkgraph/pkg/render/diagram
// [nodelink]: github.com/matzehuels/apkgraph/pkg/render/nodelink
package render
