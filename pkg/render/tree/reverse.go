package tree

import "github.com/matzehuels/apkgraph/pkg/graph"

// RenderReverse renders the result of a reverse query: a header line
// followed by one tree per dependent in key order. Each tree walks the
// reverse graph, so it shows the dependent's path toward target.
func RenderReverse(rg *graph.Graph, target string) []string {
	if rg.Len() == 0 {
		return []string{NoDependents(target)}
	}
	lines := []string{"Reverse dependencies of " + target + ":"}
	for _, dependent := range rg.Keys() {
		lines = append(lines, Render(rg, dependent)...)
	}
	return lines
}

// NoDependents is the message for an empty reverse result.
func NoDependents(target string) string {
	return "No packages depend on " + target
}
