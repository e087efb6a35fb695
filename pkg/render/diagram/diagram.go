// Package diagram renders a dependency graph as D2 source.
//
// Every entry becomes one "a -> b" statement per dependency, or a bare "a"
// declaration when it has none, in the graph's key order:
//
//	# dependencies of app
//	app -> lib1
//	app -> lib2
//	lib1
//	lib2 -> lib1
//
// The output can be fed to the d2 CLI or any tool that reads the same edge
// syntax.
package diagram

import (
	"io"
	"strings"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

// Direction selects the header wording.
type Direction int

const (
	Forward Direction = iota // "# dependencies of <root>"
	Reverse                  // "# dependents of <root>"
)

// Render returns the diagram of a forward graph rooted at root.
func Render(g *graph.Graph, root string) string {
	return RenderDirection(g, root, Forward)
}

// RenderDirection returns the diagram of g with a header for dir.
func RenderDirection(g *graph.Graph, root string, dir Direction) string {
	var b strings.Builder
	b.WriteString(header(root, dir))
	b.WriteByte('\n')
	for name, deps := range g.All() {
		if len(deps) == 0 {
			b.WriteString(ident(name))
			b.WriteByte('\n')
			continue
		}
		for _, dep := range deps {
			b.WriteString(ident(name))
			b.WriteString(" -> ")
			b.WriteString(ident(dep))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Write writes the diagram of g to w.
func Write(w io.Writer, g *graph.Graph, root string, dir Direction) error {
	_, err := io.WriteString(w, RenderDirection(g, root, dir))
	return err
}

func header(root string, dir Direction) string {
	if dir == Reverse {
		return "# dependents of " + root
	}
	return "# dependencies of " + root
}

// ident quotes names that D2 would otherwise parse as syntax: '.' nests
// keys, ':' starts a label, and "--" or a leading '-' reads as a connection.
func ident(name string) string {
	if strings.ContainsAny(name, ".:;{}#'\"|`$<>&*") ||
		strings.Contains(name, "--") || strings.HasPrefix(name, "-") {
		return `"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
	}
	return name
}
