// Package tree renders a dependency graph as an indented box-drawing tree.
//
//	app
//	├── lib1
//	└── lib2
//	    └── lib1
//
// The walk follows the recorded dependency order. A name that is already an
// ancestor on the current branch is printed with a " (circular)" suffix and
// not descended into; the same name on a sibling branch is expanded again,
// so shared (diamond) dependencies appear in full under each parent.
package tree

import (
	"bufio"
	"io"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

// Box-drawing prefixes.
const (
	Branch   = "├── "
	Last     = "└── "
	Pipe     = "│   "
	Blank    = "    "
	Circular = " (circular)"
)

// Render returns the tree lines for root. Names without an entry in g are
// rendered as leaves.
func Render(g *graph.Graph, root string) []string {
	var lines []string
	walk(g, root, "", "", mapset.NewThreadUnsafeSet[string](), func(line string) {
		lines = append(lines, line)
	})
	return lines
}

// Write renders the tree for root to w, one line per node.
func Write(w io.Writer, g *graph.Graph, root string) error {
	bw := bufio.NewWriter(w)
	var err error
	walk(g, root, "", "", mapset.NewThreadUnsafeSet[string](), func(line string) {
		if err == nil {
			_, err = bw.WriteString(line + "\n")
		}
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// walk emits name and its subtree. path holds the ancestors of name; each
// child gets its own copy so siblings never see one another.
func walk(g *graph.Graph, name, connector, indent string, path mapset.Set[string], emit func(string)) {
	if path.Contains(name) {
		emit(connector + name + Circular)
		return
	}
	emit(connector + name)

	path = path.Clone()
	path.Add(name)

	children, _ := g.Get(name)
	for i, child := range children {
		conn, next := Branch, Pipe
		if i == len(children)-1 {
			conn, next = Last, Blank
		}
		walk(g, child, indent+conn, indent+next, path, emit)
	}
}
