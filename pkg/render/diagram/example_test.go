package diagram_test

import (
	"fmt"

	"github.com/matzehuels/apkgraph/pkg/graph"
	"github.com/matzehuels/apkgraph/pkg/render/diagram"
)

func ExampleRender() {
	g := graph.New()
	g.Set("app", []string{"lib1", "lib2"})
	g.Set("lib1", nil)
	g.Set("lib2", []string{"lib1"})

	fmt.Print(diagram.Render(g, "app"))
	// Output:
	// # dependencies of app
	// app -> lib1
	// app -> lib2
	// lib1
	// lib2 -> lib1
}
