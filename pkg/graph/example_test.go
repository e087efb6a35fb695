package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

func ExampleGraph_Get() {
	g := graph.New()
	g.Set("app", []string{"musl"})

	deps, ok := g.Get("app")
	fmt.Println(deps, ok)

	_, ok = g.Get("musl")
	fmt.Println("musl expanded:", ok)
	// Output:
	// [musl] true
	// musl expanded: false
}

func ExampleWriteJSON() {
	g := graph.New()
	g.Set("app", []string{"lib"})
	g.Set("lib", nil)

	if err := graph.WriteJSON(g, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "app": [
	//     "lib"
	//   ],
	//   "lib": []
	// }
}
