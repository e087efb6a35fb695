package tree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

func build(entries ...any) *graph.Graph {
	g := graph.New()
	for i := 0; i < len(entries); i += 2 {
		g.Set(entries[i].(string), entries[i+1].([]string))
	}
	return g
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
		root string
		want []string
	}{
		{
			name: "SingleNode",
			g:    build("a", []string{}),
			root: "a",
			want: []string{"a"},
		},
		{
			name: "MissingRoot",
			g:    graph.New(),
			root: "ghost",
			want: []string{"ghost"},
		},
		{
			name: "Cycle",
			g:    build("A", []string{"B"}, "B", []string{"A"}),
			root: "A",
			want: []string{
				"A",
				"└── B",
				"    └── A (circular)",
			},
		},
		{
			name: "SelfDependency",
			g:    build("A", []string{"A"}),
			root: "A",
			want: []string{"A", "└── A (circular)"},
		},
		{
			name: "Diamond",
			g: build(
				"app", []string{"lib1", "lib2"},
				"lib1", []string{"musl"},
				"lib2", []string{"musl"},
				"musl", []string{},
			),
			root: "app",
			want: []string{
				"app",
				"├── lib1",
				"│   └── musl",
				"└── lib2",
				"    └── musl",
			},
		},
		{
			name: "DeepNesting",
			g: build(
				"a", []string{"b", "e"},
				"b", []string{"c", "d"},
				"c", []string{},
				"d", []string{"a"},
			),
			root: "a",
			want: []string{
				"a",
				"├── b",
				"│   ├── c",
				"│   └── d",
				"│       └── a (circular)",
				"└── e",
			},
		},
		{
			name: "Duplicates",
			g:    build("a", []string{"b", "b"}),
			root: "a",
			want: []string{"a", "├── b", "└── b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Render(tt.g, tt.root)); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_SiblingsDoNotShareAncestry(t *testing.T) {
	// b appears under both a and c; neither occurrence is an ancestor of the other.
	g := build("a", []string{"b", "c"}, "c", []string{"b"}, "b", []string{})
	for _, line := range Render(g, "a") {
		if strings.HasSuffix(line, Circular) {
			t.Errorf("unexpected circular marker: %q", line)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	g := build("A", []string{"B"}, "B", []string{"A"})
	if err := Write(&buf, g, "A"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := "A\n└── B\n    └── A (circular)\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWrite_Error(t *testing.T) {
	g := build("a", []string{})
	if err := Write(failWriter{}, g, "a"); err == nil {
		t.Error("Write() error = nil, want error")
	}
}

func TestRenderReverse(t *testing.T) {
	rg := build("A", []string{"B"}, "B", []string{"C"}, "D", []string{"B"})
	want := []string{
		"Reverse dependencies of C:",
		"A",
		"└── B",
		"    └── C",
		"B",
		"└── C",
		"D",
		"└── B",
		"    └── C",
	}
	if diff := cmp.Diff(want, RenderReverse(rg, "C")); diff != "" {
		t.Errorf("RenderReverse() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReverse_Empty(t *testing.T) {
	want := []string{"No packages depend on D"}
	if diff := cmp.Diff(want, RenderReverse(graph.New(), "D")); diff != "" {
		t.Errorf("RenderReverse() mismatch (-want +got):\n%s", diff)
	}
}
