package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

func sample() *graph.Graph {
	g := graph.New()
	g.Set("app", []string{"lib", "lib", "so:libc.so"})
	g.Set("lib", nil)
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{Root: "app"})

	for _, want := range []string{
		"digraph G {",
		`"app" [label="app", fillcolor="#dbeafe", penwidth=2];`,
		`"lib" [label="lib"];`,
		`"so:libc.so" [label="so:libc.so", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"app" -> "lib";`,
		`"app" -> "so:libc.so";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"app" -> "lib";`); n != 1 {
		t.Errorf("duplicate dependency produced %d edges, want 1", n)
	}
}

func TestToDOT_Reverse(t *testing.T) {
	g := graph.New()
	g.Set("A", []string{"B"})
	dot := ToDOT(g, Options{Reverse: true})
	if !strings.Contains(dot, `"B" -> "A";`) {
		t.Errorf("ToDOT(reverse) missing flipped edge\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sample(), Options{Root: "app"}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("viewBox not normalized")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not PNG")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG("digraph {"); err == nil {
		t.Error("RenderSVG() error = nil, want parse error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
