package diagram

import (
	"testing"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

func TestRender(t *testing.T) {
	g := graph.New()
	g.Set("app", []string{"lib1", "lib2"})
	g.Set("lib1", []string{})
	g.Set("lib2", []string{"lib1"})

	want := "# dependencies of app\n" +
		"app -> lib1\n" +
		"app -> lib2\n" +
		"lib1\n" +
		"lib2 -> lib1\n"
	if got := Render(g, "app"); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_FollowsKeyOrder(t *testing.T) {
	g := graph.New()
	g.Set("zlib", nil)
	g.Set("app", []string{"zlib"})

	want := "# dependencies of app\nzlib\napp -> zlib\n"
	if got := Render(g, "app"); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_QuotesSyntaxNames(t *testing.T) {
	g := graph.New()
	g.Set("py3.11", []string{"so:libc.so", "musl"})
	g.Set("musl", nil)

	want := "# dependencies of py3.11\n" +
		"\"py3.11\" -> \"so:libc.so\"\n" +
		"\"py3.11\" -> musl\n" +
		"musl\n"
	if got := Render(g, "py3.11"); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_EmptyGraph(t *testing.T) {
	if got := Render(graph.New(), "x"); got != "# dependencies of x\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderDirection_Reverse(t *testing.T) {
	g := graph.New()
	g.Set("A", []string{"B"})
	g.Set("D", []string{"B"})

	want := "# dependents of C\nA -> B\nD -> B\n"
	if got := RenderDirection(g, "C", Reverse); got != want {
		t.Errorf("RenderDirection() = %q, want %q", got, want)
	}
}

func TestIdent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"musl", "musl"},
		{"alpine-base", "alpine-base"},
		{"g++", "g++"},
		{"py3.12", `"py3.12"`},
		{"so:libc.musl-x86_64.so.1", `"so:libc.musl-x86_64.so.1"`},
		{"cmd:sh", `"cmd:sh"`},
		{"a--b", `"a--b"`},
		{"-x", `"-x"`},
		{`say"hi`, `"say\"hi"`},
	}
	for _, tt := range tests {
		if got := ident(tt.in); got != tt.want {
			t.Errorf("ident(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
