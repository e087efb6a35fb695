package deps

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/apkgraph/pkg/apkindex"
	"github.com/matzehuels/apkgraph/pkg/source"
)

func universe() *source.IndexSource {
	return source.NewFixture(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {},
		"D": {"B"},
	})
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		want     map[string][]string
		wantKeys []string
	}{
		{
			name:     "TransitiveAndDirect",
			target:   "C",
			want:     map[string][]string{"A": {"B"}, "B": {"C"}, "D": {"B"}},
			wantKeys: []string{"A", "B", "D"},
		},
		{
			name:     "NoDependents",
			target:   "D",
			want:     map[string][]string{},
			wantKeys: []string{},
		},
		{
			name:     "DirectOnly",
			target:   "B",
			want:     map[string][]string{"A": {"B"}, "D": {"B"}},
			wantKeys: []string{"A", "D"},
		},
		{
			name:     "UnknownTarget",
			target:   "Z",
			want:     map[string][]string{},
			wantKeys: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Reverse(context.Background(), tt.target, universe(), Options{})
			if diff := cmp.Diff(tt.want, entries(g)); diff != "" {
				t.Errorf("Reverse(%s) mismatch (-want +got):\n%s", tt.target, diff)
			}
			keys := g.Keys()
			if keys == nil {
				keys = []string{}
			}
			if diff := cmp.Diff(tt.wantKeys, keys); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReverse_ExcludesTargetInCycle(t *testing.T) {
	src := source.NewFixture(map[string][]string{
		"A": {"B"},
		"B": {"A"},
		"S": {"S"},
	})

	g := Reverse(context.Background(), "A", src, Options{})
	if diff := cmp.Diff([]string{"B"}, g.Keys()); diff != "" {
		t.Errorf("Reverse(A) keys mismatch (-want +got):\n%s", diff)
	}

	g = Reverse(context.Background(), "S", src, Options{})
	if g.Len() != 0 {
		t.Errorf("Reverse(S) = %v, want empty", g.Keys())
	}
}

func TestReverse_ValueIsOwnEntry(t *testing.T) {
	src := source.NewFixture(map[string][]string{
		"app":  {"lib", "musl"},
		"lib":  {"musl"},
		"musl": {},
	})
	g := Reverse(context.Background(), "musl", src, Options{})

	got, _ := g.Get("app")
	if diff := cmp.Diff([]string{"lib", "musl"}, got); diff != "" {
		t.Errorf("Get(app) mismatch (-want +got):\n%s", diff)
	}
}

func TestReverse_RebuildsPerPackage(t *testing.T) {
	src := &countingSource{deps: map[string][]string{"A": {"B"}, "B": {"C"}, "C": {}}}
	reverse(context.Background(), "C", []string{"A", "B", "C"}, src.Lookup, Options{}.WithDefaults())

	// A: A,B,C; B: B,C; C skipped.
	if len(src.calls) != 5 {
		t.Errorf("lookups = %v, want 5", src.calls)
	}
}

func TestReverse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if g := Reverse(ctx, "C", universe(), Options{}); g.Len() != 0 {
		t.Errorf("Reverse() on cancelled ctx = %v, want empty", g.Keys())
	}
}

func TestReverse_ProvidedTokensKeepTheirName(t *testing.T) {
	src := source.NewIndexSource([]apkindex.Package{
		{Name: "musl", Version: "1.2.5-r0", Provides: []string{"so:libc.musl-x86_64.so.1"}},
		{Name: "busybox", Version: "1.36.1-r29", Depends: []string{"so:libc.musl-x86_64.so.1"}},
		{Name: "curl", Version: "8.9.0-r0", Depends: []string{"musl"}},
	})

	byName := Reverse(context.Background(), "musl", src, Options{})
	if diff := cmp.Diff([]string{"curl"}, byName.Keys()); diff != "" {
		t.Errorf("Reverse(musl) keys mismatch (-want +got):\n%s", diff)
	}

	byToken := Reverse(context.Background(), "so:libc.musl-x86_64.so.1", src, Options{})
	if diff := cmp.Diff([]string{"busybox"}, byToken.Keys()); diff != "" {
		t.Errorf("Reverse(so:libc...) keys mismatch (-want +got):\n%s", diff)
	}
}
