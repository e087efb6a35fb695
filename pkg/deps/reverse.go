package deps

import (
	"context"

	"github.com/matzehuels/apkgraph/pkg/graph"
	"github.com/matzehuels/apkgraph/pkg/source"
)

// Reverse returns every package in src whose transitive dependency graph
// contains target, mapped to that package's own direct dependency list.
//
// Each candidate from src.Packages() is built from scratch with
// [source.Latest]; nothing is shared between builds. target itself is never
// part of the result, even when it depends on itself. Keys follow the
// sorted order of src.Packages(). Cancelling ctx stops the scan and returns
// the dependents found so far.
func Reverse(ctx context.Context, target string, src Source, opts Options) *graph.Graph {
	return reverse(ctx, target, src.Packages(), src.Lookup, opts.WithDefaults())
}

func reverse(ctx context.Context, target string, universe []string, lookup lookupFunc, opts Options) *graph.Graph {
	out := graph.New()
	for _, p := range universe {
		if ctx.Err() != nil {
			break
		}
		if p == target {
			continue
		}
		g := build(ctx, p, lookup, source.Latest, opts)
		if !g.Has(target) {
			continue
		}
		own, _ := g.Get(p)
		out.Set(p, own)
	}
	return out
}
