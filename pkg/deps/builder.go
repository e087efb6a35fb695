package deps

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/apkgraph/pkg/graph"
	"github.com/matzehuels/apkgraph/pkg/observability"
	"github.com/matzehuels/apkgraph/pkg/source"
)

// Build walks src breadth-first from root and returns every reachable
// package mapped to its direct dependency list.
//
// The root is looked up with version; every other package with
// [source.Latest]. Each name is expanded at most once, so cycles terminate.
// A failed lookup never aborts the walk: the package is recorded with an
// empty list and the failure is reported through opts and the registered
// [observability.BuildHooks]. A cancelled ctx makes every remaining lookup
// fail the same way, so Build always returns a graph.
func Build(ctx context.Context, root string, src Source, version string, opts Options) *graph.Graph {
	return build(ctx, root, src.Lookup, version, opts.WithDefaults())
}

type crawler struct {
	ctx      context.Context
	opts     Options
	lookup   lookupFunc
	hooks    observability.BuildHooks
	g        *graph.Graph
	visited  mapset.Set[string]
	failures int
}

func build(ctx context.Context, root string, lookup lookupFunc, version string, opts Options) *graph.Graph {
	hooks := observability.Build()
	ctx = hooks.OnBuildStart(ctx, root)
	start := time.Now()

	c := &crawler{
		ctx:     ctx,
		opts:    opts,
		lookup:  lookup,
		hooks:   hooks,
		g:       graph.New(),
		visited: mapset.NewThreadUnsafeSet[string](),
	}
	c.run(root, version)

	hooks.OnBuildComplete(ctx, root, c.g.Len(), c.failures, time.Since(start))
	return c.g
}

func (c *crawler) run(root, version string) {
	queue := []string{root}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if !c.visited.Add(name) {
			continue
		}

		v := source.Latest
		if name == root {
			v = version
		}
		deps := c.fetch(name, v)
		c.g.Set(name, deps)

		for _, dep := range deps {
			if !c.visited.Contains(dep) {
				queue = append(queue, dep)
			}
		}
	}
}

func (c *crawler) fetch(name, version string) []string {
	deps, err := c.lookup(c.ctx, name, version)
	if err != nil {
		c.failures++
		c.opts.Logger("lookup failed: %s: %v", name, err)
		c.opts.OnFailure(name, err)
		c.hooks.OnLookupFailure(c.ctx, name, err)
		return []string{}
	}
	return deps
}
