// Package deps builds dependency graphs over a package repository.
//
// # Overview
//
// Two queries are provided:
//
//   - [Build]: the forward closure of one package, as a [graph.Graph]
//   - [Reverse]: every package whose closure contains a target
//
// Both consume a [Source], the capability that maps (name, version selector)
// to direct dependency names and enumerates the known universe. See
// [source.Load] for repository-backed sources and [source.NewFixture] for
// in-memory ones.
//
// # Building
//
//	src, _ := source.Load(ctx, "https://dl-cdn.alpinelinux.org/alpine/v3.20/main/x86_64", source.LoadOptions{})
//	g := deps.Build(ctx, "curl", src, source.Latest, deps.Options{
//	    Logger: logger.Debugf,
//	})
//
// The walk is breadth-first and single-threaded. A visited set guarantees
// each name is looked up once, which also breaks cycles: A -> B -> A yields
// {A: [B], B: [A]}.
//
// # Lookup Failures
//
// A failed lookup (unknown package, cancelled context) is not an error of
// the build. The package is recorded with an empty dependency list and the
// failure goes to [Options.Logger], [Options.OnFailure] and the registered
// [observability.BuildHooks]. An unknown root therefore yields {root: []}.
//
// # Reverse Queries
//
// [Reverse] rebuilds the full graph of every package in the universe and
// keeps those that reach the target. The cost is one build per package; no
// memo is shared between builds.
//
//	rg := deps.Reverse(ctx, "musl", src, deps.Options{})
//	for name, direct := range rg.All() {
//	    fmt.Println(name, direct)
//	}
//
// [graph.Graph]: github.com/matzehuels/apkgraph/pkg/graph
// [source.Load]: github.com/matzehuels/apkgraph/pkg/source
// [source.NewFixture]: github.com/matzehuels/apkgraph/pkg/source
// [observability.BuildHooks]: github.com/matzehuels/apkgraph/pkg/observability
package deps
