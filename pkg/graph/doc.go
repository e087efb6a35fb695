// Package graph defines the dependency graph produced by a build.
//
// A [Graph] is an adjacency mapping from package name to that package's
// direct dependency names. Keys keep the order in which they were first set,
// which is the order a breadth-first build visited them, so every renderer
// that iterates a graph produces deterministic output.
//
// # Entries vs. leaves
//
// A name that appears only in someone's dependency list was never expanded
// and has no entry. [Graph.Get] reports this with ok == false, which is
// distinct from an entry holding an empty list:
//
//	deps, ok := g.Get("musl")
//	switch {
//	case !ok:
//	    // never visited
//	case len(deps) == 0:
//	    // visited leaf
//	}
//
// # Serialization
//
// [Graph.MarshalJSON] writes an ordered JSON object:
//
//	{"app": ["lib1", "lib2"], "lib1": [], "lib2": ["lib1"]}
//
// [Graph.NodeLink] converts to the node-link form used by exporters:
//
//	{
//	  "nodes": [{"id": "app"}, {"id": "lib1"}],
//	  "edges": [{"from": "app", "to": "lib1"}]
//	}
//
// # Concurrency
//
// A Graph is not safe for concurrent writes. Once built it is only read.
package graph
