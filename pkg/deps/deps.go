package deps

import (
	"context"

	"github.com/matzehuels/apkgraph/pkg/source"
)

// Source is the capability the builder consumes: direct dependencies of a
// package at a version selector, and the universe of known names.
// [source.IndexSource] implements it.
type Source = source.Source

// Options configures graph construction.
type Options struct {
	// Logger receives one line per swallowed lookup failure (optional).
	Logger func(string, ...any)
	// OnFailure is called for each swallowed lookup failure (optional).
	OnFailure func(name string, err error)
}

// WithDefaults returns a copy of Options with nil callbacks replaced by no-ops.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnFailure == nil {
		opts.OnFailure = func(string, error) {}
	}
	return opts
}

// lookupFunc adapts a Source for the traversal; tests substitute their own.
type lookupFunc func(ctx context.Context, name, version string) ([]string, error)
