package source

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/apkgraph/pkg/apkindex"
)

// IndexSource answers lookups from a set of APKINDEX records.
//
// Several records may share a name (one per version); the "latest" selector
// picks the highest by [apkindex.CompareVersions]. Names that no record
// declares with P: are resolved through the p: provides lists, so tokens
// such as "so:libc.musl-x86_64.so.1" or "cmd:sh" find their provider.
type IndexSource struct {
	byName    map[string][]apkindex.Package
	providers map[string][]string
	names     []string
}

// NewIndexSource indexes pkgs. The slice is not retained.
func NewIndexSource(pkgs []apkindex.Package) *IndexSource {
	s := &IndexSource{
		byName:    make(map[string][]apkindex.Package),
		providers: make(map[string][]string),
	}
	for _, p := range pkgs {
		if _, ok := s.byName[p.Name]; !ok {
			s.names = append(s.names, p.Name)
		}
		s.byName[p.Name] = append(s.byName[p.Name], p)
		for _, prov := range p.Provides {
			if !slices.Contains(s.providers[prov], p.Name) {
				s.providers[prov] = append(s.providers[prov], p.Name)
			}
		}
	}
	slices.Sort(s.names)
	return s
}

// NewFixture builds an in-memory source from name -> dependency tokens.
// Every package gets version "0"; tokens are stripped of version constraints.
func NewFixture(records map[string][]string) *IndexSource {
	pkgs := make([]apkindex.Package, 0, len(records))
	for name, deps := range records {
		p := apkindex.Package{Name: name, Version: "0"}
		for _, d := range deps {
			if n := apkindex.StripConstraint(d); n != "" {
				p.Depends = append(p.Depends, n)
			}
		}
		pkgs = append(pkgs, p)
	}
	slices.SortFunc(pkgs, func(a, b apkindex.Package) int { return cmp.Compare(a.Name, b.Name) })
	return NewIndexSource(pkgs)
}

// Lookup returns the direct dependencies of name at version.
func (s *IndexSource) Lookup(ctx context.Context, name, version string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.Package(name, version)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.Depends), nil
}

// Package returns the record selected for name and version.
func (s *IndexSource) Package(name, version string) (*apkindex.Package, error) {
	if version == "" {
		version = Latest
	}
	if candidates, ok := s.byName[name]; ok {
		return pick(name, version, candidates)
	}

	// Provided names carry no version of their own; the provider's newest
	// record is used whatever the selector.
	for _, provider := range s.providers[name] {
		if p, err := pick(provider, Latest, s.byName[provider]); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Packages returns all declared package names, sorted.
func (s *IndexSource) Packages() []string {
	return slices.Clone(s.names)
}

// Len returns the number of distinct package names.
func (s *IndexSource) Len() int { return len(s.names) }

// Versions returns every version recorded for name, oldest first.
func (s *IndexSource) Versions(name string) []string {
	var out []string
	for _, p := range s.byName[name] {
		out = append(out, p.Version)
	}
	slices.SortStableFunc(out, apkindex.CompareVersions)
	return out
}

func pick(name, version string, candidates []apkindex.Package) (*apkindex.Package, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if version == Latest {
		best := 0
		for i := 1; i < len(candidates); i++ {
			if apkindex.CompareVersions(candidates[i].Version, candidates[best].Version) > 0 {
				best = i
			}
		}
		return &candidates[best], nil
	}
	for i := range candidates {
		if candidates[i].Version == version {
			return &candidates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s version %s", ErrNotFound, name, version)
}
