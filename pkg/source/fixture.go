package source

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/apkgraph/pkg/apkindex"
	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
)

// fixtureFile is the on-disk layout of a test repository:
//
//	[[package]]
//	name = "app"
//	version = "1.0"
//	depends = ["lib1", "lib2>=1.0"]
//	provides = ["cmd:app"]
type fixtureFile struct {
	Packages []fixturePackage `toml:"package"`
}

type fixturePackage struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Depends  []string `toml:"depends"`
	Provides []string `toml:"provides"`
}

// LoadFixture reads a TOML test repository. Dependency and provides tokens
// go through the same constraint stripping as index D: fields.
func LoadFixture(path string) (*IndexSource, error) {
	var f fixtureFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, unavailable(path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, unavailable(path, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}

	pkgs := make([]apkindex.Package, 0, len(f.Packages))
	for i, fp := range f.Packages {
		name, err := apperrors.ValidatePackageName(fp.Name)
		if err != nil {
			return nil, unavailable(path, fmt.Errorf("package #%d: %w", i+1, err))
		}
		version := fp.Version
		if version == "" {
			version = "0"
		}
		pkgs = append(pkgs, apkindex.Package{
			Name:     name,
			Version:  version,
			Depends:  apkindex.DependencyNames(strings.Join(fp.Depends, " ")),
			Provides: apkindex.DependencyNames(strings.Join(fp.Provides, " ")),
		})
	}
	return NewIndexSource(pkgs), nil
}
