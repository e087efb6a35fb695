// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/apkgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/apkgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/apkgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/apkgraph
//
// Unstamped builds fall back to the module version recorded by the Go
// toolchain, so "go install ...@v0.3.0" still reports v0.3.0.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, or the main module version when Version was
// not stamped.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// String returns the multi-line build description printed by "apkgraph version".
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s %s/%s",
		Resolved(), Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
