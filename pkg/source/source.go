package source

import (
	"context"
	"errors"
)

// Latest is the version selector that picks the newest record of a package.
const Latest = "latest"

var (
	// ErrNotFound is returned by Lookup when the package or version is absent.
	ErrNotFound = errors.New("package not found")

	// ErrSourceUnavailable is returned when the underlying index cannot be
	// obtained (network failure, unreadable archive, malformed text).
	ErrSourceUnavailable = errors.New("source unavailable")
)

// Source resolves direct dependencies of packages.
type Source interface {
	// Lookup returns the ordered direct dependency names of name at the given
	// version selector ("latest" or an exact version).
	Lookup(ctx context.Context, name, version string) ([]string, error)

	// Packages returns every package name known to the source, sorted.
	Packages() []string
}
