// Package source implements the Dependency Source consumed by the graph
// builder: given a package name and a version selector, return the direct
// dependency names.
//
// # Sources
//
//   - [IndexSource]: backed by parsed APKINDEX records (see [apkindex]),
//     loaded from a mirror URL, a local directory, a .tar.gz archive or a
//     plain text index with [Load]
//   - [NewFixture]: an in-memory source for tests and examples
//   - TOML fixture files loaded with [LoadFixture] (the CLI's --test-mode)
//
// # Errors
//
// Lookups fail with [ErrNotFound] when a package or version is absent.
// [Load] fails with [ErrSourceUnavailable] when the index cannot be fetched
// or parsed. Both are sentinels matched with errors.Is.
//
// An [IndexSource] is immutable after construction and safe for concurrent
// lookups.
package source
