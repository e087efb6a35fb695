// Package apkindex parses Alpine-style APKINDEX text files.
//
// # Format
//
// An index is a sequence of records separated by blank lines. Each line of a
// record is a single-letter key, a colon, and a value:
//
//	C:Q1abc...=
//	P:busybox
//	V:1.36.1-r29
//	A:x86_64
//	D:so:libc.musl-x86_64.so.1 musl>=1.2
//	p:cmd:busybox=1.36.1-r29 /bin/sh
//
// Only a handful of keys matter for dependency analysis:
//
//   - P: package name
//   - V: package version
//   - D: space-separated dependency tokens, each optionally carrying a
//     version constraint ("musl>=1.2") that [StripConstraint] removes
//   - p: space-separated provides tokens (shared objects, commands, virtuals)
//
// Tokens in D: starting with '!' declare conflicts rather than dependencies
// and are dropped.
//
// # Versions
//
// [CompareVersions] orders version strings the way apk does, so a "latest"
// selector can pick the newest of several records for the same package.
package apkindex
