// Package httputil provides the HTTP plumbing used to download repository
// indexes.
//
// # Overview
//
//   - [Client]: GET requests with a bounded timeout and status classification
//   - [Retry]: automatic retry with exponential backoff for transient failures
//
// Network errors and 5xx responses are wrapped in [RetryableError] so that
// [Retry] attempts them again; a 404 maps to [ErrNotFound] and is returned
// immediately.
//
//	c := httputil.NewClient(30*time.Second, nil)
//	body, err := c.Download(ctx, "https://dl-cdn.alpinelinux.org/alpine/v3.20/main/x86_64/APKINDEX.tar.gz")
//
// Nothing is cached between invocations: every call goes to the network.
package httputil
