package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single index download.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response is read into memory.
// The largest upstream indexes are a few MiB compressed.
const maxBodySize = 256 << 20

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, bad status).
	ErrNetwork = errors.New("network error")

	// ErrTooLarge is returned when a response body exceeds the size cap.
	ErrTooLarge = errors.New("response too large")
)

// Client downloads whole resources over HTTP with retries.
type Client struct {
	http    *http.Client
	headers map[string]string
	policy  Policy
	maxBody int64
}

// NewClient creates a Client whose requests time out after timeout
// (DefaultTimeout if zero). Headers are applied to every request.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		headers: headers,
		policy:  DefaultPolicy,
		maxBody: maxBodySize,
	}
}

// WithPolicy returns a copy of c that retries according to p.
func (c *Client) WithPolicy(p Policy) *Client {
	cp := *c
	cp.policy = p
	return &cp
}

// Download fetches url and returns the full response body. Transient
// failures are retried per the client's policy.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := Retry(ctx, c.policy, func() error {
		var err error
		data, err = c.get(ctx, url)
		return err
	})
	return data, err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, c.maxBody)
	}
	return body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
