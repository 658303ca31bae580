// Package httpx provides the shared outbound HTTP client: per-host
// rate limiting, bounded retry with exponential backoff, and the
// mandatory User-Agent header on every request.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fast10k/fast10k-cli/internal/logger"
)

const (
	// MaxAttempts is the total number of tries per request.
	MaxAttempts = 3

	// InitialBackoff is the delay before the first retry.
	InitialBackoff = 500 * time.Millisecond

	// MaxBackoff caps the exponential backoff.
	MaxBackoff = 4 * time.Second
)

// Client is the process-wide HTTP client. All outbound traffic passes
// through it so the polite-crawler contract holds globally.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates the shared client. userAgent must be non-empty; config
// validation guarantees this before any client is constructed.
func New(userAgent string, timeout time.Duration, limiter *Limiter, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		limiter:   limiter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a rate-limited GET with retry. The caller owns the
// response body.
func (c *Client) Get(ctx context.Context, bucket, url string, header map[string]string) (*http.Response, error) {
	var lastErr error

	backoff := InitialBackoff
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > MaxBackoff {
				backoff = MaxBackoff
			}
		}

		if err := c.limiter.Wait(ctx, bucket); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		resp, err := c.do(ctx, url, header)
		if err != nil {
			// Transport errors are retriable unless the context ended.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			logger.Debug("GET %s attempt %d/%d failed: %v", url, attempt, MaxAttempts, err)
			continue
		}

		if resp.StatusCode < 400 {
			return resp, nil
		}

		status := resp.StatusCode
		resp.Body.Close()
		lastErr = &StatusError{Status: status, URL: url}
		if !retriable(status) {
			return nil, lastErr
		}
		logger.Debug("GET %s attempt %d/%d: HTTP %d", url, attempt, MaxAttempts, status)
	}

	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}

func (c *Client) do(ctx context.Context, url string, header map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create GET request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	return c.http.Do(req)
}

// retriable reports whether a status code warrants another attempt.
// Authentication failures and ordinary 4xx responses do not.
func retriable(status int) bool {
	switch status {
	case http.StatusRequestTimeout, // 408
		http.StatusTooEarly,            // 425
		http.StatusTooManyRequests,     // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	}
	return false
}

// Fetch streams the payload at url into w, returning the byte count.
func (c *Client) Fetch(ctx context.Context, bucket, url string, header map[string]string, w io.Writer) (int64, error) {
	resp, err := c.Get(ctx, bucket, url, header)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read body from GET %s: %w", url, err)
	}
	return n, nil
}

// ReadAll fetches the payload at url into memory.
func (c *Client) ReadAll(ctx context.Context, bucket, url string, header map[string]string) ([]byte, error) {
	resp, err := c.Get(ctx, bucket, url, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body from GET %s: %w", url, err)
	}
	return body, nil
}
