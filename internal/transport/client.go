// Package transport implements the shared HTTP request executor used for
// every outbound call to the API backend.
//
// The client retries transport-level failures (connection refused, DNS) a
// fixed number of times with a fixed delay between attempts, re-sending the
// same request each time. A response with a non-success status is a
// definitive server rejection and is never retried. The failure taxonomy at
// this layer is exactly two kinds: APIError (server reached, rejected) and
// NetworkError (server unreachable after the retry budget). Anything else is
// a programming defect and is returned unwrapped.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the local backend address used when no
	// configuration overrides it.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultMaxRetries is the default retry budget for transport failures.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed wait between attempts. No backoff,
	// no jitter.
	DefaultRetryDelay = 1000 * time.Millisecond
)

// RetryPolicy bounds how persistently a client retries transport failures.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// Config holds the construction parameters for a Client.
type Config struct {
	BaseURL string
	Policy  RetryPolicy
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Policy: RetryPolicy{
			MaxRetries: DefaultMaxRetries,
			Delay:      DefaultRetryDelay,
		},
	}
}

// Options adjusts a single request.
type Options struct {
	// Retries overrides the client's retry budget for this request.
	// nil means "use the client policy". Health checks cap this at 1 so
	// probes cannot cascade delay.
	Retries *int
}

// RetryCount is a convenience for building Options literals.
func RetryCount(n int) *int { return &n }

// Client executes HTTP requests against a single base URL. Construct one per
// process and share it; it is safe for concurrent use.
type Client struct {
	base       *url.URL
	policy     RetryPolicy
	httpClient *http.Client
}

// New creates a Client from cfg, falling back to defaults for zero values.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Policy.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid retry budget %d", cfg.Policy.MaxRetries)
	}
	if cfg.Policy.Delay < 0 {
		return nil, fmt.Errorf("invalid retry delay %s", cfg.Policy.Delay)
	}
	if cfg.Policy.Delay == 0 {
		cfg.Policy.Delay = DefaultRetryDelay
	}
	return &Client{
		base:       base,
		policy:     cfg.Policy,
		httpClient: &http.Client{},
	}, nil
}

// WithHTTPClient swaps the underlying http.Client. Used by tests to inject
// a failing round tripper.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Request executes method against path resolved on the client's base URL.
// body may be nil, JSON(v), or a Form. On a 2xx response the JSON body is
// decoded into out (out may be nil when the body is irrelevant).
func (c *Client) Request(ctx context.Context, method, path string, body Body, opts Options, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid endpoint path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref).String()

	var payload []byte
	var contentType string
	if body != nil {
		payload, contentType, err = body.encode()
		if err != nil {
			return err
		}
	}

	retries := c.policy.MaxRetries
	if opts.Retries != nil {
		retries = *opts.Retries
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, target, requestBody(payload))
		if err != nil {
			return fmt.Errorf("could not build request: %w", err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return c.handleResponse(resp, out)
		}
		lastErr = err

		if attempt >= retries {
			break
		}
		if err := wait(ctx, c.policy.Delay); err != nil {
			lastErr = err
			break
		}
	}

	return &NetworkError{Err: lastErr}
}

// handleResponse decodes a success body into out or converts a non-success
// status into an APIError. Server rejections are never retried.
func (c *Client) handleResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func requestBody(payload []byte) io.Reader {
	if payload == nil {
		return nil
	}
	return bytes.NewReader(payload)
}

// wait sleeps for the fixed retry delay, honoring context cancellation.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
