// Package cloudflare implements the v4 REST client used for all DNS
// operations. It is deliberately small and hand-rolled: the retry,
// backoff and rate-limit behavior is part of this tool's contract, so
// the transport must stay fully controllable.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/retry"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.cloudflare.com/client/v4"

	defaultAttempts       = 3
	defaultHTTPTimeout    = 30 * time.Second
	defaultTransientDelay = 2 * time.Second  // scaled by attempt number
	defaultRateLimitDelay = 10 * time.Second // scaled by attempt number
)

// Client is an authenticated Cloudflare API client. All methods retry
// transient failures internally and return either decoded results or an
// error, never raw bytes.
type Client struct {
	baseURL        string
	token          string
	hc             *http.Client
	attempts       int
	transientDelay time.Duration
	rateLimitDelay time.Duration
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithMaxAttempts bounds the per-call retry loop.
func WithMaxAttempts(n int) Option {
	return func(c *Client) { c.attempts = n }
}

// WithRetryDelays sets the per-attempt delay units for transient and
// rate-limited failures.
func WithRetryDelays(transient, rateLimit time.Duration) Option {
	return func(c *Client) {
		c.transientDelay = transient
		c.rateLimitDelay = rateLimit
	}
}

// New creates a Client for the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		token:          token,
		hc:             &http.Client{Timeout: defaultHTTPTimeout},
		attempts:       defaultAttempts,
		transientDelay: defaultTransientDelay,
		rateLimitDelay: defaultRateLimitDelay,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// delay picks the wait before the next attempt: rate-limited calls back
// off much longer than ordinary transient failures, both scaled by the
// attempt number.
func (c *Client) delay(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return time.Duration(attempt) * c.rateLimitDelay
	}
	return time.Duration(attempt) * c.transientDelay
}

// do performs one logical API call with retries. Transport errors,
// malformed JSON, unsuccessful envelopes and rate limiting are all
// retried; intermediate failures go to the log stream only, so the
// return value carries either a clean decoded envelope or the final
// error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, *resultInfo, error) {
	logger := logging.FromContext(ctx)
	var raw json.RawMessage
	var info *resultInfo
	err := retry.Do(ctx, c.attempts, c.delay, func(attempt int) error {
		r, ri, err := c.once(ctx, method, path, query, body)
		if err != nil {
			logger.Warn(ctx, "cloudflare api call failed",
				"method", method, "path", path,
				"attempt", attempt, "max_attempts", c.attempts, "error", err)
			return err
		}
		raw, info = r, ri
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cloudflare %s %s failed after %d attempts: %w", method, path, c.attempts, err)
	}
	return raw, info, nil
}

// once performs a single HTTP round trip and envelope decode.
func (c *Client) once(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, *resultInfo, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil, &RateLimitError{}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return nil, nil, &env.Errors[0]
		}
		return nil, nil, fmt.Errorf("unsuccessful response (status %d)", resp.StatusCode)
	}
	return env.Result, env.ResultInfo, nil
}

// get decodes a successful GET into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	raw, _, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", path, err)
	}
	return nil
}

// getPaged walks a paginated collection endpoint, invoking page for
// each result array until result_info reports the last page.
func (c *Client) getPaged(ctx context.Context, path string, query url.Values, perPage int, page func(raw json.RawMessage) error) error {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("per_page", fmt.Sprint(perPage))
	for p := 1; ; p++ {
		q.Set("page", fmt.Sprint(p))
		raw, info, err := c.do(ctx, http.MethodGet, path, q, nil)
		if err != nil {
			return err
		}
		if err := page(raw); err != nil {
			return err
		}
		if info == nil || info.TotalPages <= p {
			return nil
		}
	}
}
