// Package api fetches feedback records from the feedback JSON endpoint.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/feedback"
	"github.com/Aman-CERP/feedlens/pkg/version"
)

const (
	// DefaultTimeout bounds a single request, retries excluded.
	DefaultTimeout = time.Second

	// DefaultRetries is the number of retries after a retryable failure.
	DefaultRetries = 2

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 16 << 20
)

// Source is anything that can serve feedback lists and records.
type Source interface {
	List(ctx context.Context) ([]feedback.Feedback, error)
	Get(ctx context.Context, id string) (feedback.Detailed, error)
}

// Config configures a Client.
type Config struct {
	// Endpoint is the absolute http(s) URL of the feedback JSON.
	Endpoint string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Retries is the number of retries for retryable failures.
	// Negative means DefaultRetries.
	Retries int

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// HTTPClient overrides the HTTP client. Nil uses a pooled default.
	HTTPClient *http.Client
}

// Client talks to the feedback endpoint.
type Client struct {
	endpoint *url.URL
	timeout  time.Duration
	agent    string
	http     *http.Client
	retry    ferrors.RetryConfig
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ferrors.ConfigError(fmt.Sprintf("invalid endpoint %q", cfg.Endpoint), err).
			WithSuggestion("Set source.endpoint to an absolute http(s) URL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	retry := ferrors.DefaultRetryConfig()
	if cfg.Retries >= 0 {
		retry.MaxRetries = cfg.Retries
	}

	agent := cfg.UserAgent
	if agent == "" {
		agent = version.UserAgent()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No client-level Timeout: per-request contexts carry the deadline
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     10 * time.Second,
			},
		}
	}

	return &Client{
		endpoint: u,
		timeout:  timeout,
		agent:    agent,
		http:     httpClient,
		retry:    retry,
	}, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// List fetches every feedback item.
func (c *Client) List(ctx context.Context) ([]feedback.Feedback, error) {
	start := time.Now()
	items, err := ferrors.RetryWithResult(ctx, c.retry, func() ([]feedback.Feedback, error) {
		var items []feedback.Feedback
		err := c.fetch(ctx, c.endpoint.String(), func(body io.Reader) error {
			var derr error
			items, derr = feedback.DecodeList(body)
			return derr
		})
		return items, err
	})
	if err != nil {
		slog.Warn("list_failed", append([]any{"endpoint", c.endpoint.String()}, ferrors.LogAttrs(err)...)...)
		return nil, err
	}

	slog.Debug("list_complete",
		slog.Int("items", len(items)),
		slog.Duration("duration", time.Since(start)))
	return items, nil
}

// Get fetches the detailed record for id. The endpoint is asked with an
// ?id= query and the record is picked from the returned items.
func (c *Client) Get(ctx context.Context, id string) (feedback.Detailed, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("id", id)
	u.RawQuery = q.Encode()

	start := time.Now()
	d, err := ferrors.RetryWithResult(ctx, c.retry, func() (feedback.Detailed, error) {
		var d feedback.Detailed
		err := c.fetch(ctx, u.String(), func(body io.Reader) error {
			var derr error
			d, derr = feedback.DecodeDetailed(body, id)
			if errors.Is(derr, feedback.ErrNotFound) {
				return ferrors.NotFoundError(id, derr)
			}
			return derr
		})
		return d, err
	})
	if err != nil {
		slog.Warn("get_failed", append([]any{"id", id}, ferrors.LogAttrs(err)...)...)
		return feedback.Detailed{}, err
	}

	slog.Debug("get_complete",
		slog.String("id", id),
		slog.Duration("duration", time.Since(start)))
	return d, nil
}

// fetch performs one GET and hands the body to decode. Every failure comes
// back as a FeedError so the retry loop can tell transient from permanent.
func (c *Client) fetch(ctx context.Context, target string, decode func(io.Reader) error) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return ferrors.InternalError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return ferrors.StatusError(resp.StatusCode, target)
	}

	if err := decode(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		var fe *ferrors.FeedError
		if errors.As(err, &fe) {
			return fe
		}
		if reqCtx.Err() != nil {
			return c.transportError(ctx, reqCtx.Err())
		}
		e := ferrors.DecodeError("unexpected response body", err)
		var de *feedback.DecodeError
		if errors.As(err, &de) {
			e.Message = de.Error()
			e.WithDetail("path", de.Path)
		}
		return e
	}

	return nil
}

// transportError classifies a failed round trip. Cancellation by the caller
// is passed through untouched.
func (c *Client) transportError(parent context.Context, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ferrors.TimeoutError(fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds()), err)
	}

	return ferrors.NetworkError(fmt.Sprintf("request to %s failed", c.endpoint.Host), err)
}
