package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gdai/zerocode/client/internal/api"
	"github.com/gdai/zerocode/client/internal/transport"
)

// Option configures a Client during construction in New.
//
// Options only record settings; the round-tripper chain is assembled after
// all options ran, so the order options are passed in does not matter.
type Option func(*Client) error

// WithHTTPClient uses hc for all requests. The client is copied, so hc itself
// is never modified; a cookie jar is added when hc has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout bounds every unary call made by the SDK.
//
// The timeout is applied through the call context rather than
// http.Client.Timeout, so code generation streams are not cut off; bound
// those with the caller's context or WithCallTimeout. The value must be
// greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDebugLogging dumps each request/response through zerolog when enabled
// is true.
//
// Do not enable this option in production environments: dumps include
// session cookies and request bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithTransport replaces the default resty transport. Everything below the
// dispatch layer, including the base URL, is then up to tr.
func WithTransport(tr Transport) Option {
	return func(c *Client) error {
		if tr == nil {
			return errors.New("transport cannot be nil")
		}
		c.tr = tr
		return nil
	}
}

// WithRetry retries recoverable faults of idempotent requests (GET, PUT,
// DELETE). Without it every request is sent exactly once.
func WithRetry(p RetryPolicy) Option {
	return func(c *Client) error {
		if p.MaxAttempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		c.retry = p
		return nil
	}
}

// WithBearerToken adds an Authorization header to every request, for
// deployments that front the backend with a token gateway.
func WithBearerToken(token string) Option {
	return func(c *Client) error {
		if token == "" {
			return errors.New("bearer token cannot be empty")
		}
		c.bearer = token
		return nil
	}
}

// WithCompression advertises zstd, br and gzip and decodes compressed
// responses.
func WithCompression(enabled bool) Option {
	return func(c *Client) error {
		c.compression = enabled
		return nil
	}
}

// --------------------------------------------------------------------
// Per-call options
// --------------------------------------------------------------------

// CallOption overrides request shaping for a single call.
type CallOption = api.CallOption

// RetryPolicy bounds retries of idempotent requests.
type RetryPolicy = transport.RetryPolicy

// DefaultRetryPolicy returns three attempts with exponential backoff.
func DefaultRetryPolicy() RetryPolicy { return transport.DefaultRetryPolicy() }

// WithHeader sets a request header for one call, replacing any header of the
// same name the SDK would send.
func WithHeader(key, value string) CallOption { return api.WithHeader(key, value) }

// WithCallTimeout bounds one call, overriding the client-wide timeout.
func WithCallTimeout(d time.Duration) CallOption { return api.WithTimeout(d) }
