// Package transport is the default HTTP implementation of types.Transport.
// It owns everything the dispatch layer deliberately ignores: the base URL,
// status classification, retries, metrics and response decoding.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	cerrors "github.com/gdai/zerocode/client/internal/errors"
	"github.com/gdai/zerocode/client/internal/types"
)

const userAgent = "zerocode-go-client"

// Config configures an HTTP transport.
type Config struct {
	// BaseURL is prefixed verbatim to every operation path.
	BaseURL string
	// HTTPClient carries the round-tripper chain. Its Timeout should be zero
	// so long-lived streams are not cut; unary deadlines come from contexts.
	HTTPClient *http.Client
	Retry      RetryPolicy
	Logger     zerolog.Logger
}

// HTTP sends dispatch requests with resty.
type HTTP struct {
	rc    *resty.Client
	retry RetryPolicy
	log   zerolog.Logger
}

var _ types.Transport = (*HTTP)(nil)

// New builds a transport from cfg.
func New(cfg Config) *HTTP {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", userAgent).
		SetLogger(logAdapter{l: cfg.Logger})
	return &HTTP{rc: rc, retry: cfg.Retry.normalize(), log: cfg.Logger}
}

// BaseURL returns the prefix every request path is appended to.
func (t *HTTP) BaseURL() string { return t.rc.BaseURL }

// Do performs a unary request and decodes the 2xx body into req.Result.
func (t *HTTP) Do(ctx context.Context, req *types.Request) error {
	var body []byte
	attempt := func() error {
		resp, err := t.execute(ctx, req, false)
		if err != nil {
			return err
		}
		body = resp.Body()
		return nil
	}
	if err := t.withRetry(ctx, req, attempt); err != nil {
		return err
	}
	if req.Result == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, req.Result); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.Operation, err)
	}
	return nil
}

// Stream performs a request and hands back the raw response body unread.
// Streams are never retried.
func (t *HTTP) Stream(ctx context.Context, req *types.Request) (io.ReadCloser, error) {
	resp, err := t.execute(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return resp.RawBody(), nil
}

func (t *HTTP) execute(ctx context.Context, req *types.Request, stream bool) (*resty.Response, error) {
	start := time.Now()
	r := t.rc.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header).
		SetQueryParamsFromValues(req.Query).
		SetDoNotParseResponse(stream)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			observe(req.Operation, codeCanceled, start)
			return nil, ctxErr
		}
		observe(req.Operation, codeNetwork, start)
		return nil, cerrors.NewNetworkError(req.Operation, err)
	}

	status := resp.StatusCode()
	observe(req.Operation, statusLabel(status), start)
	if status < 200 || status >= 300 {
		var payload string
		if stream {
			raw := resp.RawBody()
			b, _ := io.ReadAll(io.LimitReader(raw, maxErrorBody))
			_ = raw.Close()
			payload = string(b)
		} else {
			payload = string(resp.Body())
		}
		t.log.Debug().Str("operation", req.Operation).Int("status", status).Msg("non-2xx response")
		return nil, cerrors.NewHTTPError(req.Operation, status, payload)
	}
	return resp, nil
}

// maxErrorBody bounds how much of a failed stream is read for diagnostics.
const maxErrorBody = 4096

// withRetry runs attempt once, or under the retry policy for idempotent
// methods. Irrecoverable errors and cancellation stop immediately.
func (t *HTTP) withRetry(ctx context.Context, req *types.Request, attempt func() error) error {
	if !t.retry.enabled() || !idempotent(req.Method) {
		return attempt()
	}

	exp := t.retry.backOff()

	var err error
	for attempts := 0; ; attempts++ {
		err = attempt()
		if err == nil {
			return nil
		}
		if cerrors.IsIrrecoverable(err) || ctx.Err() != nil {
			return err
		}
		if attempts >= t.retry.MaxAttempts-1 {
			return err
		}
		wait := exp.NextBackOff()
		if wait == backoff.Stop {
			return err
		}
		t.log.Debug().Err(err).Str("operation", req.Operation).Dur("wait", wait).Int("attempt", attempts+1).Msg("retrying request")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
