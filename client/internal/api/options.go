package api

import (
	"context"
	"net/http"
	"time"
)

// CallOptions are the per-call overrides a caller may layer on top of what the
// dispatch layer builds. Cancellation is carried by the call's context.
type CallOptions struct {
	// Header entries replace dispatch-set headers of the same key; other
	// dispatch headers are kept.
	Header http.Header
	// Timeout bounds the whole call when greater than zero.
	Timeout time.Duration
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithHeader sets one request header for a single call.
func WithHeader(key, value string) CallOption {
	return func(o *CallOptions) {
		if o.Header == nil {
			o.Header = http.Header{}
		}
		o.Header.Set(key, value)
	}
}

// WithTimeout bounds a single call.
func WithTimeout(d time.Duration) CallOption {
	return func(o *CallOptions) { o.Timeout = d }
}

func collect(opts []CallOption) CallOptions {
	var o CallOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// mergeHeader applies caller headers over base, key by key.
func mergeHeader(base, override http.Header) http.Header {
	out := base.Clone()
	if out == nil {
		out = http.Header{}
	}
	for k, vs := range override {
		out[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return out
}

// withTimeout derives the call context. The returned cancel is never nil.
func (o CallOptions) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.Timeout > 0 {
		return context.WithTimeout(ctx, o.Timeout)
	}
	return ctx, func() {}
}
