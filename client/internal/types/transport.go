package types

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Request is a fully shaped backend call: the dispatch layer fills it in and a
// Transport executes it. Path is relative to the transport's base URL with
// placeholders already substituted.
type Request struct {
	Operation string
	Method    string
	Path      string
	Header    http.Header
	Query     url.Values
	Body      []byte // serialized JSON; nil for reads
	Result    any    // decode target for unary calls
}

// Transport executes dispatched requests. Implementations own retries, status
// handling and decoding; the dispatch layer returns whatever they produce.
type Transport interface {
	// Do performs a unary call and decodes the response body into req.Result.
	Do(ctx context.Context, req *Request) error
	// Stream performs a call and hands back the raw, unread response body.
	Stream(ctx context.Context, req *Request) (io.ReadCloser, error)
}
