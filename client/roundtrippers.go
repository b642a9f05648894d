package client

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader correlates client logs with backend access logs.
const requestIDHeader = "X-Request-ID"

// requestIDTransport stamps each request with a fresh id unless the caller
// already set one.
type requestIDTransport struct{ base http.RoundTripper }

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) != "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set(requestIDHeader, uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// bearerTransport adds the Authorization header to all requests.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}
