package client

import (
	"context"
	"net/http"
	"testing"
)

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("ZEROCODE_DEBUG", "true")
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.debug {
		t.Fatalf("expected debug logging to be enabled when ZEROCODE_DEBUG=true")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	// base transport returns error
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	dt := &debugTransport{base: rt}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := dt.RoundTrip(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}
