package client

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdai/zerocode/client/internal/types"
	"github.com/gdai/zerocode/config"
)

// captureTransport records the deadline each call ran under.
type captureTransport struct {
	deadlines []bool
}

func (c *captureTransport) Do(ctx context.Context, req *types.Request) error {
	_, ok := ctx.Deadline()
	c.deadlines = append(c.deadlines, ok)
	return nil
}

func (c *captureTransport) Stream(ctx context.Context, req *types.Request) (io.ReadCloser, error) {
	_, ok := ctx.Deadline()
	c.deadlines = append(c.deadlines, ok)
	return io.NopCloser(strings.NewReader("")), nil
}

func TestNew_EmptyBaseURL(t *testing.T) {
	if _, err := New("  "); !errors.Is(err, ErrEmptyBaseURL) {
		t.Fatalf("expected ErrEmptyBaseURL, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestUnaryCallsGetClientTimeout_StreamsDoNot(t *testing.T) {
	tr := &captureTransport{}
	c, err := New("http://example.com", WithTransport(tr), WithHTTPTimeout(time.Minute))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	s, err := c.ChatToGenCode(context.Background(), ChatToGenCodeParams{AppID: 1, Message: "x"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	_ = s.Close()

	if len(tr.deadlines) != 2 || !tr.deadlines[0] || tr.deadlines[1] {
		t.Fatalf("unexpected deadlines %v", tr.deadlines)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://localhost:8123/api", HTTPTimeout: 5 * time.Second}
	c, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if c.BaseURL() != cfg.APIBaseURL || c.timeout != 5*time.Second {
		t.Fatalf("config not applied: %s %s", c.BaseURL(), c.timeout)
	}
	if _, err := NewFromConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
