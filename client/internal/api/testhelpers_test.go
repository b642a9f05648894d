package api

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/gdai/zerocode/client/internal/types"
)

// fakeTransport records every request and answers with a canned envelope.
type fakeTransport struct {
	mu     sync.Mutex
	reqs   []*types.Request
	reply  string
	err    error
	stream io.ReadCloser
	ctx    context.Context
}

func (f *fakeTransport) Do(ctx context.Context, req *types.Request) error {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.ctx = ctx
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.reply == "" || req.Result == nil {
		return nil
	}
	return json.Unmarshal([]byte(f.reply), req.Result)
}

func (f *fakeTransport) Stream(ctx context.Context, req *types.Request) (io.ReadCloser, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.ctx = ctx
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func (f *fakeTransport) last() *types.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		return nil
	}
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

// blockingTransport waits for the call context to end.
type blockingTransport struct{}

func (blockingTransport) Do(ctx context.Context, _ *types.Request) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingTransport) Stream(ctx context.Context, _ *types.Request) (io.ReadCloser, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// trackingBody is a stream body that reports whether it was closed.
type trackingBody struct {
	io.Reader
	mu     sync.Mutex
	closed bool
}

func (b *trackingBody) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	if c, ok := b.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (b *trackingBody) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func intPtr(v int) *int { return &v }
