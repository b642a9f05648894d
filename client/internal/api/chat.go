package api

import (
	"context"

	"github.com/gdai/zerocode/client/internal/types"
)

// ChatToGenCode sends one chat turn for an application and returns the
// generated code as a stream of server-sent event fragments. The stream is
// not buffered; the caller must drain or Close it.
func ChatToGenCode(ctx context.Context, tr types.Transport, params types.ChatToGenCodeParams, opts ...CallOption) (*EventStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query, err := EncodeQuery(params)
	if err != nil {
		return nil, err
	}
	o := collect(opts)
	req, err := Build(OpChatToGenCode, nil, query, nil, o)
	if err != nil {
		return nil, err
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/event-stream")
	}

	ctx, cancel := o.withTimeout(ctx)
	body, err := tr.Stream(ctx, req)
	if err != nil {
		cancel()
		return nil, err
	}
	return newEventStream(body, cancel), nil
}
