package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gdai/zerocode/client/internal/types"
)

// Build shapes the Request for op. vars fill path placeholders (and are
// removed from query); body is serialized only for PayloadBody operations.
func Build(op Operation, vars map[string]string, query url.Values, body any, o CallOptions) (*types.Request, error) {
	header := http.Header{}
	var payload []byte
	if op.Payload == PayloadBody {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal body: %w", op.Name, err)
		}
		payload = b
		header.Set("Content-Type", "application/json")
	}
	if query == nil {
		query = url.Values{}
	}
	path := op.ExpandPath(vars, query)
	return &types.Request{
		Operation: op.Name,
		Method:    op.Method,
		Path:      path,
		Header:    mergeHeader(header, o.Header),
		Query:     query,
		Body:      payload,
	}, nil
}

// call runs a unary operation and returns the decoded envelope untouched.
func call[T any](ctx context.Context, tr types.Transport, op Operation, vars map[string]string, query url.Values, body any, opts []CallOption) (*types.BaseResponse[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := collect(opts)
	req, err := Build(op, vars, query, body, o)
	if err != nil {
		return nil, err
	}
	var out types.BaseResponse[T]
	req.Result = &out

	ctx, cancel := o.withTimeout(ctx)
	defer cancel()
	if err := tr.Do(ctx, req); err != nil {
		return nil, err
	}
	return &out, nil
}

// pageQuery encodes a paged listing's top-level fields and its nested query
// object, then flattens them under op's container key.
func pageQuery(op Operation, top, nested any) (url.Values, error) {
	t, err := EncodeQuery(top)
	if err != nil {
		return nil, err
	}
	n, err := EncodeQuery(nested)
	if err != nil {
		return nil, err
	}
	return FlattenQuery(t, n, op.Nested), nil
}
