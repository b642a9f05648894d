package api

import (
	"context"

	"github.com/gdai/zerocode/client/internal/types"
)

// TestOK probes the backend health endpoint.
func TestOK(ctx context.Context, tr types.Transport, params types.HealthParams, opts ...CallOption) (*types.BaseResponseString, error) {
	query, err := EncodeQuery(params)
	if err != nil {
		return nil, err
	}
	return call[string](ctx, tr, OpTestOK, nil, query, nil, opts)
}
