package api

import (
	"context"

	"github.com/gdai/zerocode/client/internal/types"
)

// AddApp creates an application and returns its id.
func AddApp(ctx context.Context, tr types.Transport, req types.AppAddRequest, opts ...CallOption) (*types.BaseResponseLong, error) {
	return call[types.Long](ctx, tr, OpAddApp, nil, nil, req, opts)
}

// UpdateApp renames one of the caller's applications.
func UpdateApp(ctx context.Context, tr types.Transport, req types.AppUpdateRequest, opts ...CallOption) (*types.BaseResponseBoolean, error) {
	return call[bool](ctx, tr, OpUpdateApp, nil, nil, req, opts)
}

// DeleteApp deletes one of the caller's applications.
func DeleteApp(ctx context.Context, tr types.Transport, req types.DeleteRequest, opts ...CallOption) (*types.BaseResponseBoolean, error) {
	return call[bool](ctx, tr, OpDeleteApp, nil, nil, req, opts)
}

// DeployApp publishes the generated code and returns the public URL.
func DeployApp(ctx context.Context, tr types.Transport, req types.AppDeployRequest, opts ...CallOption) (*types.BaseResponseString, error) {
	return call[string](ctx, tr, OpDeployApp, nil, nil, req, opts)
}

// GetAppVOByID fetches the application bound to the current session.
func GetAppVOByID(ctx context.Context, tr types.Transport, opts ...CallOption) (*types.BaseResponseAppVO, error) {
	return call[types.AppVO](ctx, tr, OpGetAppVOByID, nil, nil, nil, opts)
}

// ListMyAppVOByPage pages through the caller's own applications.
func ListMyAppVOByPage(ctx context.Context, tr types.Transport, params types.ListAppVOByPageParams, opts ...CallOption) (*types.BaseResponsePageAppVO, error) {
	query, err := pageQuery(OpListMyAppVOByPage, params, params.AppQueryRequest)
	if err != nil {
		return nil, err
	}
	return call[types.Page[types.AppVO]](ctx, tr, OpListMyAppVOByPage, nil, query, nil, opts)
}

// ListFeaturedAppVOByPage pages through the featured applications.
func ListFeaturedAppVOByPage(ctx context.Context, tr types.Transport, params types.ListAppVOByPageParams, opts ...CallOption) (*types.BaseResponsePageAppVO, error) {
	query, err := pageQuery(OpListFeaturedAppVOByPage, params, params.AppQueryRequest)
	if err != nil {
		return nil, err
	}
	return call[types.Page[types.AppVO]](ctx, tr, OpListFeaturedAppVOByPage, nil, query, nil, opts)
}
