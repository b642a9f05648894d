package api

import (
	"context"
	"net/url"

	"github.com/gdai/zerocode/client/internal/types"
)

// AdminDeleteApp deletes any application.
func AdminDeleteApp(ctx context.Context, tr types.Transport, req types.DeleteRequest, opts ...CallOption) (*types.BaseResponseBoolean, error) {
	return call[bool](ctx, tr, OpAdminDeleteApp, nil, nil, req, opts)
}

// AdminUpdateApp updates name, cover or priority of any application.
func AdminUpdateApp(ctx context.Context, tr types.Transport, req types.AppAdminUpdateRequest, opts ...CallOption) (*types.BaseResponseBoolean, error) {
	return call[bool](ctx, tr, OpAdminUpdateApp, nil, nil, req, opts)
}

// AdminGetAppByID fetches the full record of any application. The id goes in
// the path; params.Extra is forwarded as query parameters minus any "id" key.
func AdminGetAppByID(ctx context.Context, tr types.Transport, params types.AdminGetAppByIDParams, opts ...CallOption) (*types.BaseResponseApp, error) {
	query := url.Values{}
	for k, vs := range params.Extra {
		query[k] = append([]string(nil), vs...)
	}
	vars := map[string]string{"id": params.ID.String()}
	return call[types.App](ctx, tr, OpAdminGetAppByID, vars, query, nil, opts)
}

// AdminListAppByPage pages through all applications.
func AdminListAppByPage(ctx context.Context, tr types.Transport, params types.AdminListAppByPageParams, opts ...CallOption) (*types.BaseResponsePageAppVO, error) {
	query, err := pageQuery(OpAdminListAppByPage, params, params.AppAdminQueryRequest)
	if err != nil {
		return nil, err
	}
	return call[types.Page[types.AppVO]](ctx, tr, OpAdminListAppByPage, nil, query, nil, opts)
}
