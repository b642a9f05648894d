package api

import (
	"context"

	"github.com/gdai/zerocode/client/internal/types"
)

// UserLogin opens a session; the backend answers with a session cookie.
func UserLogin(ctx context.Context, tr types.Transport, req types.UserLoginRequest, opts ...CallOption) (*types.BaseResponseLoginUserVO, error) {
	return call[types.LoginUserVO](ctx, tr, OpUserLogin, nil, nil, req, opts)
}

// GetLoginUser returns the user bound to the current session.
func GetLoginUser(ctx context.Context, tr types.Transport, opts ...CallOption) (*types.BaseResponseLoginUserVO, error) {
	return call[types.LoginUserVO](ctx, tr, OpGetLoginUser, nil, nil, nil, opts)
}

// UserLogout ends the current session.
func UserLogout(ctx context.Context, tr types.Transport, opts ...CallOption) (*types.BaseResponseBoolean, error) {
	return call[bool](ctx, tr, OpUserLogout, nil, nil, nil, opts)
}
