package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gdai/zerocode/client/internal/api"
	"github.com/gdai/zerocode/client/internal/transport"
	"github.com/gdai/zerocode/client/internal/types"
	"github.com/gdai/zerocode/config"
)

// ErrEmptyBaseURL is returned by New when no backend URL is given.
var ErrEmptyBaseURL = errors.New("baseURL cannot be empty")

const defaultTimeout = 30 * time.Second

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the zerocode backend SDK. It is safe for concurrent use; all
// configuration is fixed by New.
type Client struct {
	baseURL string
	http    *http.Client
	tr      types.Transport

	timeout     time.Duration // applied to unary calls only
	retry       transport.RetryPolicy
	debug       bool
	compression bool
	bearer      string

	closedOnce uint32
}

// New constructs a Client for the backend at baseURL (for example
// "http://localhost:8123/api"). Additional options can be provided via
// functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: defaultTimeout,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	c.wrapTransport()

	if c.tr == nil {
		c.tr = transport.New(transport.Config{
			BaseURL:    c.baseURL,
			HTTPClient: c.http,
			Retry:      c.retry,
			Logger:     log.Logger,
		})
	}
	return c, nil
}

// NewFromConfig constructs a Client from resolved configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	var base []Option
	if cfg.HTTPTimeout > 0 {
		base = append(base, WithHTTPTimeout(cfg.HTTPTimeout))
	}
	if cfg.Debug {
		base = append(base, WithDebugLogging(true))
	}
	return New(cfg.APIBaseURL, append(base, opts...)...)
}

// wrapTransport installs the round-tripper chain, outermost first:
// request id, bearer token, decompression, debug dump, base transport.
func (c *Client) wrapTransport() {
	rt := c.http.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if c.debug {
		rt = &debugTransport{base: rt}
	}
	if c.compression {
		rt = &decompressTransport{base: rt}
	}
	if c.bearer != "" {
		rt = &bearerTransport{base: rt, token: c.bearer}
	}
	c.http.Transport = &requestIDTransport{base: rt}
}

// BaseURL returns the backend prefix requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// unary prepends the client-wide timeout so per-call options can override it.
func (c *Client) unary(opts []CallOption) []api.CallOption {
	out := make([]api.CallOption, 0, len(opts)+1)
	if c.timeout > 0 {
		out = append(out, api.WithTimeout(c.timeout))
	}
	return append(out, opts...)
}

// --------------------------------------------------------------------
// App operations - delegated to internal/api
// --------------------------------------------------------------------

// AddApp creates an application from an initial prompt and returns its id.
func (c *Client) AddApp(ctx context.Context, req AppAddRequest, opts ...CallOption) (*BaseResponse[Long], error) {
	return api.AddApp(ctx, c.tr, req, c.unary(opts)...)
}

// UpdateApp renames one of the caller's applications.
func (c *Client) UpdateApp(ctx context.Context, req AppUpdateRequest, opts ...CallOption) (*BaseResponse[bool], error) {
	return api.UpdateApp(ctx, c.tr, req, c.unary(opts)...)
}

// DeleteApp deletes one of the caller's applications.
func (c *Client) DeleteApp(ctx context.Context, req DeleteRequest, opts ...CallOption) (*BaseResponse[bool], error) {
	return api.DeleteApp(ctx, c.tr, req, c.unary(opts)...)
}

// DeployApp deploys an application and returns its public URL.
func (c *Client) DeployApp(ctx context.Context, req AppDeployRequest, opts ...CallOption) (*BaseResponse[string], error) {
	return api.DeployApp(ctx, c.tr, req, c.unary(opts)...)
}

// GetAppVOByID fetches the application view the backend resolves from the
// current session; the endpoint takes no parameters.
func (c *Client) GetAppVOByID(ctx context.Context, opts ...CallOption) (*BaseResponse[AppVO], error) {
	return api.GetAppVOByID(ctx, c.tr, c.unary(opts)...)
}

// ListMyAppVOByPage pages through the caller's applications.
func (c *Client) ListMyAppVOByPage(ctx context.Context, params ListAppVOByPageParams, opts ...CallOption) (*BaseResponse[Page[AppVO]], error) {
	return api.ListMyAppVOByPage(ctx, c.tr, params, c.unary(opts)...)
}

// ListFeaturedAppVOByPage pages through the featured applications.
func (c *Client) ListFeaturedAppVOByPage(ctx context.Context, params ListAppVOByPageParams, opts ...CallOption) (*BaseResponse[Page[AppVO]], error) {
	return api.ListFeaturedAppVOByPage(ctx, c.tr, params, c.unary(opts)...)
}

// ChatToGenCode streams generated code for one chat turn. The client-wide
// timeout does not apply; bound the stream with ctx or WithCallTimeout.
func (c *Client) ChatToGenCode(ctx context.Context, params ChatToGenCodeParams, opts ...CallOption) (*EventStream, error) {
	return api.ChatToGenCode(ctx, c.tr, params, opts...)
}

// --------------------------------------------------------------------
// Admin operations
// --------------------------------------------------------------------

// AdminGetAppByID fetches the full record of any application.
func (c *Client) AdminGetAppByID(ctx context.Context, params AdminGetAppByIDParams, opts ...CallOption) (*BaseResponse[App], error) {
	return api.AdminGetAppByID(ctx, c.tr, params, c.unary(opts)...)
}

// AdminListAppByPage pages through all applications.
func (c *Client) AdminListAppByPage(ctx context.Context, params AdminListAppByPageParams, opts ...CallOption) (*BaseResponse[Page[AppVO]], error) {
	return api.AdminListAppByPage(ctx, c.tr, params, c.unary(opts)...)
}

// AdminUpdateApp updates any application.
func (c *Client) AdminUpdateApp(ctx context.Context, req AppAdminUpdateRequest, opts ...CallOption) (*BaseResponse[bool], error) {
	return api.AdminUpdateApp(ctx, c.tr, req, c.unary(opts)...)
}

// AdminDeleteApp deletes any application.
func (c *Client) AdminDeleteApp(ctx context.Context, req DeleteRequest, opts ...CallOption) (*BaseResponse[bool], error) {
	return api.AdminDeleteApp(ctx, c.tr, req, c.unary(opts)...)
}

// --------------------------------------------------------------------
// Session and health
// --------------------------------------------------------------------

// UserLogin opens a session. The session cookie is kept in the client's jar.
func (c *Client) UserLogin(ctx context.Context, req UserLoginRequest, opts ...CallOption) (*BaseResponse[LoginUserVO], error) {
	return api.UserLogin(ctx, c.tr, req, c.unary(opts)...)
}

// GetLoginUser returns the user of the current session.
func (c *Client) GetLoginUser(ctx context.Context, opts ...CallOption) (*BaseResponse[LoginUserVO], error) {
	return api.GetLoginUser(ctx, c.tr, c.unary(opts)...)
}

// UserLogout ends the current session.
func (c *Client) UserLogout(ctx context.Context, opts ...CallOption) (*BaseResponse[bool], error) {
	return api.UserLogout(ctx, c.tr, c.unary(opts)...)
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context, opts ...CallOption) (*BaseResponse[string], error) {
	return api.TestOK(ctx, c.tr, HealthParams{}, c.unary(opts)...)
}
