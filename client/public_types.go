package client

import (
	"github.com/gdai/zerocode/client/internal/api"
	"github.com/gdai/zerocode/client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	AppAddRequest         = types.AppAddRequest
	AppUpdateRequest      = types.AppUpdateRequest
	AppAdminUpdateRequest = types.AppAdminUpdateRequest
	AppDeployRequest      = types.AppDeployRequest
	DeleteRequest         = types.DeleteRequest
	UserLoginRequest      = types.UserLoginRequest

	PageRequest              = types.PageRequest
	AppQueryRequest          = types.AppQueryRequest
	AppAdminQueryRequest     = types.AppAdminQueryRequest
	ListAppVOByPageParams    = types.ListAppVOByPageParams
	AdminListAppByPageParams = types.AdminListAppByPageParams
	AdminGetAppByIDParams    = types.AdminGetAppByIDParams
	ChatToGenCodeParams      = types.ChatToGenCodeParams
	HealthParams             = types.HealthParams

	// Domain entities
	Long        = types.Long
	CodeGenType = types.CodeGenType
	App         = types.App
	AppVO       = types.AppVO
	UserVO      = types.UserVO
	LoginUserVO = types.LoginUserVO

	// Streaming
	EventStream     = api.EventStream
	ServerSentEvent = types.ServerSentEvent

	// Transport contract, for WithTransport
	Transport = types.Transport
	Request   = types.Request
)

// BaseResponse is the envelope of every unary response. Code 0 means success;
// otherwise Message carries the backend's reason.
type BaseResponse[T any] = types.BaseResponse[T]

// Page is one page of a listing.
type Page[T any] = types.Page[T]

// Generation modes.
const (
	CodeGenHTML      = types.CodeGenHTML
	CodeGenMultiFile = types.CodeGenMultiFile
)

// CodeGenTypeByValue resolves a generation mode from its wire value.
func CodeGenTypeByValue(v string) (CodeGenType, bool) { return types.CodeGenTypeByValue(v) }
