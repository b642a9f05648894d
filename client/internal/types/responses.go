package types

// ------------------------------
// Response Types
// ------------------------------

// BaseResponse is the envelope wrapping every non-streaming backend response.
// A zero Code means success; any other value is a backend business error code.
type BaseResponse[T any] struct {
	Code    int    `json:"code"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the backend signalled success.
func (r *BaseResponse[T]) OK() bool { return r != nil && r.Code == 0 }

// Envelope aliases, one per payload shape.
type (
	BaseResponseLong        = BaseResponse[Long]
	BaseResponseBoolean     = BaseResponse[bool]
	BaseResponseString      = BaseResponse[string]
	BaseResponseApp         = BaseResponse[App]
	BaseResponseAppVO       = BaseResponse[AppVO]
	BaseResponsePageAppVO   = BaseResponse[Page[AppVO]]
	BaseResponseLoginUserVO = BaseResponse[LoginUserVO]
)

// ServerSentEvent is one fragment of the code generation stream.
type ServerSentEvent struct {
	ID      string `json:"id,omitempty"`
	Event   string `json:"event,omitempty"`
	Data    string `json:"data"`
	Retry   int    `json:"retry,omitempty"`
	Comment string `json:"comment,omitempty"`
}
