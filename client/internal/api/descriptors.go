package api

import (
	"net/http"
	"net/url"
	"strings"
)

// PayloadKind says where an operation carries its input.
type PayloadKind int

const (
	// PayloadNone sends no parameters.
	PayloadNone PayloadKind = iota
	// PayloadQuery encodes the input as URL query parameters.
	PayloadQuery
	// PayloadBody serializes the input as a JSON request body.
	PayloadBody
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadQuery:
		return "query"
	case PayloadBody:
		return "body"
	default:
		return "none"
	}
}

// Operation is the static descriptor of one backend endpoint.
type Operation struct {
	Name      string
	Method    string
	Path      string // may contain {name} placeholders
	Payload   PayloadKind
	Nested    string // query container key flattened into the parameter set
	Streaming bool
}

// The closed set of backend operations. These are never modified at runtime.
var (
	OpAddApp = Operation{Name: "addApp", Method: http.MethodPost, Path: "/app/add", Payload: PayloadBody}

	OpAdminDeleteApp = Operation{Name: "adminDeleteApp", Method: http.MethodDelete, Path: "/app/admin/delete", Payload: PayloadBody}

	OpAdminGetAppByID = Operation{Name: "adminGetAppById", Method: http.MethodGet, Path: "/app/admin/get/{id}", Payload: PayloadQuery}

	OpAdminListAppByPage = Operation{Name: "adminListAppByPage", Method: http.MethodGet, Path: "/app/admin/list/page/vo", Payload: PayloadQuery, Nested: "appAdminQueryRequest"}

	OpAdminUpdateApp = Operation{Name: "adminUpdateApp", Method: http.MethodPut, Path: "/app/admin/update", Payload: PayloadBody}

	OpChatToGenCode = Operation{Name: "chatToGenCode", Method: http.MethodGet, Path: "/app/chat/gen/code", Payload: PayloadQuery, Streaming: true}

	OpDeleteApp = Operation{Name: "deleteApp", Method: http.MethodDelete, Path: "/app/delete", Payload: PayloadBody}

	OpDeployApp = Operation{Name: "deployApp", Method: http.MethodPost, Path: "/app/deploy", Payload: PayloadBody}

	OpGetAppVOByID = Operation{Name: "getAppVoById", Method: http.MethodGet, Path: "/app/get/vo", Payload: PayloadNone}

	OpListMyAppVOByPage = Operation{Name: "listMyAppVoByPage", Method: http.MethodGet, Path: "/app/list/page/vo", Payload: PayloadQuery, Nested: "appQueryRequest"}

	OpListFeaturedAppVOByPage = Operation{Name: "listFeaturedAppVoByPage", Method: http.MethodGet, Path: "/app/list/page/vo/featured", Payload: PayloadQuery, Nested: "appQueryRequest"}

	OpUpdateApp = Operation{Name: "updateApp", Method: http.MethodPut, Path: "/app/update", Payload: PayloadBody}

	OpTestOK = Operation{Name: "testOk", Method: http.MethodGet, Path: "/health/", Payload: PayloadQuery}

	OpUserLogin = Operation{Name: "userLogin", Method: http.MethodPost, Path: "/user/login", Payload: PayloadBody}

	OpGetLoginUser = Operation{Name: "getLoginUser", Method: http.MethodGet, Path: "/user/get/login", Payload: PayloadNone}

	OpUserLogout = Operation{Name: "userLogout", Method: http.MethodPost, Path: "/user/logout", Payload: PayloadNone}
)

// Operations returns every descriptor in table order.
func Operations() []Operation {
	return []Operation{
		OpAddApp,
		OpAdminDeleteApp,
		OpAdminGetAppByID,
		OpAdminListAppByPage,
		OpAdminUpdateApp,
		OpChatToGenCode,
		OpDeleteApp,
		OpDeployApp,
		OpGetAppVOByID,
		OpListMyAppVOByPage,
		OpListFeaturedAppVOByPage,
		OpUpdateApp,
		OpTestOK,
		OpUserLogin,
		OpGetLoginUser,
		OpUserLogout,
	}
}

// ExpandPath substitutes {name} placeholders with path-escaped values and
// removes the consumed names from query. A placeholder without a value is
// left as the literal "undefined", matching what the backend has always seen
// for a missing path field.
func (op Operation) ExpandPath(vars map[string]string, query url.Values) string {
	path := op.Path
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return path
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return path
		}
		end += start
		name := path[start+1 : end]
		val, ok := vars[name]
		if !ok {
			val = "undefined"
		}
		if query != nil {
			query.Del(name)
		}
		path = path[:start] + url.PathEscape(val) + path[end+1:]
	}
}
