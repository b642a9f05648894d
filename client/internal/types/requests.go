package types

import "net/url"

// ------------------------------
// Body Request Types (sent as JSON)
// ------------------------------

// AppAddRequest creates an application. InitPrompt is required by the backend.
type AppAddRequest struct {
	AppName     string `json:"appName,omitempty"`
	InitPrompt  string `json:"initPrompt,omitempty"`
	CodeGenType string `json:"codeGenType,omitempty"`
}

// AppUpdateRequest renames one of the caller's own applications.
type AppUpdateRequest struct {
	ID      Long   `json:"id"`
	AppName string `json:"appName,omitempty"`
}

// AppAdminUpdateRequest updates any application (admin only).
type AppAdminUpdateRequest struct {
	ID       Long   `json:"id"`
	AppName  string `json:"appName,omitempty"`
	Cover    string `json:"cover,omitempty"`
	Priority *int   `json:"priority,omitempty"`
}

// AppDeployRequest deploys the generated code of an application.
type AppDeployRequest struct {
	AppID Long `json:"appId"`
}

// DeleteRequest identifies the record to delete.
type DeleteRequest struct {
	ID Long `json:"id"`
}

// UserLoginRequest opens a backend session.
type UserLoginRequest struct {
	UserAccount  string `json:"userAccount"`
	UserPassword string `json:"userPassword"`
}

// ------------------------------
// Query Request Types (sent as URL parameters)
// ------------------------------

// PageRequest holds the paging and sorting fields shared by list queries.
type PageRequest struct {
	PageNum   int    `schema:"pageNum,omitempty" json:"pageNum,omitempty"`
	PageSize  int    `schema:"pageSize,omitempty" json:"pageSize,omitempty"`
	SortField string `schema:"sortField,omitempty" json:"sortField,omitempty"`
	SortOrder string `schema:"sortOrder,omitempty" json:"sortOrder,omitempty"`
}

// AppQueryRequest filters the caller's (or featured) applications by name.
// The backend caps PageSize at 20.
type AppQueryRequest struct {
	PageRequest
	AppName  string `schema:"appName,omitempty" json:"appName,omitempty"`
	Priority *int   `schema:"priority,omitempty" json:"priority,omitempty"`
}

// AppAdminQueryRequest filters all applications on any field except time.
type AppAdminQueryRequest struct {
	PageRequest
	ID          Long   `schema:"id,omitempty" json:"id,omitempty"`
	AppName     string `schema:"appName,omitempty" json:"appName,omitempty"`
	Cover       string `schema:"cover,omitempty" json:"cover,omitempty"`
	InitPrompt  string `schema:"initPrompt,omitempty" json:"initPrompt,omitempty"`
	CodeGenType string `schema:"codeGenType,omitempty" json:"codeGenType,omitempty"`
	DeployKey   string `schema:"deployKey,omitempty" json:"deployKey,omitempty"`
	Priority    *int   `schema:"priority,omitempty" json:"priority,omitempty"`
	UserID      Long   `schema:"userId,omitempty" json:"userId,omitempty"`
}

// ListAppVOByPageParams is the parameter set of the user-side paged listings.
// Top-level paging fields are overridden by any field set on AppQueryRequest.
type ListAppVOByPageParams struct {
	PageNum         int             `schema:"pageNum,omitempty"`
	PageSize        int             `schema:"pageSize,omitempty"`
	AppQueryRequest AppQueryRequest `schema:"-"`
}

// AdminListAppByPageParams is the parameter set of the admin paged listing.
type AdminListAppByPageParams struct {
	PageNum              int                  `schema:"pageNum,omitempty"`
	PageSize             int                  `schema:"pageSize,omitempty"`
	AppAdminQueryRequest AppAdminQueryRequest `schema:"-"`
}

// AdminGetAppByIDParams addresses one application by path; Extra is forwarded
// as query parameters.
type AdminGetAppByIDParams struct {
	ID    Long       `schema:"-"`
	Extra url.Values `schema:"-"`
}

// ChatToGenCodeParams starts a code generation turn for an application.
type ChatToGenCodeParams struct {
	AppID   Long   `schema:"appId"`
	Message string `schema:"message"`
}

// HealthParams is the (ignored) parameter set of the health probe.
type HealthParams struct {
	Name string `schema:"name,omitempty"`
}
