package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Long is a backend 64-bit identifier. The backend may serialise it either as a
// JSON number or as a string (to survive JavaScript's 53-bit integers), so
// decoding accepts both. Encoding always emits the string form.
type Long int64

// String returns the decimal form used in URL path segments.
func (l Long) String() string { return strconv.FormatInt(int64(l), 10) }

// MarshalJSON implements json.Marshaler.
func (l Long) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(l.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Long) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*l = 0
			return nil
		}
		b = []byte(s)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("long: %w", err)
	}
	*l = Long(n)
	return nil
}

// CodeGenType selects how the backend renders generated code.
type CodeGenType string

const (
	// CodeGenHTML is the single native HTML file mode.
	CodeGenHTML CodeGenType = "html"
	// CodeGenMultiFile is the multi-file (html/css/js) mode.
	CodeGenMultiFile CodeGenType = "multiFile"
)

// Text returns the human label of the generation mode.
func (t CodeGenType) Text() string {
	switch t {
	case CodeGenHTML:
		return "原生HTML模式"
	case CodeGenMultiFile:
		return "多文件模式"
	default:
		return ""
	}
}

// CodeGenTypeByValue resolves a wire value; ok is false for empty or unknown values.
func CodeGenTypeByValue(v string) (CodeGenType, bool) {
	switch CodeGenType(v) {
	case CodeGenHTML, CodeGenMultiFile:
		return CodeGenType(v), true
	default:
		return "", false
	}
}

// App is the full application record (admin view).
type App struct {
	ID           Long   `json:"id"`
	AppName      string `json:"appName,omitempty"`
	Cover        string `json:"cover,omitempty"`
	InitPrompt   string `json:"initPrompt,omitempty"`
	CodeGenType  string `json:"codeGenType,omitempty"`
	DeployKey    string `json:"deployKey,omitempty"`
	DeployedTime string `json:"deployedTime,omitempty"`
	Priority     *int   `json:"priority,omitempty"`
	UserID       Long   `json:"userId,omitempty"`
	EditTime     string `json:"editTime,omitempty"`
	CreateTime   string `json:"createTime,omitempty"`
	UpdateTime   string `json:"updateTime,omitempty"`
	IsDelete     int    `json:"isDelete,omitempty"`
}

// UserVO is the public projection of a user.
type UserVO struct {
	ID          Long   `json:"id"`
	UserAccount string `json:"userAccount,omitempty"`
	UserName    string `json:"userName,omitempty"`
	UserAvatar  string `json:"userAvatar,omitempty"`
	UserProfile string `json:"userProfile,omitempty"`
	UserRole    string `json:"userRole,omitempty"`
	CreateTime  string `json:"createTime,omitempty"`
}

// LoginUserVO is the session user returned by login and get-login.
type LoginUserVO struct {
	UserVO
	UpdateTime string `json:"updateTime,omitempty"`
}

// AppVO is the user-facing projection of an App with its creator attached.
type AppVO struct {
	ID           Long    `json:"id"`
	AppName      string  `json:"appName,omitempty"`
	Cover        string  `json:"cover,omitempty"`
	InitPrompt   string  `json:"initPrompt,omitempty"`
	CodeGenType  string  `json:"codeGenType,omitempty"`
	DeployKey    string  `json:"deployKey,omitempty"`
	DeployedTime string  `json:"deployedTime,omitempty"`
	Priority     *int    `json:"priority,omitempty"`
	UserID       Long    `json:"userId,omitempty"`
	CreateTime   string  `json:"createTime,omitempty"`
	UpdateTime   string  `json:"updateTime,omitempty"`
	User         *UserVO `json:"user,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Records    []T  `json:"records"`
	PageNumber Long `json:"pageNumber"`
	PageSize   Long `json:"pageSize"`
	TotalPage  Long `json:"totalPage"`
	TotalRow   Long `json:"totalRow"`
}
