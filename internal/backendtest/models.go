package backendtest

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// App is the stored application record.
type App struct {
	ID           int64  `json:"id"`
	AppName      string `json:"appName,omitempty"`
	Cover        string `json:"cover,omitempty"`
	InitPrompt   string `json:"initPrompt,omitempty"`
	CodeGenType  string `json:"codeGenType,omitempty"`
	DeployKey    string `json:"deployKey,omitempty"`
	DeployedTime string `json:"deployedTime,omitempty"`
	Priority     int    `json:"priority"`
	UserID       int64  `json:"userId"`
	CreateTime   string `json:"createTime,omitempty"`
	UpdateTime   string `json:"updateTime,omitempty"`
}

type userVO struct {
	ID          int64  `json:"id"`
	UserAccount string `json:"userAccount"`
	UserName    string `json:"userName"`
	UserRole    string `json:"userRole"`
}

type appVO struct {
	App
	User *userVO `json:"user,omitempty"`
}

type page[T any] struct {
	Records    []T   `json:"records"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPage  int   `json:"totalPage"`
	TotalRow   int64 `json:"totalRow"`
}

type envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// flexID decodes an id sent either as a JSON number or a string.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
