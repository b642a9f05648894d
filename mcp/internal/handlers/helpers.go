package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageSize = 10
	maxToolPageSize = 20
)

// toolResult converts an SDK call into a tool result. Transport errors and
// non-zero envelope codes become error results; data is returned as JSON.
func toolResult[T any](tool string, resp *client.BaseResponse[T], err error, elapsed time.Duration) (*mcp.CallToolResult, error) {
	if err != nil {
		log.Error().Err(err).Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", strings.ReplaceAll(tool, "_", " "), err)), nil
	}
	if !resp.OK() {
		log.Debug().Str("tool", tool).Int("code", resp.Code).Str("message", resp.Message).Msg("backend rejected tool call")
		return mcp.NewToolResultError(fmt.Sprintf("%s rejected by backend (code %d): %s", tool, resp.Code, resp.Message)), nil
	}
	log.Debug().Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call completed")
	return jsonResult(resp.Data)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// argInt64 reads an integer argument given as a JSON number or a decimal
// string. Large ids should be sent as strings.
func argInt64(req mcp.CallToolRequest, key string) (int64, bool) {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// requireID reads a mandatory id argument.
func requireID(req mcp.CallToolRequest, key string) (client.Long, *mcp.CallToolResult) {
	n, ok := argInt64(req, key)
	if !ok {
		return 0, mcp.NewToolResultError(fmt.Sprintf("%s is required and must be an integer", key))
	}
	return client.Long(n), nil
}

func argString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}

// pageArgs reads page and page_size, clamping the size to the backend cap.
func pageArgs(req mcp.CallToolRequest) (pageNum, pageSize int) {
	pageNum, pageSize = 1, defaultPageSize
	if n, ok := argInt64(req, "page"); ok && n > 0 {
		pageNum = int(n)
	}
	if n, ok := argInt64(req, "page_size"); ok && n > 0 {
		pageSize = int(n)
	}
	if pageSize > maxToolPageSize {
		pageSize = maxToolPageSize
	}
	return pageNum, pageSize
}
