package handlers

import (
	"context"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// AdminHandler exposes tools that need an admin session.
type AdminHandler struct {
	client *client.Client
}

func NewAdminHandler(c *client.Client) *AdminHandler { return &AdminHandler{client: c} }

func (h *AdminHandler) RegisterTools(s *server.MCPServer) error {
	get := mcp.NewTool("admin_get_app",
		mcp.WithDescription("Get the full record of any application (admin only)"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
	)
	list := mcp.NewTool("admin_list_apps",
		mcp.WithDescription("List all applications with optional filters (admin only)"),
		mcp.WithString("app_name", mcp.Description("Name filter (substring)")),
		mcp.WithString("user_id", mcp.Description("Owner ID")),
		mcp.WithString("code_gen_type", mcp.Description("Generation mode")),
		mcp.WithNumber("page", mcp.Description("Page number, default 1")),
		mcp.WithNumber("page_size", mcp.Description("Page size (1-20), default 10")),
	)
	update := mcp.NewTool("admin_update_app",
		mcp.WithDescription("Update name, cover or priority of any application (admin only); priority > 0 features it"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
		mcp.WithString("app_name", mcp.Description("New name")),
		mcp.WithString("cover", mcp.Description("Cover image URL")),
		mcp.WithNumber("priority", mcp.Description("Priority")),
	)
	del := mcp.NewTool("admin_delete_app",
		mcp.WithDescription("Delete any application (admin only)"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
	)
	s.AddTool(get, h.handleGet)
	s.AddTool(list, h.handleList)
	s.AddTool(update, h.handleUpdate)
	s.AddTool(del, h.handleDelete)
	return nil
}

func (h *AdminHandler) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	log.Debug().Stringer("app_id", id).Msg("admin_get_app invoked")

	start := time.Now()
	resp, err := h.client.AdminGetAppByID(ctx, client.AdminGetAppByIDParams{ID: id})
	return toolResult("admin_get_app", resp, err, time.Since(start))
}

func (h *AdminHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageNum, pageSize := pageArgs(req)
	q := client.AppAdminQueryRequest{
		AppName:     argString(req, "app_name"),
		CodeGenType: argString(req, "code_gen_type"),
	}
	if n, ok := argInt64(req, "user_id"); ok {
		q.UserID = client.Long(n)
	}
	log.Debug().Int("page", pageNum).Int("page_size", pageSize).Msg("admin_list_apps invoked")

	start := time.Now()
	resp, err := h.client.AdminListAppByPage(ctx, client.AdminListAppByPageParams{
		PageNum:              pageNum,
		PageSize:             pageSize,
		AppAdminQueryRequest: q,
	})
	return toolResult("admin_list_apps", resp, err, time.Since(start))
}

func (h *AdminHandler) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	body := client.AppAdminUpdateRequest{
		ID:      id,
		AppName: argString(req, "app_name"),
		Cover:   argString(req, "cover"),
	}
	if n, ok := argInt64(req, "priority"); ok {
		p := int(n)
		body.Priority = &p
	}
	log.Debug().Stringer("app_id", id).Msg("admin_update_app invoked")

	start := time.Now()
	resp, err := h.client.AdminUpdateApp(ctx, body)
	return toolResult("admin_update_app", resp, err, time.Since(start))
}

func (h *AdminHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	log.Debug().Stringer("app_id", id).Msg("admin_delete_app invoked")

	start := time.Now()
	resp, err := h.client.AdminDeleteApp(ctx, client.DeleteRequest{ID: id})
	return toolResult("admin_delete_app", resp, err, time.Since(start))
}
