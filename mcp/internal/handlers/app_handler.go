package handlers

import (
	"context"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// AppHandler exposes the session user's application tools.
type AppHandler struct {
	client *client.Client
}

// NewAppHandler returns a new handler.
func NewAppHandler(c *client.Client) *AppHandler { return &AppHandler{client: c} }

// RegisterTools registers app tools.
func (ah *AppHandler) RegisterTools(s *server.MCPServer) error {
	listMine := mcp.NewTool("list_my_apps",
		mcp.WithDescription("List the applications of the logged-in user, newest first"),
		mcp.WithString("app_name", mcp.Description("Optional name filter (substring)")),
		mcp.WithNumber("page", mcp.Description("Page number, default 1")),
		mcp.WithNumber("page_size", mcp.Description("Page size (1-20), default 10")),
	)
	s.AddTool(listMine, ah.handleListMyApps)

	listFeatured := mcp.NewTool("list_featured_apps",
		mcp.WithDescription("List featured applications, highest priority first"),
		mcp.WithString("app_name", mcp.Description("Optional name filter (substring)")),
		mcp.WithNumber("page", mcp.Description("Page number, default 1")),
		mcp.WithNumber("page_size", mcp.Description("Page size (1-20), default 10")),
	)
	s.AddTool(listFeatured, ah.handleListFeaturedApps)

	get := mcp.NewTool("get_app",
		mcp.WithDescription("Get the application the backend resolves for the current session"),
	)
	s.AddTool(get, ah.handleGetApp)

	create := mcp.NewTool("create_app",
		mcp.WithDescription("Create an application from an initial prompt; returns its id"),
		mcp.WithString("init_prompt", mcp.Required(), mcp.Description("What the application should do")),
		mcp.WithString("app_name", mcp.Description("Optional application name")),
		mcp.WithString("code_gen_type", mcp.Description("Generation mode: html or multiFile")),
	)
	s.AddTool(create, ah.handleCreateApp)

	update := mcp.NewTool("update_app",
		mcp.WithDescription("Rename one of your applications"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
		mcp.WithString("app_name", mcp.Required(), mcp.Description("New name")),
	)
	s.AddTool(update, ah.handleUpdateApp)

	del := mcp.NewTool("delete_app",
		mcp.WithDescription("Delete one of your applications"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
	)
	s.AddTool(del, ah.handleDeleteApp)

	deploy := mcp.NewTool("deploy_app",
		mcp.WithDescription("Deploy an application; returns its public URL"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
	)
	s.AddTool(deploy, ah.handleDeployApp)

	return nil
}

func (ah *AppHandler) listParams(req mcp.CallToolRequest) client.ListAppVOByPageParams {
	pageNum, pageSize := pageArgs(req)
	return client.ListAppVOByPageParams{
		PageNum:         pageNum,
		PageSize:        pageSize,
		AppQueryRequest: client.AppQueryRequest{AppName: argString(req, "app_name")},
	}
}

func (ah *AppHandler) handleListMyApps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := ah.listParams(req)
	log.Debug().Int("page", params.PageNum).Int("page_size", params.PageSize).Msg("list_my_apps invoked")

	start := time.Now()
	resp, err := ah.client.ListMyAppVOByPage(ctx, params)
	return toolResult("list_my_apps", resp, err, time.Since(start))
}

func (ah *AppHandler) handleListFeaturedApps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := ah.listParams(req)
	log.Debug().Int("page", params.PageNum).Int("page_size", params.PageSize).Msg("list_featured_apps invoked")

	start := time.Now()
	resp, err := ah.client.ListFeaturedAppVOByPage(ctx, params)
	return toolResult("list_featured_apps", resp, err, time.Since(start))
}

func (ah *AppHandler) handleGetApp(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	resp, err := ah.client.GetAppVOByID(ctx)
	return toolResult("get_app", resp, err, time.Since(start))
}

func (ah *AppHandler) handleCreateApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("init_prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body := client.AppAddRequest{
		AppName:     argString(req, "app_name"),
		InitPrompt:  prompt,
		CodeGenType: argString(req, "code_gen_type"),
	}
	log.Debug().Str("app_name", body.AppName).Int("init_prompt_len", len(prompt)).Msg("create_app invoked")

	start := time.Now()
	resp, err := ah.client.AddApp(ctx, body)
	if err == nil && resp.OK() {
		return jsonResult(map[string]any{"appId": resp.Data})
	}
	return toolResult("create_app", resp, err, time.Since(start))
}

func (ah *AppHandler) handleUpdateApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	name, err := req.RequireString("app_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Stringer("app_id", id).Str("app_name", name).Msg("update_app invoked")

	start := time.Now()
	resp, err := ah.client.UpdateApp(ctx, client.AppUpdateRequest{ID: id, AppName: name})
	return toolResult("update_app", resp, err, time.Since(start))
}

func (ah *AppHandler) handleDeleteApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	log.Debug().Stringer("app_id", id).Msg("delete_app invoked")

	start := time.Now()
	resp, err := ah.client.DeleteApp(ctx, client.DeleteRequest{ID: id})
	return toolResult("delete_app", resp, err, time.Since(start))
}

func (ah *AppHandler) handleDeployApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	log.Debug().Stringer("app_id", id).Msg("deploy_app invoked")

	start := time.Now()
	resp, err := ah.client.DeployApp(ctx, client.AppDeployRequest{AppID: id})
	if err == nil && resp.OK() {
		return mcp.NewToolResultText(resp.Data), nil
	}
	return toolResult("deploy_app", resp, err, time.Since(start))
}
