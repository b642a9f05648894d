package handlers

import (
	"context"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HealthHandler exposes health_check.
type HealthHandler struct {
	client *client.Client
}

func NewHealthHandler(c *client.Client) *HealthHandler { return &HealthHandler{client: c} }

func (h *HealthHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("health_check",
		mcp.WithDescription("Check that the code generation backend is reachable"),
	), h.handleHealth)
	return nil
}

func (h *HealthHandler) handleHealth(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	resp, err := h.client.Health(ctx)
	return toolResult("health_check", resp, err, time.Since(start))
}
