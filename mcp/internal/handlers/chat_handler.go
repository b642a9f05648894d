package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// ChatHandler exposes code generation. The stream is collected into one text
// result because a tool call returns once.
type ChatHandler struct {
	client *client.Client
}

func NewChatHandler(c *client.Client) *ChatHandler { return &ChatHandler{client: c} }

func (h *ChatHandler) RegisterTools(s *server.MCPServer) error {
	gen := mcp.NewTool("generate_code",
		mcp.WithDescription("Send a message to the code generator of an application and return the generated code"),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Application ID")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Instruction for this generation turn")),
	)
	s.AddTool(gen, h.handleGenerate)
	return nil
}

func (h *ChatHandler) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(req, "app_id")
	if bad != nil {
		return bad, nil
	}
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Stringer("app_id", id).Int("message_len", len(message)).Msg("generate_code invoked")

	start := time.Now()
	stream, err := h.client.ChatToGenCode(ctx, client.ChatToGenCodeParams{AppID: id, Message: message})
	if err != nil {
		log.Error().Err(err).Stringer("app_id", id).Dur("elapsed", time.Since(start)).Msg("generate_code failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to generate code: %v", err)), nil
	}
	defer func() { _ = stream.Close() }()

	var b strings.Builder
	events := 0
	for ev, err := range stream.Events() {
		if err != nil {
			log.Error().Err(err).Stringer("app_id", id).Int("events", events).Msg("generate_code stream broken")
			return mcp.NewToolResultError(fmt.Sprintf("code stream interrupted after %d events: %v", events, err)), nil
		}
		events++
		if ev.Event == "" || ev.Event == "message" {
			b.WriteString(ev.Data)
		}
	}

	log.Debug().Stringer("app_id", id).Int("events", events).Int("bytes", b.Len()).Dur("elapsed", time.Since(start)).Msg("generate_code completed")
	return mcp.NewToolResultText(b.String()), nil
}
