package mcp

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/gdai/zerocode/internal/backendtest"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var expectedTools = []string{
	"list_my_apps", "list_featured_apps", "get_app", "create_app", "update_app",
	"delete_app", "deploy_app", "generate_code", "admin_get_app", "admin_list_apps",
	"admin_update_app", "admin_delete_app", "health_check",
}

func newTestServer(t *testing.T, b *backendtest.Server) *server.MCPServer {
	t.Helper()
	sdk, err := client.New(b.BaseURL(), client.WithHTTPClient(b.Client()))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	t.Cleanup(func() { _ = sdk.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := login(ctx, sdk, backendtest.Alice.Account, backendtest.Alice.Password); err != nil {
		t.Fatalf("login: %v", err)
	}

	s, err := NewServer("test-mcp-server", "1.0.0", sdk)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func initialize(t *testing.T, ctx context.Context, c *mcpclient.Client) {
	t.Helper()
	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2024-11-05",
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "test-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to initialize MCP client: %v", err)
	}
}

// TestMCPServerTransports verifies that the tools are served over both
// in-process (stdio-like) and streamable HTTP transports.
func TestMCPServerTransports(t *testing.T) {
	b := backendtest.New()
	defer b.Close()
	mcpServer := newTestServer(t, b)

	t.Run("InProcessTransport", func(t *testing.T) {
		tr := transport.NewInProcessTransport(mcpServer)
		if err := tr.Start(context.Background()); err != nil {
			t.Fatalf("failed to start in-process transport: %v", err)
		}
		defer tr.Close()

		c := mcpclient.NewClient(tr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		initialize(t, ctx, c)

		tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		if err != nil {
			t.Fatalf("tools/list failed over in-process transport: %v", err)
		}
		names := make(map[string]bool)
		for _, tool := range tools.Tools {
			names[tool.Name] = true
		}
		for _, want := range expectedTools {
			if !names[want] {
				t.Errorf("expected tool %q not found in tools list", want)
			}
		}
		if len(tools.Tools) != len(expectedTools) {
			t.Errorf("got %d tools, want %d", len(tools.Tools), len(expectedTools))
		}

		res, err := c.CallTool(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{
			Name:      "create_app",
			Arguments: map[string]any{"init_prompt": "a landing page"},
		}})
		if err != nil {
			t.Fatalf("create_app over in-process transport: %v", err)
		}
		if res.IsError {
			t.Fatalf("create_app returned a tool error: %+v", res.Content)
		}
		if last := b.Last(); last.Method != "POST" || last.Path != "/app/add" {
			t.Fatalf("unexpected backend request %s %s", last.Method, last.Path)
		}
	})

	t.Run("HTTPTransport", func(t *testing.T) {
		streamSrv := server.NewStreamableHTTPServer(
			mcpServer,
			server.WithEndpointPath("/mcp"),
			server.WithHeartbeatInterval(30*time.Second),
		)
		httpSrv := httptest.NewServer(streamSrv)
		defer httpSrv.Close()

		tr, err := transport.NewStreamableHTTP(httpSrv.URL + "/mcp")
		if err != nil {
			t.Fatalf("failed to create HTTP transport: %v", err)
		}
		if err := tr.Start(context.Background()); err != nil {
			t.Fatalf("failed to start HTTP transport: %v", err)
		}
		defer tr.Close()

		c := mcpclient.NewClient(tr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		initialize(t, ctx, c)

		res, err := c.CallTool(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "health_check"}})
		if err != nil {
			t.Fatalf("health_check over HTTP transport: %v", err)
		}
		if res.IsError {
			t.Fatalf("health_check returned a tool error: %+v", res.Content)
		}
	})
}

func TestShouldUseStdio_EnvOverrides(t *testing.T) {
	t.Setenv("MCP_HTTP", "")
	t.Setenv("MCP_STDIO", "true")
	if !shouldUseStdio() {
		t.Fatalf("MCP_STDIO=true must force stdio")
	}
	t.Setenv("MCP_STDIO", "")
	t.Setenv("MCP_HTTP", "true")
	if shouldUseStdio() {
		t.Fatalf("MCP_HTTP=true must force HTTP")
	}
}
