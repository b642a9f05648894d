// Package mcp serves the zerocode SDK as Model Context Protocol tools.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/gdai/zerocode/config"
	"github.com/gdai/zerocode/internal/logger"
	"github.com/gdai/zerocode/mcp/internal/handlers"
	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// serverConfig holds the MCP server's own settings; backend endpoints come
// from the config package.
type serverConfig struct {
	ServerName      string        `envconfig:"MCP_SERVER_NAME" default:"zerocode-mcp-server"`
	ServerVersion   string        `envconfig:"MCP_SERVER_VERSION" default:"0.1.0"`
	HTTPAddr        string        `envconfig:"MCP_HTTP_ADDR" default:":8124"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	Account         string        `envconfig:"ZEROCODE_ACCOUNT"`
	Password        string        `envconfig:"ZEROCODE_PASSWORD"`
}

// loadServerConfig reads environment variables, then flags.
func loadServerConfig() (*serverConfig, error) {
	var cfg serverConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	flag.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address of the streamable HTTP transport")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flag.StringVar(&cfg.Account, "account", cfg.Account, "Account the server logs in with")
	flag.Parse()
	return &cfg, nil
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server exposing every tool group over c.
func NewServer(name, version string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		// Advertise empty resources & prompts so hosts stop returning
		// -32601 for resources/list and prompts/list.
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)

	groups := []struct {
		name    string
		handler toolRegisterer
	}{
		{"app", handlers.NewAppHandler(c)},
		{"admin", handlers.NewAdminHandler(c)},
		{"chat", handlers.NewChatHandler(c)},
		{"health", handlers.NewHealthHandler(c)},
	}
	for _, g := range groups {
		if err := g.handler.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", g.name, err)
		}
	}
	return s, nil
}

// login opens the session every session-scoped tool runs under.
func login(ctx context.Context, c *client.Client, account, password string) error {
	resp, err := c.UserLogin(ctx, client.UserLoginRequest{UserAccount: account, UserPassword: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("login: backend returned code %d: %s", resp.Code, resp.Message)
	}
	log.Info().Str("account", account).Str("role", resp.Data.UserRole).Msg("Logged in")
	return nil
}

// RunMCPServer starts the MCP server and blocks until it exits.
func RunMCPServer() error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}
	logger.SetGlobal(logger.New(cfg.ServerName), logger.ParseLevel(cfg.LogLevel))

	backend, err := config.New()
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to load configuration")
		return err
	}

	sdk, err := client.NewFromConfig(backend)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	log.Info().Str("api_base_url", sdk.BaseURL()).Msg("Client created successfully")

	if cfg.Account != "" {
		ctx, cancel := context.WithTimeout(context.Background(), backend.HTTPTimeout)
		err := login(ctx, sdk, cfg.Account, cfg.Password)
		cancel()
		if err != nil {
			log.Error().Err(err).Msg("Failed to open session")
			return err
		}
	}

	s, err := NewServer(cfg.ServerName, cfg.ServerVersion, sdk)
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		// Stdio transport (desktop hosts, launched processes)
		log.Info().Msg("Starting zerocode MCP server (stdio transport)")
		defer func() { _ = sdk.Close() }()
		return server.ServeStdio(s)
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting zerocode MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // generate_code can run for minutes
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
		if err := sdk.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing zerocode client")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
