package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/lealogineo/internal/config"
)

// Services contains all domain services needed by MCP.
type Services struct {
	Roster  RosterService
	Letters LetterService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Defaults config.Config
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and resources.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "lealogineo",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services.Roster, cfg.Services.Letters, cfg.Defaults)
	registerTools(server, handler, cfg.Logger)

	return server
}
