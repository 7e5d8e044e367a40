package server

import (
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/server-plugin/domain"
	"github.com/flowsmith/flowsmith/pkg/config"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// NewMCPServerInstance creates a new MCP server instance.
func NewMCPServerInstance(cfg *config.ServerConfig, logger *slog.Logger) *server.MCPServer {
	logger.Debug("Creating MCP server instance")
	version := "dev"
	mcpServer := server.NewMCPServer(
		"Flowsmith Workflow Server",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)
	logger.Debug("MCP server instance created successfully")
	return mcpServer
}

var Module = fx.Module("server",
	fx.Provide(
		NewMCPServerInstance,
		fx.Annotate(
			NewPluginRegistry,
			fx.ParamTags(`group:"server_plugins"`, ``),
		),
		NewMCPAdapter,
	),
	fx.Invoke(registerServerHooks),
)

// PluginResult makes it convenient for feature modules to contribute a
// plugin into the server's static registry.
func PluginResult(constructor any) any {
	return fx.Annotate(
		constructor,
		fx.As(new(domain.ServerPlugin)),
		fx.ResultTags(`group:"server_plugins"`),
	)
}
