package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/flowsmith/flowsmith/pkg/config"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// registerServerHooks uses fx.Hook to manage the server's lifecycle.
func registerServerHooks(lc fx.Lifecycle, cfg *config.ServerConfig, mcpServer *server.MCPServer, adapter *MCPAdapter, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Registering all server plugins...")
			if err := adapter.RegisterAllServerPlugins(ctx); err != nil {
				return fmt.Errorf("failed to register server plugins: %w", err)
			}
			logger.Info("All plugins registered.")

			switch cfg.Transport.Type {
			case "sse":
				logger.Info("Starting MCP server with 'sse' transport.")
				sseServer := server.NewSSEServer(mcpServer)
				go func() {
					addr := fmt.Sprintf("%s:%d", cfg.Transport.Host, cfg.Transport.Port)
					logger.Info("SSE server listening", "address", addr)
					if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
						logger.Error("SSE server failed", "error", err)
					}
				}()
			case "stdio":
				logger.Info("Starting MCP server with 'stdio' transport.")
				go func() {
					if err := server.ServeStdio(mcpServer); err != nil {
						logger.Error("Stdio server failed", "error", err)
					}
				}()
			default:
				return fmt.Errorf("unknown transport type: %s", cfg.Transport.Type)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Server shutdown.")
			return nil
		},
	})
}
