package diagnostics

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flowsmith/flowsmith/internal/server"
	"github.com/flowsmith/flowsmith/internal/server-plugin/domain"
	"github.com/flowsmith/flowsmith/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/fx"
)

// ServerPlugin exposes recent server log lines, redacted, so an operator or
// the assistant can inspect why a step or a graph submission failed.
type ServerPlugin struct {
	buffer *logger.RingBuffer
	logger *slog.Logger
}

func NewServerPlugin(buffer *logger.RingBuffer, log *slog.Logger) *ServerPlugin {
	return &ServerPlugin{buffer: buffer, logger: log}
}

func (p *ServerPlugin) ID() string          { return "diagnostics" }
func (p *ServerPlugin) Name() string        { return "Diagnostics" }
func (p *ServerPlugin) Description() string { return "Recent server logs, redacted" }
func (p *ServerPlugin) Version() string     { return "0.1.0" }

func (p *ServerPlugin) GetResources(ctx context.Context) ([]domain.Resource, error) {
	return []domain.Resource{
		{
			URI:         "flowsmith://logs/recent",
			Name:        "Recent Logs",
			Description: "The most recent server log lines with credentials redacted",
			MIMEType:    "text/plain",
			Handler:     p.handleRecentLogsResource,
		},
	}, nil
}

func (p *ServerPlugin) handleRecentLogsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	lines := logger.SanitizeLogLines(p.buffer.Tail(200))
	if len(lines) == 0 {
		lines = []string{"(no log lines buffered yet)"}
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     strings.Join(lines, "\n"),
		},
	}, nil
}

var Module = fx.Module("diagnostics",
	fx.Provide(
		server.PluginResult(NewServerPlugin),
	),
)
