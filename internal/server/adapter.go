package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/server-plugin/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPAdapter bridges between the plugin system and the MCP server.
// Single responsibility: adapt plugin capabilities to MCP server registration.
type MCPAdapter struct {
	registry  *PluginRegistry
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

func NewMCPAdapter(registry *PluginRegistry, mcpServer *server.MCPServer, logger *slog.Logger) *MCPAdapter {
	return &MCPAdapter{
		registry:  registry,
		mcpServer: mcpServer,
		logger:    logger,
	}
}

// GetResourceProviders returns plugins exposing resources
func (a *MCPAdapter) GetResourceProviders() []domain.ResourceProvider {
	var providers []domain.ResourceProvider
	for _, plugin := range a.registry.Plugins() {
		if provider, ok := plugin.(domain.ResourceProvider); ok {
			providers = append(providers, provider)
		}
	}
	return providers
}

// GetToolProviders returns plugins exposing tools
func (a *MCPAdapter) GetToolProviders() []domain.ToolProvider {
	var providers []domain.ToolProvider
	for _, plugin := range a.registry.Plugins() {
		if provider, ok := plugin.(domain.ToolProvider); ok {
			providers = append(providers, provider)
		}
	}
	return providers
}

// GetPromptProviders returns plugins exposing prompts
func (a *MCPAdapter) GetPromptProviders() []domain.PromptProvider {
	var providers []domain.PromptProvider
	for _, plugin := range a.registry.Plugins() {
		if provider, ok := plugin.(domain.PromptProvider); ok {
			providers = append(providers, provider)
		}
	}
	return providers
}

// RegisterAllServerPlugins registers every plugin capability with the MCP server
func (a *MCPAdapter) RegisterAllServerPlugins(ctx context.Context) error {
	a.logger.Info("Registering all plugins with MCP server")

	if err := a.registerResources(ctx); err != nil {
		return fmt.Errorf("failed to register resources: %w", err)
	}

	if err := a.registerTools(ctx); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	if err := a.registerPrompts(ctx); err != nil {
		return fmt.Errorf("failed to register prompts: %w", err)
	}

	a.logger.Info("All plugins registered successfully")
	return nil
}

func (a *MCPAdapter) registerResources(ctx context.Context) error {
	providers := a.GetResourceProviders()
	a.logger.Debug("Starting resource registration", "provider_count", len(providers))

	for _, provider := range providers {
		resources, err := provider.GetResources(ctx)
		if err != nil {
			a.logger.Error("Failed to get resources from provider",
				"plugin", provider.ID(), "error", err)
			continue
		}

		for _, resource := range resources {
			mcpResource := mcp.NewResource(
				resource.URI,
				resource.Name,
				mcp.WithResourceDescription(resource.Description),
				mcp.WithMIMEType(resource.MIMEType),
			)
			a.mcpServer.AddResource(mcpResource, resource.Handler)
			a.logger.Debug("Registered resource",
				"plugin_id", provider.ID(),
				"uri", resource.URI)
		}
	}
	return nil
}

func (a *MCPAdapter) registerTools(ctx context.Context) error {
	providers := a.GetToolProviders()
	a.logger.Debug("Starting tool registration", "provider_count", len(providers))

	for _, provider := range providers {
		tools, err := provider.GetTools(ctx)
		if err != nil {
			a.logger.Error("Failed to get tools from provider",
				"plugin", provider.ID(), "error", err)
			continue
		}

		for _, tool := range tools {
			a.mcpServer.AddTool(tool.Builder(), tool.Handler)
			a.logger.Debug("Registered tool",
				"plugin_id", provider.ID(),
				"tool", tool.Name)
		}
	}
	return nil
}

func (a *MCPAdapter) registerPrompts(ctx context.Context) error {
	providers := a.GetPromptProviders()
	a.logger.Debug("Starting prompt registration", "provider_count", len(providers))

	for _, provider := range providers {
		prompts, err := provider.GetPrompts(ctx)
		if err != nil {
			a.logger.Error("Failed to get prompts from provider",
				"plugin", provider.ID(), "error", err)
			continue
		}

		for _, prompt := range prompts {
			a.mcpServer.AddPrompt(prompt.Builder(), prompt.Handler)
			a.logger.Debug("Registered prompt",
				"plugin_id", provider.ID(),
				"prompt", prompt.Name)
		}
	}
	return nil
}
