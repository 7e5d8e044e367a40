package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/flowsmith/flowsmith/internal/credential"
	registry "github.com/flowsmith/flowsmith/internal/integrations"
	"github.com/flowsmith/flowsmith/internal/server"
	"github.com/flowsmith/flowsmith/internal/server-plugin/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// ServerPlugin exposes the integration catalog and credential status.
type ServerPlugin struct {
	registry *registry.Registry
	resolver credential.Resolver
	logger   *slog.Logger
}

func NewServerPlugin(reg *registry.Registry, resolver credential.Resolver, logger *slog.Logger) *ServerPlugin {
	return &ServerPlugin{
		registry: reg,
		resolver: resolver,
		logger:   logger,
	}
}

func (p *ServerPlugin) ID() string   { return "integrations" }
func (p *ServerPlugin) Name() string { return "Integrations" }

func (p *ServerPlugin) Description() string {
	return "Integration catalog and credential configuration status"
}

func (p *ServerPlugin) Version() string { return "0.1.0" }

// ResourceProvider implementation
func (p *ServerPlugin) GetResources(ctx context.Context) ([]domain.Resource, error) {
	return []domain.Resource{
		{
			URI:         "flowsmith://integrations/catalog",
			Name:        "Integration Catalog",
			Description: "The closed set of supported trigger and action categories",
			MIMEType:    "application/json",
			Handler:     p.handleCatalogResource,
		},
	}, nil
}

// ToolProvider implementation
func (p *ServerPlugin) GetTools(ctx context.Context) ([]domain.Tool, error) {
	return []domain.Tool{
		{
			Name:        "check_credentials",
			Description: "Report which credential keys an integration reference has configured",
			Builder:     p.buildCheckCredentialsTool,
			Handler:     p.handleCheckCredentials,
		},
	}, nil
}

type actionInfo struct {
	Type                string   `json:"type"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	RequiredCredentials []string `json:"requiredCredentials,omitempty"`
}

type triggerInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type integrationInfo struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Actions     []actionInfo  `json:"actions,omitempty"`
	Triggers    []triggerInfo `json:"triggers,omitempty"`
}

func (p *ServerPlugin) handleCatalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var catalog []integrationInfo
	for _, integration := range p.registry.Integrations() {
		info := integrationInfo{
			ID:          integration.ID(),
			Name:        integration.Name(),
			Description: integration.Description(),
		}
		for _, action := range integration.Actions() {
			info.Actions = append(info.Actions, actionInfo{
				Type:                action.Type,
				Name:                action.Name,
				Description:         action.Description,
				RequiredCredentials: action.RequiredCredentials,
			})
		}
		for _, trigger := range integration.Triggers() {
			info.Triggers = append(info.Triggers, triggerInfo{
				Type:        trigger.Type,
				Name:        trigger.Name,
				Description: trigger.Description,
			})
		}
		catalog = append(catalog, info)
	}

	jsonData, err := json.MarshalIndent(map[string]any{
		"integrations": catalog,
		"actionTypes":  p.registry.ActionTypes(),
		"triggerTypes": p.registry.TriggerTypes(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize integration catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func (p *ServerPlugin) buildCheckCredentialsTool() mcp.Tool {
	return mcp.NewTool(
		"check_credentials",
		mcp.WithDescription("Report which credential keys an integration reference has configured. Returns key names only, never values."),
		mcp.WithString("integration_ref",
			mcp.Required(),
			mcp.Description("The integration reference configured under Project Integrations"),
		),
	)
}

func (p *ServerPlugin) handleCheckCredentials(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("integration_ref")
	if err != nil {
		return server.Error("missing_argument", "The integration reference is required", ""), nil
	}

	set := p.resolver.Resolve(ctx, ref)
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return server.OK(
			fmt.Sprintf("'%s' has no credentials configured", ref),
			map[string]any{"integrationRef": ref, "configuredKeys": []string{}},
		), nil
	}

	return server.OK(
		fmt.Sprintf("'%s' has %d credential key(s) configured", ref, len(keys)),
		map[string]any{"integrationRef": ref, "configuredKeys": keys},
	), nil
}
