package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/engine"
	"github.com/flowsmith/flowsmith/internal/server"
	"github.com/flowsmith/flowsmith/internal/server-plugin/domain"
	wfapp "github.com/flowsmith/flowsmith/internal/server-plugins/workflow/application"
	wfdomain "github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// Catalog names the closed sets of supported action and trigger categories.
// Satisfied by the integrations registry.
type Catalog interface {
	ActionTypes() []string
	TriggerTypes() []string
}

// ServerPlugin exposes workflow assembly and execution to the AI assistant.
type ServerPlugin struct {
	assembly *wfapp.AssemblyUseCase
	runner   *engine.Runner
	catalog  Catalog
	logger   *slog.Logger
}

func NewServerPlugin(assembly *wfapp.AssemblyUseCase, runner *engine.Runner, catalog Catalog, logger *slog.Logger) *ServerPlugin {
	return &ServerPlugin{
		assembly: assembly,
		runner:   runner,
		catalog:  catalog,
		logger:   logger,
	}
}

func (p *ServerPlugin) ID() string   { return "workflow" }
func (p *ServerPlugin) Name() string { return "Workflows" }

func (p *ServerPlugin) Description() string {
	return "Assemble, validate, persist and run workflow graphs"
}

func (p *ServerPlugin) Version() string { return "0.1.0" }

// ResourceProvider implementation
func (p *ServerPlugin) GetResources(ctx context.Context) ([]domain.Resource, error) {
	return []domain.Resource{
		{
			URI:         "flowsmith://workflows",
			Name:        "Workflow List",
			Description: "All persisted workflows with node and edge counts",
			MIMEType:    "application/json",
			Handler:     p.handleWorkflowListResource,
		},
	}, nil
}

// ToolProvider implementation
func (p *ServerPlugin) GetTools(ctx context.Context) ([]domain.Tool, error) {
	return []domain.Tool{
		{
			Name:        "generate_workflow",
			Description: "Validate a candidate workflow graph and persist it as a new workflow",
			Builder:     p.buildGenerateWorkflowTool,
			Handler:     p.handleGenerateWorkflow,
		},
		{
			Name:        "update_workflow",
			Description: "Validate a candidate workflow graph and replace an existing workflow with it",
			Builder:     p.buildUpdateWorkflowTool,
			Handler:     p.handleUpdateWorkflow,
		},
		{
			Name:        "get_workflow",
			Description: "Fetch one persisted workflow graph",
			Builder:     p.buildGetWorkflowTool,
			Handler:     p.handleGetWorkflow,
		},
		{
			Name:        "run_workflow",
			Description: "Execute a persisted workflow and report per-node outcomes",
			Builder:     p.buildRunWorkflowTool,
			Handler:     p.handleRunWorkflow,
		},
	}, nil
}

// PromptProvider implementation
func (p *ServerPlugin) GetPrompts(ctx context.Context) ([]domain.Prompt, error) {
	return []domain.Prompt{
		{
			Name:        "workflow_architect",
			Description: "Guidance for composing valid workflow graphs",
			Builder:     p.buildWorkflowArchitectPrompt,
			Handler:     p.handleWorkflowArchitectPrompt,
		},
	}, nil
}

// Resource handlers

type workflowSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	NodeCount int    `json:"nodeCount"`
	EdgeCount int    `json:"edgeCount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (p *ServerPlugin) handleWorkflowListResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workflows, err := p.assembly.ListWorkflows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	summaries := make([]workflowSummary, len(workflows))
	for i, wf := range workflows {
		summaries[i] = workflowSummary{
			ID:        wf.ID,
			Name:      wf.Graph.Name,
			NodeCount: len(wf.Graph.Nodes),
			EdgeCount: len(wf.Graph.Edges),
			CreatedAt: wf.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt: wf.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	jsonData, err := json.MarshalIndent(map[string]any{
		"workflows": summaries,
		"count":     len(summaries),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workflows: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// Tool builders

func (p *ServerPlugin) buildGenerateWorkflowTool() mcp.Tool {
	return mcp.NewTool(
		"generate_workflow",
		mcp.WithDescription("Validate a candidate workflow graph (nodes, edges, name, description) and persist it. Returns corrective warnings applied during validation."),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description("Candidate graph as a JSON object: {nodes, edges, name, description}"),
		),
	)
}

func (p *ServerPlugin) buildUpdateWorkflowTool() mcp.Tool {
	return mcp.NewTool(
		"update_workflow",
		mcp.WithDescription("Validate a candidate workflow graph and replace the named workflow with it wholesale. The candidate must be a complete replacement, not a delta."),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Id of the workflow to replace"),
		),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description("Candidate graph as a JSON object: {nodes, edges, name, description}"),
		),
	)
}

func (p *ServerPlugin) buildGetWorkflowTool() mcp.Tool {
	return mcp.NewTool(
		"get_workflow",
		mcp.WithDescription("Fetch one persisted workflow graph by id"),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Id of the workflow"),
		),
	)
}

func (p *ServerPlugin) buildRunWorkflowTool() mcp.Tool {
	return mcp.NewTool(
		"run_workflow",
		mcp.WithDescription("Execute a persisted workflow from its trigger and report per-node outcomes"),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Id of the workflow to run"),
		),
		mcp.WithString("payload",
			mcp.Description("Optional JSON object standing in for the trigger event payload"),
		),
	)
}

// Tool handlers

func (p *ServerPlugin) handleGenerateWorkflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawGraph, err := req.RequireString("graph")
	if err != nil {
		return server.Error("missing_argument", "The candidate graph is required", "Pass the graph as a JSON object string"), nil
	}

	return p.assemble(ctx, wfapp.GenerateWorkflowCommand{RawGraph: []byte(rawGraph)}), nil
}

func (p *ServerPlugin) handleUpdateWorkflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID, err := req.RequireString("workflow_id")
	if err != nil {
		return server.Error("missing_argument", "The workflow id is required", ""), nil
	}
	rawGraph, err := req.RequireString("graph")
	if err != nil {
		return server.Error("missing_argument", "The candidate graph is required", "Pass the graph as a JSON object string"), nil
	}

	return p.assemble(ctx, wfapp.GenerateWorkflowCommand{
		RawGraph:   []byte(rawGraph),
		WorkflowID: workflowID,
	}), nil
}

func (p *ServerPlugin) assemble(ctx context.Context, cmd wfapp.GenerateWorkflowCommand) *mcp.CallToolResult {
	result, err := p.assembly.GenerateWorkflow(ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, wfdomain.ErrIncompleteNodes):
			return server.Error("incomplete_nodes", err.Error(),
				"Fill in triggerType/actionType for every trigger and action node, then submit the complete graph again")
		case errors.Is(err, wfdomain.ErrEmptyWorkflow):
			return server.Error("empty_workflow", "The candidate graph contains no usable nodes", "")
		case errors.Is(err, wfdomain.ErrWorkflowNotFound):
			return server.Error("workflow_not_found", fmt.Sprintf("Workflow '%s' not found", cmd.WorkflowID), "")
		default:
			return server.Error("assembly_failed", fmt.Sprintf("Failed to assemble workflow: %v", err), "")
		}
	}

	message := fmt.Sprintf("Workflow '%s' saved", result.WorkflowID)
	if result.Created {
		message = fmt.Sprintf("Workflow '%s' created", result.WorkflowID)
	}

	return server.NewResult(server.ToolResponse{
		Status:  server.ToolStatusOK,
		Message: message,
		Data:    result,
		Links: []server.ToolLink{
			{Rel: "run", Tool: "run_workflow", Params: map[string]any{"workflow_id": result.WorkflowID}},
		},
	})
}

func (p *ServerPlugin) handleGetWorkflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID, err := req.RequireString("workflow_id")
	if err != nil {
		return server.Error("missing_argument", "The workflow id is required", ""), nil
	}

	workflow, err := p.assembly.GetWorkflow(ctx, workflowID)
	if err != nil {
		if errors.Is(err, wfdomain.ErrWorkflowNotFound) {
			return server.Error("workflow_not_found", fmt.Sprintf("Workflow '%s' not found", workflowID), ""), nil
		}
		return server.Error("workflow_load_failed", fmt.Sprintf("Failed to load workflow: %v", err), ""), nil
	}

	return server.OK(fmt.Sprintf("Workflow '%s'", workflow.ID), workflow), nil
}

func (p *ServerPlugin) handleRunWorkflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflowID, err := req.RequireString("workflow_id")
	if err != nil {
		return server.Error("missing_argument", "The workflow id is required", ""), nil
	}

	workflow, err := p.assembly.GetWorkflow(ctx, workflowID)
	if err != nil {
		if errors.Is(err, wfdomain.ErrWorkflowNotFound) {
			return server.Error("workflow_not_found", fmt.Sprintf("Workflow '%s' not found", workflowID), ""), nil
		}
		return server.Error("workflow_load_failed", fmt.Sprintf("Failed to load workflow: %v", err), ""), nil
	}

	seed := map[string]any{}
	if rawPayload, ok := req.GetArguments()["payload"].(string); ok && rawPayload != "" {
		if err := json.Unmarshal([]byte(rawPayload), &seed); err != nil {
			return server.Error("invalid_payload", "The payload must be a JSON object", ""), nil
		}
	}

	runResult := p.runner.Run(ctx, workflow, seed)
	if !runResult.Success {
		return server.NewResult(server.ToolResponse{
			Status:  server.ToolStatusError,
			Code:    "run_failed",
			Message: fmt.Sprintf("Workflow run '%s' finished with failures", runResult.RunID),
			Data:    runResult,
		}), nil
	}

	return server.OK(fmt.Sprintf("Workflow run '%s' completed", runResult.RunID), runResult), nil
}
