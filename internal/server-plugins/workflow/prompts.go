package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const workflowArchitectTemplate = `You are composing a workflow graph for the request: %q.

Return a complete graph as a JSON object with this shape:

{
  "name": "...",
  "description": "...",
  "nodes": [
    {"id": "n1", "type": "trigger", "data": {"config": {"triggerType": "..."}}},
    {"id": "n2", "type": "action", "data": {"config": {"actionType": "...", "integrationRef": "..."}}}
  ],
  "edges": [
    {"source": "n1", "target": "n2"}
  ]
}

Rules the server enforces:
- Exactly one trigger node. Extra triggers are dropped (first one wins).
- Every trigger needs a non-empty config.triggerType; every action a
  non-empty config.actionType. Incomplete nodes reject the whole graph.
- Supported action types: %s
- Supported trigger types: %s
- Condition nodes carry config.expression (a boolean expression over
  "payload"); transform nodes carry config.program (a jq program).
- When updating an existing workflow, return the complete replacement
  graph, never a delta.`

func (p *ServerPlugin) buildWorkflowArchitectPrompt() mcp.Prompt {
	return mcp.NewPrompt(
		"workflow_architect",
		mcp.WithPromptDescription("Guidance for composing valid workflow graphs"),
		mcp.WithArgument("request",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("What the workflow should accomplish, in plain language"),
		),
	)
}

func (p *ServerPlugin) handleWorkflowArchitectPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	request, ok := req.Params.Arguments["request"]
	if !ok || request == "" {
		return &mcp.GetPromptResult{
			Description: "request parameter is required",
		}, fmt.Errorf("request parameter is required")
	}

	promptText := fmt.Sprintf(workflowArchitectTemplate,
		request,
		strings.Join(p.catalog.ActionTypes(), ", "),
		strings.Join(p.catalog.TriggerTypes(), ", "),
	)

	return &mcp.GetPromptResult{
		Description: "Guidance for composing valid workflow graphs",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent{Type: "text", Text: promptText},
			},
		},
	}, nil
}
