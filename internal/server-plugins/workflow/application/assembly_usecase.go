package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
)

// GenerateWorkflowCommand carries one raw candidate graph, as produced by
// the AI assistant or a manual edit, into the assembly pipeline.
type GenerateWorkflowCommand struct {
	// RawGraph is the untrusted candidate graph JSON.
	RawGraph []byte

	// WorkflowID selects the update path: when set, the sanitized candidate
	// replaces that workflow wholesale. Empty means create.
	WorkflowID string
}

// GenerateWorkflowResult summarizes what was assembled and which corrective
// actions were taken, for user-facing notices.
type GenerateWorkflowResult struct {
	WorkflowID   string           `json:"workflowId"`
	Name         string           `json:"name,omitempty"`
	Created      bool             `json:"created"`
	NodeCount    int              `json:"nodeCount"`
	EdgeCount    int              `json:"edgeCount"`
	ActiveNodeID string           `json:"activeNodeId,omitempty"`
	Warnings     []domain.Warning `json:"warnings,omitempty"`
}

// AssemblyUseCase sanitizes candidate graphs and persists the result.
type AssemblyUseCase struct {
	sanitizer *domain.Sanitizer
	repo      domain.Repository
	logger    *slog.Logger
}

func NewAssemblyUseCase(sanitizer *domain.Sanitizer, repo domain.Repository, logger *slog.Logger) *AssemblyUseCase {
	return &AssemblyUseCase{
		sanitizer: sanitizer,
		repo:      repo,
		logger:    logger,
	}
}

// GenerateWorkflow decodes, sanitizes and persists a candidate graph.
// Sanitizer failures and empty graphs block persistence; sanitizer warnings
// are passed through for display.
func (uc *AssemblyUseCase) GenerateWorkflow(ctx context.Context, cmd GenerateWorkflowCommand) (*GenerateWorkflowResult, error) {
	candidate := domain.DecodeGraph(cmd.RawGraph)

	var existing *domain.Graph
	if cmd.WorkflowID != "" {
		workflow, err := uc.repo.Get(ctx, cmd.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow %s: %w", cmd.WorkflowID, err)
		}
		existing = &workflow.Graph
	}

	outcome, err := uc.sanitizer.Sanitize(candidate, existing)
	if err != nil {
		uc.logger.Warn("Candidate graph rejected",
			"workflow_id", cmd.WorkflowID,
			"error", err)
		return nil, err
	}

	if realNodeCount(outcome.Graph) == 0 {
		return nil, domain.ErrEmptyWorkflow
	}

	result := &GenerateWorkflowResult{
		Name:         outcome.Graph.Name,
		NodeCount:    len(outcome.Graph.Nodes),
		EdgeCount:    len(outcome.Graph.Edges),
		ActiveNodeID: outcome.ActiveNodeID,
		Warnings:     outcome.Warnings,
	}

	if cmd.WorkflowID != "" {
		if err := uc.repo.Update(ctx, cmd.WorkflowID, outcome.Graph); err != nil {
			return nil, fmt.Errorf("failed to update workflow: %w", err)
		}
		result.WorkflowID = cmd.WorkflowID
		return result, nil
	}

	workflow, err := uc.repo.Create(ctx, outcome.Graph)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}
	result.WorkflowID = workflow.ID
	result.Created = true
	return result, nil
}

// GetWorkflow returns one persisted workflow.
func (uc *AssemblyUseCase) GetWorkflow(ctx context.Context, id string) (*domain.Workflow, error) {
	return uc.repo.Get(ctx, id)
}

// ListWorkflows returns all persisted workflows in creation order.
func (uc *AssemblyUseCase) ListWorkflows(ctx context.Context) ([]*domain.Workflow, error) {
	return uc.repo.List(ctx)
}

func realNodeCount(graph domain.Graph) int {
	count := 0
	for _, n := range graph.Nodes {
		if !n.IsPlaceholder() {
			count++
		}
	}
	return count
}
