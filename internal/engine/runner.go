package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/flowsmith/flowsmith/internal/step"
	"github.com/google/uuid"
)

// StepDispatcher resolves an action category to its business function.
// Satisfied by the integrations registry.
type StepDispatcher interface {
	Step(actionType string) (step.Func, bool)
}

// NodeOutcome records the result of one node execution within a run.
type NodeOutcome struct {
	NodeID     string      `json:"nodeId"`
	NodeType   string      `json:"nodeType"`
	ActionType string      `json:"actionType,omitempty"`
	Result     step.Result `json:"result"`
}

// RunResult summarizes one workflow run.
type RunResult struct {
	RunID      string        `json:"runId"`
	WorkflowID string        `json:"workflowId"`
	Success    bool          `json:"success"`
	Outcomes   []NodeOutcome `json:"outcomes"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// Config keys read from condition, transform and action nodes.
const (
	configKeyExpression     = "expression"
	configKeyProgram        = "program"
	configKeyIntegrationRef = "integrationRef"
	configKeyTrueTarget     = "trueTarget"
	configKeyFalseTarget    = "falseTarget"
)

// Runner executes a sanitized workflow graph. Each run is an independent
// unit of work: the only shared collaborator is the credential resolver
// inside the step contract, which is read-only. A failed step ends its path;
// there is no compensation for partially completed paths.
type Runner struct {
	contract *step.Contract
	steps    StepDispatcher
	logger   *slog.Logger
}

func NewRunner(contract *step.Contract, steps StepDispatcher, logger *slog.Logger) *Runner {
	return &Runner{contract: contract, steps: steps, logger: logger}
}

// Run walks the graph from its trigger node, threading each node's output
// payload into its successors. The seed payload stands in for the trigger
// event. Run never panics; step faults surface as failed outcomes.
func (r *Runner) Run(ctx context.Context, workflow *domain.Workflow, seed map[string]any) *RunResult {
	result := &RunResult{
		RunID:      uuid.NewString(),
		WorkflowID: workflow.ID,
		Success:    true,
		StartedAt:  time.Now().UTC(),
	}

	r.logger.Info("Starting workflow run",
		"run_id", result.RunID,
		"workflow_id", workflow.ID,
		"workflow_name", workflow.Graph.Name)

	triggers := workflow.Graph.Triggers()
	if len(triggers) == 0 {
		result.Success = false
		result.Outcomes = append(result.Outcomes, NodeOutcome{
			Result: step.Fail("The workflow has no trigger node to start from."),
		})
		result.FinishedAt = time.Now().UTC()
		return result
	}

	walk := &graphWalk{
		graph:   workflow.Graph,
		nodes:   indexNodes(workflow.Graph),
		visited: make(map[string]bool),
	}

	trigger := triggers[0]
	walk.visited[trigger.ID] = true
	result.Outcomes = append(result.Outcomes, NodeOutcome{
		NodeID:   trigger.ID,
		NodeType: string(trigger.Type),
		Result:   step.Succeed(seed),
	})

	r.runFrom(ctx, walk, trigger.ID, seed, result)

	result.FinishedAt = time.Now().UTC()
	r.logger.Info("Workflow run finished",
		"run_id", result.RunID,
		"workflow_id", workflow.ID,
		"success", result.Success,
		"nodes_executed", len(result.Outcomes))
	return result
}

// runFrom executes every successor of nodeID with the given payload.
func (r *Runner) runFrom(ctx context.Context, walk *graphWalk, nodeID string, payload map[string]any, result *RunResult) {
	for _, next := range walk.successors(nodeID) {
		if walk.visited[next] {
			continue
		}
		walk.visited[next] = true

		node, ok := walk.nodes[next]
		if !ok {
			continue
		}
		r.runNode(ctx, walk, node, payload, result)
	}
}

func (r *Runner) runNode(ctx context.Context, walk *graphWalk, node domain.Node, payload map[string]any, result *RunResult) {
	outcome := NodeOutcome{
		NodeID:   node.ID,
		NodeType: string(node.Type),
	}

	switch node.Type {
	case domain.NodeTypeAction:
		outcome.ActionType = node.ConfigString(domain.ConfigKeyActionType)
		outcome.Result = r.runAction(ctx, node, payload)
		result.Outcomes = append(result.Outcomes, outcome)
		if !outcome.Result.Success {
			result.Success = false
			return
		}
		r.runFrom(ctx, walk, node.ID, outcome.Result.Data, result)

	case domain.NodeTypeCondition:
		matched, res := evaluateCondition(node, payload)
		outcome.Result = res
		result.Outcomes = append(result.Outcomes, outcome)
		if !res.Success {
			result.Success = false
			return
		}
		r.routeCondition(ctx, walk, node, matched, payload, result)

	case domain.NodeTypeTransform:
		res := applyTransform(node, payload)
		outcome.Result = res
		result.Outcomes = append(result.Outcomes, outcome)
		if !res.Success {
			result.Success = false
			return
		}
		r.runFrom(ctx, walk, node.ID, res.Data, result)

	case domain.NodeTypeAdd:
		// Canvas placeholder, nothing to execute.

	default:
		outcome.Result = step.Fail("Unsupported node type %q.", node.Type)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Success = false
	}
}

func (r *Runner) runAction(ctx context.Context, node domain.Node, payload map[string]any) step.Result {
	actionType := node.ConfigString(domain.ConfigKeyActionType)
	fn, ok := r.steps.Step(actionType)
	if !ok {
		return step.Fail("Unsupported action type %q.", actionType)
	}

	return r.contract.Invoke(ctx, fn, step.Input{
		Action:         actionType,
		IntegrationRef: node.ConfigString(configKeyIntegrationRef),
		Params:         actionParams(node, payload),
	})
}

// routeCondition follows the matching branch. When the node's config names
// explicit true/false targets only the matching one is taken; otherwise the
// condition acts as a gate over all outgoing edges.
func (r *Runner) routeCondition(ctx context.Context, walk *graphWalk, node domain.Node, matched bool, payload map[string]any, result *RunResult) {
	trueTarget := node.ConfigString(configKeyTrueTarget)
	falseTarget := node.ConfigString(configKeyFalseTarget)

	if trueTarget == "" && falseTarget == "" {
		if matched {
			r.runFrom(ctx, walk, node.ID, payload, result)
		}
		return
	}

	target := trueTarget
	if !matched {
		target = falseTarget
	}
	if target == "" || walk.visited[target] {
		return
	}
	next, ok := walk.nodes[target]
	if !ok {
		return
	}
	walk.visited[target] = true
	r.runNode(ctx, walk, next, payload, result)
}

// actionParams merges the incoming payload under the node's own config, so
// explicit configuration wins over upstream output.
func actionParams(node domain.Node, payload map[string]any) map[string]any {
	params := make(map[string]any, len(node.Data.Config)+len(payload))
	for k, v := range payload {
		params[k] = v
	}
	for k, v := range node.Data.Config {
		switch k {
		case domain.ConfigKeyActionType, configKeyIntegrationRef:
			continue
		}
		params[k] = v
	}
	return params
}

type graphWalk struct {
	graph   domain.Graph
	nodes   map[string]domain.Node
	visited map[string]bool
}

func (w *graphWalk) successors(nodeID string) []string {
	var out []string
	for _, e := range w.graph.Edges {
		if e.Source == nodeID {
			out = append(out, e.Target)
		}
	}
	return out
}

func indexNodes(graph domain.Graph) map[string]domain.Node {
	nodes := make(map[string]domain.Node, len(graph.Nodes))
	for _, n := range graph.Nodes {
		nodes[n.ID] = n
	}
	return nodes
}
