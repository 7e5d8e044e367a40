package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Workflow domain specific errors
var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrEmptyWorkflow    = errors.New("workflow has no usable nodes")
	ErrIncompleteNodes  = errors.New("workflow contains incomplete nodes")
)

// IncompleteNodesError blocks persistence of a graph whose trigger or action
// nodes are missing their category binding. The message names the offending
// node count and the closed set of supported action categories so the
// diagnostic is directly actionable.
type IncompleteNodesError struct {
	NodeIDs          []string
	SupportedActions []string
}

func (e *IncompleteNodesError) Error() string {
	return fmt.Sprintf(
		"%d incomplete node(s): every trigger needs a triggerType and every action needs an actionType. Supported action types: %s",
		len(e.NodeIDs),
		strings.Join(e.SupportedActions, ", "),
	)
}

func (e *IncompleteNodesError) Unwrap() error {
	return ErrIncompleteNodes
}
