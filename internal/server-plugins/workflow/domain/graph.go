package domain

import "time"

// NodeType classifies a workflow node.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"
	NodeTypeAction    NodeType = "action"
	NodeTypeCondition NodeType = "condition"
	NodeTypeTransform NodeType = "transform"

	// NodeTypeAdd is the canvas placeholder for "add a node here". It is
	// never a real node and is excluded from all graph-integrity checks.
	NodeTypeAdd NodeType = "add"
)

// EdgeTypeDefault is the canonical connector type used by manually drawn
// edges. Sanitizing forces every edge onto it regardless of source.
const EdgeTypeDefault = "default"

// Config keys whose presence makes a trigger or action node complete.
const (
	ConfigKeyTriggerType = "triggerType"
	ConfigKeyActionType  = "actionType"
)

// NodeData carries the node's category binding and free-form configuration.
type NodeData struct {
	Type   string         `json:"type,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Data     NodeData `json:"data"`
	Selected bool     `json:"selected,omitempty"`
}

// ConfigString returns a string-valued config entry, "" when absent or of
// another shape.
func (n Node) ConfigString(key string) string {
	if n.Data.Config == nil {
		return ""
	}
	s, _ := n.Data.Config[key].(string)
	return s
}

// IsPlaceholder reports whether the node is the canvas "add" placeholder.
func (n Node) IsPlaceholder() bool {
	return n.Type == NodeTypeAdd
}

// Incomplete reports whether the node is missing the config key its type
// requires. Condition and transform nodes have no required key.
func (n Node) Incomplete() bool {
	switch n.Type {
	case NodeTypeTrigger:
		return n.ConfigString(ConfigKeyTriggerType) == ""
	case NodeTypeAction:
		return n.ConfigString(ConfigKeyActionType) == ""
	default:
		return false
	}
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

// Graph is a candidate or corrected workflow graph.
type Graph struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges"`
}

// Triggers returns the trigger nodes in input order.
func (g Graph) Triggers() []Node {
	var triggers []Node
	for _, n := range g.Nodes {
		if n.Type == NodeTypeTrigger {
			triggers = append(triggers, n)
		}
	}
	return triggers
}

// HasNode reports whether a node with the given id is present.
func (g Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Workflow is a persisted, sanitized graph.
type Workflow struct {
	ID        string    `json:"id"`
	Graph     Graph     `json:"graph"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
