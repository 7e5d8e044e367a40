package domain

import "fmt"

// Warning codes for non-fatal corrections applied during sanitizing.
const (
	WarningEdgeTypeNormalized    = "EDGE_TYPE_NORMALIZED"
	WarningTriggerCountCorrected = "TRIGGER_COUNT_CORRECTED"
	WarningDanglingEdgeDropped   = "DANGLING_EDGE_DROPPED"
)

// Warning describes one corrective action taken on a candidate graph. These
// surface to the user as a notice, not an error.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Outcome is the result of sanitizing a candidate graph.
type Outcome struct {
	Graph    Graph
	Warnings []Warning

	// ActiveNodeID is the id of the first node marked selected, propagated
	// so the caller can restore the canvas selection. Empty when no node
	// claims the selection.
	ActiveNodeID string
}

// Sanitizer reconciles an arbitrary candidate graph, typically produced by
// a language model, into a well-formed executable workflow graph.
type Sanitizer struct {
	supportedActions []string
}

// NewSanitizer builds a sanitizer that reports the given closed set of
// supported action categories in its fatal diagnostics.
func NewSanitizer(supportedActions []string) *Sanitizer {
	return &Sanitizer{supportedActions: supportedActions}
}

// Sanitize corrects candidate and returns the corrected graph with the list
// of corrective actions taken. It is a pure function of its inputs: the
// same candidate always yields the same graph and warnings.
//
// When existing is non-nil the corrected candidate replaces it wholesale;
// the graph source is expected to have produced a complete replacement, not
// a delta. The only values carried over are the name and description, and
// only when the candidate omits them.
//
// A graph containing incomplete trigger or action nodes fails outright with
// an *IncompleteNodesError and no corrected graph is produced.
func (s *Sanitizer) Sanitize(candidate Graph, existing *Graph) (*Outcome, error) {
	var warnings []Warning

	graph := candidate
	graph.Nodes = append([]Node(nil), candidate.Nodes...)

	// Step 1: force every edge onto the canonical connector type so
	// rendering and traversal behave uniformly downstream.
	graph.Edges, warnings = normalizeEdgeTypes(candidate.Edges, warnings)

	// Step 2: enforce the single-trigger invariant and drop edges left
	// dangling by removed nodes.
	graph, warnings = enforceSingleTrigger(graph, warnings)
	graph, warnings = dropDanglingEdges(graph, warnings)

	// Step 3: completeness. Placeholder nodes are exempt; a graph with an
	// incomplete real node must never be persisted, not even partially.
	if incomplete := incompleteNodeIDs(graph); len(incomplete) > 0 {
		return nil, &IncompleteNodesError{
			NodeIDs:          incomplete,
			SupportedActions: s.supportedActions,
		}
	}

	// Step 4: merge policy. The corrected candidate replaces the existing
	// graph wholesale; only an omitted name or description falls back to
	// the previous value.
	if existing != nil {
		if graph.Name == "" {
			graph.Name = existing.Name
		}
		if graph.Description == "" {
			graph.Description = existing.Description
		}
	}

	return &Outcome{
		Graph:        graph,
		Warnings:     warnings,
		ActiveNodeID: firstSelected(graph),
	}, nil
}

func normalizeEdgeTypes(edges []Edge, warnings []Warning) ([]Edge, []Warning) {
	normalized := make([]Edge, len(edges))
	changed := 0
	for i, e := range edges {
		if e.Type != EdgeTypeDefault {
			changed++
		}
		e.Type = EdgeTypeDefault
		normalized[i] = e
	}
	if changed > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningEdgeTypeNormalized,
			Message: fmt.Sprintf("%d connection(s) were normalized to the standard connector type", changed),
		})
	}
	return normalized, warnings
}

func enforceSingleTrigger(graph Graph, warnings []Warning) (Graph, []Warning) {
	triggers := graph.Triggers()
	if len(triggers) <= 1 {
		return graph, warnings
	}

	// Keep the first trigger by input order; drop the rest.
	kept := triggers[0].ID
	dropped := make(map[string]bool, len(triggers)-1)
	for _, t := range triggers[1:] {
		dropped[t.ID] = true
	}

	var nodes []Node
	for _, n := range graph.Nodes {
		if dropped[n.ID] {
			continue
		}
		nodes = append(nodes, n)
	}
	graph.Nodes = nodes

	var edges []Edge
	for _, e := range graph.Edges {
		if dropped[e.Source] || dropped[e.Target] {
			continue
		}
		edges = append(edges, e)
	}
	graph.Edges = edges

	warnings = append(warnings, Warning{
		Code: WarningTriggerCountCorrected,
		Message: fmt.Sprintf(
			"A workflow can only have one trigger: %d triggers were reduced to 1 (kept %q)",
			len(triggers), kept,
		),
	})
	return graph, warnings
}

// dropDanglingEdges removes edges referencing node ids absent from the
// graph, generalizing the trigger-edge cleanup to any missing endpoint.
func dropDanglingEdges(graph Graph, warnings []Warning) (Graph, []Warning) {
	present := make(map[string]bool, len(graph.Nodes))
	for _, n := range graph.Nodes {
		present[n.ID] = true
	}

	var edges []Edge
	droppedCount := 0
	for _, e := range graph.Edges {
		if !present[e.Source] || !present[e.Target] {
			droppedCount++
			continue
		}
		edges = append(edges, e)
	}
	graph.Edges = edges

	if droppedCount > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningDanglingEdgeDropped,
			Message: fmt.Sprintf("%d connection(s) referenced nodes that do not exist and were removed", droppedCount),
		})
	}
	return graph, warnings
}

func incompleteNodeIDs(graph Graph) []string {
	var ids []string
	for _, n := range graph.Nodes {
		if n.IsPlaceholder() {
			continue
		}
		if n.Incomplete() {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func firstSelected(graph Graph) string {
	for _, n := range graph.Nodes {
		if n.Selected {
			return n.ID
		}
	}
	return ""
}
