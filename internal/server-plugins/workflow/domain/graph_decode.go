package domain

import "encoding/json"

// DecodeGraph parses an untrusted candidate graph. The payload typically
// comes from a language model, so every field is treated as potentially
// absent or malformed: unparseable collections decode as empty, malformed
// entries are skipped, and nothing here is treated as fatal. Integrity is
// the sanitizer's job, not the decoder's.
func DecodeGraph(raw []byte) Graph {
	var envelope struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Nodes       json.RawMessage `json:"nodes"`
		Edges       json.RawMessage `json:"edges"`
	}
	// A payload that is not even a JSON object decodes as an empty graph.
	_ = json.Unmarshal(raw, &envelope)

	return Graph{
		Name:        envelope.Name,
		Description: envelope.Description,
		Nodes:       decodeNodes(envelope.Nodes),
		Edges:       decodeEdges(envelope.Edges),
	}
}

func decodeNodes(raw json.RawMessage) []Node {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	var nodes []Node
	for _, element := range elements {
		var node Node
		if err := json.Unmarshal(element, &node); err != nil {
			continue
		}
		if node.ID == "" {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func decodeEdges(raw json.RawMessage) []Edge {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	var edges []Edge
	for _, element := range elements {
		var edge Edge
		if err := json.Unmarshal(element, &edge); err != nil {
			continue
		}
		if edge.Source == "" || edge.Target == "" {
			continue
		}
		edges = append(edges, edge)
	}
	return edges
}
