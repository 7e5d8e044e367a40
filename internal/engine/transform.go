package engine

import (
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/flowsmith/flowsmith/internal/step"
	"github.com/itchyny/gojq"
)

// applyTransform runs the node's jq program over the incoming payload. jq
// programs can emit a stream of values; the first emission wins and becomes
// the new payload, so a runaway generator never stalls the run.
func applyTransform(node domain.Node, payload map[string]any) step.Result {
	program := node.ConfigString(configKeyProgram)
	if program == "" {
		return step.Fail("Transform node %q has no program configured.", node.ID)
	}

	query, err := gojq.Parse(program)
	if err != nil {
		return step.Fail("Transform program is invalid: %s", step.ErrorText(err))
	}

	input := map[string]any{}
	for k, v := range payload {
		input[k] = v
	}

	iter := query.Run(any(input))
	v, ok := iter.Next()
	if !ok {
		return step.Fail("Transform program produced no output.")
	}
	if err, isErr := v.(error); isErr {
		return step.Fail("Transform program failed: %s", step.ErrorText(err))
	}
	if out, isMap := v.(map[string]any); isMap {
		return step.Succeed(out)
	}
	// Non-object emissions are wrapped so downstream nodes always see an
	// object payload.
	return step.Succeed(map[string]any{"value": v})
}
