package engine

import (
	"github.com/expr-lang/expr"
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/flowsmith/flowsmith/internal/step"
)

// evaluateCondition compiles and runs the node's boolean expression against
// the incoming payload. A missing or invalid expression is a failed outcome,
// not a fault.
func evaluateCondition(node domain.Node, payload map[string]any) (bool, step.Result) {
	expression := node.ConfigString(configKeyExpression)
	if expression == "" {
		return false, step.Fail("Condition node %q has no expression configured.", node.ID)
	}

	env := map[string]any{"payload": payload}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, step.Fail("Condition expression is invalid: %s", step.ErrorText(err))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, step.Fail("Condition expression failed: %s", step.ErrorText(err))
	}

	matched, ok := out.(bool)
	if !ok {
		return false, step.Fail("Condition expression did not produce a boolean.")
	}

	return matched, step.Succeed(map[string]any{"matched": matched})
}
