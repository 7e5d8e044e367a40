package step

import (
	"context"
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/credential"
	"github.com/flowsmith/flowsmith/pkg/logger"
)

// Input carries everything a step invocation needs: the action being run,
// an optional integration reference for credential lookup, and the caller
// supplied parameters.
type Input struct {
	Action         string         `json:"action"`
	IntegrationRef string         `json:"integrationRef,omitempty"`
	Params         map[string]any `json:"params,omitempty"`
}

// Param returns the named parameter rendered as a string, with ok reporting
// whether it was present and non-empty. Numeric JSON values are accepted.
func (in Input) Param(name string) (string, bool) {
	v, ok := in.Params[name]
	if !ok {
		return "", false
	}
	s := stringify(v)
	return s, s != ""
}

// Func is the business function wrapped by the contract. All network I/O
// happens inside the function; it reports every outcome through Result and
// must not let faults escape to the caller.
type Func func(ctx context.Context, in Input, creds credential.Set) Result

// Contract gives every integration step identical externally observable
// behavior: credentials are resolved fresh per invocation, the invocation is
// logged with secret fields redacted, and any fault inside the business
// function is converted into a Failure result.
type Contract struct {
	resolver credential.Resolver
	logger   *slog.Logger
}

func NewContract(resolver credential.Resolver, log *slog.Logger) *Contract {
	return &Contract{resolver: resolver, logger: log}
}

// Invoke runs fn under the step contract and returns its Result. It never
// panics and never returns an empty failure message.
func (c *Contract) Invoke(ctx context.Context, fn Func, in Input) (result Result) {
	creds := c.resolver.Resolve(ctx, in.IntegrationRef)

	defer func() {
		if r := recover(); r != nil {
			result = Fail("%s", faultText(r))
		}
		c.logOutcome(in, result)
	}()

	result = fn(ctx, in, creds)
	if !result.Success && result.Message == "" {
		result.Message = genericFaultMessage
	}
	return result
}

// logOutcome records the redacted input and the outcome. Logging observes
// and forwards: it never alters or suppresses the result, even if the
// logging itself faults.
func (c *Contract) logOutcome(in Input, result Result) {
	defer func() {
		_ = recover()
	}()

	if result.Success {
		c.logger.Info("Step completed",
			"action", in.Action,
			"integration_ref", in.IntegrationRef,
			"params", redactParams(in.Params))
		return
	}
	c.logger.Warn("Step failed",
		"action", in.Action,
		"integration_ref", in.IntegrationRef,
		"params", redactParams(in.Params),
		"message", result.Message)
}

func redactParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		if logger.SecretKey(k) {
			out[k] = "[redacted]"
			continue
		}
		out[k] = v
	}
	return out
}
