package step

import "fmt"

// Result is the uniform outcome of one step invocation. Exactly one variant
// is populated: a successful result carries Data, a failed one carries a
// human-readable Message suitable for direct display. Steps never surface
// raw stack traces or unbounded error dumps through Message.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Succeed builds a success result.
func Succeed(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failure result with a formatted message.
func Fail(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// MissingCredential reports a required secret key absent from the resolved
// set. The message names the exact configuration key the user has to add.
func MissingCredential(key string) Result {
	return Fail("%s is not configured. Please add it in Project Integrations.", key)
}

// InvalidInput reports a caller-supplied argument that failed a local
// parse or range check. No external call is made for such inputs.
func InvalidInput(format string, args ...any) Result {
	return Fail(format, args...)
}

// UpstreamHTTPError reports a non-success status from an external API,
// preferring the upstream-provided error text when present.
func UpstreamHTTPError(status int, upstreamMessage string) Result {
	if upstreamMessage != "" {
		return Fail("%s", upstreamMessage)
	}
	return Fail("HTTP %d", status)
}

// UpstreamUnreachable reports a transport-level failure reaching an
// external API.
func UpstreamUnreachable(err error) Result {
	return Fail("%s", ErrorText(err))
}
