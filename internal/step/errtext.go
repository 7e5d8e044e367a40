package step

import (
	"fmt"
	"strings"
)

const genericFaultMessage = "An unexpected error occurred while running this step."

// ErrorText extracts a displayable message from an error, falling back to a
// generic placeholder when the error carries no usable text.
func ErrorText(err error) string {
	if err == nil {
		return genericFaultMessage
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return genericFaultMessage
	}
	return msg
}

// faultText extracts a displayable message from a recovered panic value.
// Business functions are not expected to panic, but a fault inside one must
// surface as a bounded failure message, never crash the workflow run.
func faultText(v any) string {
	switch val := v.(type) {
	case nil:
		return genericFaultMessage
	case error:
		return ErrorText(val)
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return s
		}
		return genericFaultMessage
	case fmt.Stringer:
		if s := strings.TrimSpace(val.String()); s != "" {
			return s
		}
		return genericFaultMessage
	default:
		return genericFaultMessage
	}
}
