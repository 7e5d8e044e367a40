package domain

import (
	"errors"

	"github.com/flowsmith/flowsmith/internal/integrations/httpx"
	"github.com/flowsmith/flowsmith/internal/step"
)

// FailureFrom converts an error from the HTTP helper into the uniform step
// failure shape: upstream statuses keep their parsed error text, anything
// else is reported as unreachable.
func FailureFrom(err error) step.Result {
	var statusErr *httpx.StatusError
	if errors.As(err, &statusErr) {
		return step.UpstreamHTTPError(statusErr.StatusCode, statusErr.Message)
	}
	return step.UpstreamUnreachable(err)
}
