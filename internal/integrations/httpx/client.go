package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/flowsmith/flowsmith/pkg/config"
)

// maxErrorBody caps how much of an upstream error response is read when
// extracting a displayable message.
const maxErrorBody = 64 * 1024

// Request describes one JSON call to a third-party API.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   any // JSON-encoded when non-nil
}

// StatusError is returned for non-success HTTP statuses. Message carries the
// upstream-provided error text when the body yielded one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Client issues JSON requests to third-party APIs on behalf of integration
// steps. Timeouts are owned by the underlying http.Client; steps treat any
// transport fault as terminal and never retry.
type Client struct {
	hc     *http.Client
	logger *slog.Logger
}

func NewClient(cfg config.HTTPConfig, logger *slog.Logger) *Client {
	return &Client{
		hc:     &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// NewClientWithTransport builds a client on a caller-supplied round tripper.
func NewClientWithTransport(rt http.RoundTripper, logger *slog.Logger) *Client {
	return &Client{
		hc:     &http.Client{Transport: rt},
		logger: logger,
	}
}

// DoJSON issues the request and decodes the response body as a JSON object.
// Non-2xx statuses return a *StatusError; an empty or non-object success
// body yields an empty map.
func (c *Client) DoJSON(ctx context.Context, req Request) (map[string]any, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	c.logger.Debug("Issuing integration request",
		"method", req.Method,
		"url", req.URL)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", httpReq.URL.Host, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("Integration request returned error status",
			"method", req.Method,
			"url", req.URL,
			"status", resp.StatusCode)
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return nil, &StatusError{StatusCode: resp.StatusCode}
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    parseErrorBody(raw),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", httpReq.URL.Host, err)
	}

	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("unexpected response from %s: %w", httpReq.URL.Host, err)
	}
	return decoded, nil
}

// parseErrorBody attempts to extract a structured error message from an
// upstream error response. Returns "" when nothing displayable was found,
// letting StatusError fall back to "HTTP <status>".
func parseErrorBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ""
	}

	for _, key := range []string{"errors", "error", "message", "error_description"} {
		v, ok := decoded[key]
		if !ok {
			continue
		}
		if msg := renderErrorValue(v); msg != "" {
			return msg
		}
	}
	return ""
}

func renderErrorValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		if len(val) == 0 {
			return ""
		}
		return renderErrorValue(val[0])
	case map[string]any:
		// Shopify-style {"errors": {"field": ["msg"]}}; render the first entry
		for field, inner := range val {
			if msg := renderErrorValue(inner); msg != "" {
				return fmt.Sprintf("%s: %s", field, msg)
			}
		}
		return ""
	default:
		return ""
	}
}
