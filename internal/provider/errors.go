package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when calls are being shed because the
// upstream is failing (circuit open).
var ErrUnavailable = errors.New("provider: upstream unavailable")

// ConfigurationError means the adapter cannot issue a call at all,
// typically because no credential is configured.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "provider: configuration: " + e.Msg }

// APIError is a non-2xx answer from the upstream API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider: api error: status %d", e.StatusCode)
}

// NetworkError covers transport failures and timeouts.
type NetworkError struct {
	Msg string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "provider: network: " + e.Msg
	}
	return fmt.Sprintf("provider: network: %s: %v", e.Msg, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// InvalidResponseJSONError means the upstream answered but the payload
// could not be parsed as JSON.
type InvalidResponseJSONError struct {
	Msg     string
	Preview string
	Err     error
}

func (e *InvalidResponseJSONError) Error() string {
	var b strings.Builder
	b.WriteString("provider: invalid response json: ")
	b.WriteString(e.Msg)
	if e.Preview != "" {
		b.WriteString(" (content: ")
		b.WriteString(e.Preview)
		b.WriteString(")")
	}
	return b.String()
}

func (e *InvalidResponseJSONError) Unwrap() error { return e.Err }

// Issue is one schema violation.
type Issue struct {
	Path    string
	Message string
}

// SchemaValidationError means the payload parsed but does not match the
// requested schema.
type SchemaValidationError struct {
	Issues []Issue
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "provider: schema validation failed: " + strings.Join(parts, "; ")
}

// Preview truncates s to n runes for inclusion in error messages.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
