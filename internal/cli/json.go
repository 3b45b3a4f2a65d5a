package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/monitor"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeHTTPStatus     = "HTTP_STATUS"
	ErrCodeUnreachable    = "ENDPOINT_UNREACHABLE"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeServeFailed    = "SERVE_FAILED"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	// Poll errors first: they may be wrapped in a structured error.
	var pollErr *monitor.PollError
	if stderrors.As(err, &pollErr) {
		return pollErrorToJSON(pollErr)
	}

	if bsErr, ok := err.(*errors.Error); ok {
		return &JSONError{
			Code:       mapErrorCode(bsErr.Code, bsErr.Message),
			Message:    bsErr.Message,
			Suggestion: bsErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(message)
		if strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrFetch:
		return ErrCodeFetchFailed
	case errors.ErrRender:
		return ErrCodeRenderFailed
	case errors.ErrServe:
		return ErrCodeServeFailed
	}

	return ErrCodeUnknown
}

// pollErrorToJSON distinguishes HTTP status failures from transport failures.
func pollErrorToJSON(pe *monitor.PollError) *JSONError {
	if pe.StatusCode != 0 {
		return &JSONError{
			Code:       ErrCodeHTTPStatus,
			Message:    pe.Error(),
			Suggestion: "Check the stats path and that the bot server is healthy",
			Details:    map[string]interface{}{"status": pe.StatusCode},
		}
	}
	return &JSONError{
		Code:       ErrCodeUnreachable,
		Message:    pe.Error(),
		Suggestion: "Check the endpoint URL and that the bot server is running",
	}
}
