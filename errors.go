package forge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a machine-readable error code.
// Callers are expected to match on codes (via errors.As or the Is* helpers),
// never on message text.
type ErrorCode string

const (
	// CodeInvalidArgument means the caller misused the API: a missing
	// required identifier or option, or a value of the wrong shape.
	// Raised before any request is made.
	CodeInvalidArgument ErrorCode = "invalid_argument"

	CodeUnauthorized  ErrorCode = "unauthorized"         // HTTP 401
	CodeForbidden     ErrorCode = "forbidden"            // HTTP 403
	CodeNotFound      ErrorCode = "not_found"            // HTTP 404
	CodeUnprocessable ErrorCode = "unprocessable_entity" // HTTP 422
	CodeClient        ErrorCode = "client_error"         // other 4xx
	CodeService       ErrorCode = "service_error"        // 5xx and anything else unexpected
)

// Error is the standard error carried by every failed call.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Status  int            `json:"status,omitempty"` // original HTTP status, 0 for pre-request errors
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new client error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new client error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Status:  e.Status,
		Message: e.Message,
		Details: details,
	}
}

// statusToCode maps an HTTP status code to an ErrorCode.
func statusToCode(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnprocessableEntity:
		return CodeUnprocessable
	}
	switch {
	case status >= 400 && status < 500:
		return CodeClient
	default:
		// 5xx, and anything else the 2xx check already ruled out.
		// Unexpected is an error, never silent success.
		return CodeService
	}
}

// apiErrorBody is the error envelope the API returns on failures.
type apiErrorBody struct {
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors"`
}

// translateStatus converts a non-success response into an *Error.
// Returns nil for 2xx. Translation runs before any response mapping, so an
// error response never produces a partial result.
func translateStatus(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := http.StatusText(status)
	var details map[string]any
	if len(body) > 0 {
		var eb apiErrorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			if eb.Message != "" {
				msg = eb.Message
			}
			details = eb.Errors
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", status)
	}

	return &Error{
		Code:    statusToCode(status),
		Status:  status,
		Message: msg,
		Details: details,
	}
}

// errorCode extracts the ErrorCode from err, or "" if err is not an *Error.
func errorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalidArgument reports whether err is a caller-misuse error.
func IsInvalidArgument(err error) bool { return errorCode(err) == CodeInvalidArgument }

// IsNotFound reports whether err is an HTTP 404 error.
func IsNotFound(err error) bool { return errorCode(err) == CodeNotFound }

// IsUnauthorized reports whether err is an HTTP 401 error.
func IsUnauthorized(err error) bool { return errorCode(err) == CodeUnauthorized }

// IsForbidden reports whether err is an HTTP 403 error.
func IsForbidden(err error) bool { return errorCode(err) == CodeForbidden }

// IsUnprocessable reports whether err is an HTTP 422 error.
func IsUnprocessable(err error) bool { return errorCode(err) == CodeUnprocessable }

// IsService reports whether err is a server-side (5xx or unexpected) error.
func IsService(err error) bool { return errorCode(err) == CodeService }
