package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeBadRequest  Code = "bad_request"
	CodeValidation  Code = "validation_failed"
	CodeInternal    Code = "internal_error"
	CodeNotFound    Code = "not_found"
	CodeUnavailable Code = "unavailable"

	// Registration pipeline outcomes. The handler maps these onto HTTP
	// statuses; workers and audit records carry them verbatim.
	CodeNotInGroup         Code = "not_in_group"
	CodeLimitExceeded      Code = "limit_exceeded"
	CodeLoginTaken         Code = "login_taken"
	CodeStorageUnavailable Code = "storage_unavailable"
	CodeQueueUnavailable   Code = "queue_unavailable"

	// Legacy game-server transport and protocol outcomes.
	CodeGameServerTimeout     Code = "game_server_timeout"
	CodeGameServerUnreachable Code = "game_server_unreachable"
	CodeGameServerNoResponse  Code = "game_server_no_response"
	CodeGameServerError       Code = "game_server_error"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the domain code from an error, or CodeInternal when the
// error carries no domain classification.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
