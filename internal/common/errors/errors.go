// Package errors provides standardized error handling for the approval
// adapter layer.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller supplied insufficient identifying fields. Not retryable.
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"

	// Credential or token exchange with a backend failed.
	ErrCodeUpstreamAuthFailed ErrorCode = "UPSTREAM_AUTH_FAILED"

	// A backend detail or pending-list call returned a non-success status.
	ErrCodeUpstreamFetchFailed ErrorCode = "UPSTREAM_FETCH_FAILED"

	// A backend approval call returned a non-success status.
	ErrCodeUpstreamApprovalFailed ErrorCode = "UPSTREAM_APPROVAL_FAILED"

	// The backend answered successfully but the expected structure is
	// absent. Indicates upstream contract drift, not a transient failure.
	ErrCodeInvalidResponseShape ErrorCode = "INVALID_RESPONSE_SHAPE"

	// The adapter does not implement the requested action tag.
	ErrCodeUnsupportedAction ErrorCode = "UNSUPPORTED_ACTION"
)

// Error is a structured application error. UpstreamStatus and UpstreamBody
// preserve the backend response for diagnostics; callers must surface them
// distinctly from Message, never merged into one opaque string.
type Error struct {
	Code           ErrorCode `json:"code"`
	Message        string    `json:"message"`
	Details        string    `json:"details,omitempty"`
	UpstreamStatus int       `json:"upstreamStatus,omitempty"`
	UpstreamBody   string    `json:"upstreamBody,omitempty"`
	Retryable      bool      `json:"retryable"`
	Timestamp      time.Time `json:"timestamp"`
}

func (e *Error) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("Error[%s]: %s (upstream status %d)", e.Code, e.Message, e.UpstreamStatus)
	}
	return fmt.Sprintf("Error[%s]: %s", e.Code, e.Message)
}

// NewMissingParameterError creates a non-retryable caller error.
func NewMissingParameterError(details string) *Error {
	return &Error{
		Code:      ErrCodeMissingParameter,
		Message:   "Required identifying parameters are missing",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamAuthError creates an authentication exchange error carrying the
// backend status and raw body.
func NewUpstreamAuthError(system string, status int, body string) *Error {
	return &Error{
		Code:           ErrCodeUpstreamAuthFailed,
		Message:        fmt.Sprintf("Authentication with %s failed", system),
		UpstreamStatus: status,
		UpstreamBody:   body,
		Retryable:      false,
		Timestamp:      time.Now().UTC(),
	}
}

// NewUpstreamFetchError creates a detail/pending fetch error carrying the
// backend status and raw body.
func NewUpstreamFetchError(system string, status int, body string) *Error {
	return &Error{
		Code:           ErrCodeUpstreamFetchFailed,
		Message:        fmt.Sprintf("Fetch from %s failed", system),
		UpstreamStatus: status,
		UpstreamBody:   body,
		Retryable:      false,
		Timestamp:      time.Now().UTC(),
	}
}

// NewUpstreamApprovalError creates an approval call error. Approval actions
// mutate backend state and must never be retried blindly.
func NewUpstreamApprovalError(system string, status int, body string) *Error {
	return &Error{
		Code:           ErrCodeUpstreamApprovalFailed,
		Message:        fmt.Sprintf("Approval call to %s failed", system),
		UpstreamStatus: status,
		UpstreamBody:   body,
		Retryable:      false,
		Timestamp:      time.Now().UTC(),
	}
}

// NewInvalidResponseShapeError creates an upstream contract drift error.
func NewInvalidResponseShapeError(system, details string) *Error {
	return &Error{
		Code:      ErrCodeInvalidResponseShape,
		Message:   fmt.Sprintf("Unexpected response structure from %s", system),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedActionError creates a non-retryable unsupported action error.
func NewUnsupportedActionError(system, actionType string) *Error {
	return &Error{
		Code:      ErrCodeUnsupportedAction,
		Message:   fmt.Sprintf("Action %s not supported by %s adapter", actionType, system),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the error code of err, or an empty code when err is not a
// structured *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsMissingParameter(err error) bool { return CodeOf(err) == ErrCodeMissingParameter }
func IsUpstreamAuth(err error) bool     { return CodeOf(err) == ErrCodeUpstreamAuthFailed }
func IsUpstreamFetch(err error) bool    { return CodeOf(err) == ErrCodeUpstreamFetchFailed }
func IsUpstreamApproval(err error) bool { return CodeOf(err) == ErrCodeUpstreamApprovalFailed }
func IsInvalidShape(err error) bool     { return CodeOf(err) == ErrCodeInvalidResponseShape }
func IsUnsupportedAction(err error) bool {
	return CodeOf(err) == ErrCodeUnsupportedAction
}
