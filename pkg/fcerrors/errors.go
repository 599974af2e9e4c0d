package fcerrors

import (
	"errors"
	"fmt"
)

// Error codes for the failure kinds the federation core can surface.
// Callers branch on these rather than on HTTP status codes or message text.
const (
	ErrorCodeAuthorizationRequired = "error-authorization-required"
	ErrorCodeRemoteFailure         = "error-remote-failure"
	ErrorCodeMalformedResponse     = "error-malformed-response"
	ErrorCodeValidation            = "error-validation"
)

// Error is the error type returned by every federation operation. Endpoint
// and StatusCode are populated where a remote call was involved so that a
// failure can be reproduced from its log line alone.
type Error struct {
	Code       string
	Endpoint   string
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Endpoint != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s: endpoint %s returned status %d: %s", e.Code, e.Endpoint, e.StatusCode, e.Message)
	case e.Endpoint != "":
		return fmt.Sprintf("%s: endpoint %s: %s", e.Code, e.Endpoint, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewAuthorizationRequired signals that a token could not be acquired or the
// remote rejected one with a 401. The caller should re-authenticate rather
// than retry.
func NewAuthorizationRequired(endpoint string, cause error) *Error {
	msg := "authorization required"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:       ErrorCodeAuthorizationRequired,
		Endpoint:   endpoint,
		StatusCode: 401,
		Message:    msg,
		cause:      cause,
	}
}

// NewRemoteFailure wraps any non-success, non-401 response. Opaque to this
// core, never retried here.
func NewRemoteFailure(endpoint string, statusCode int) *Error {
	return &Error{
		Code:       ErrorCodeRemoteFailure,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    "remote call failed",
	}
}

// NewRemoteFailureFromError wraps a transport-level failure where no HTTP
// status was obtained at all.
func NewRemoteFailureFromError(endpoint string, cause error) *Error {
	return &Error{
		Code:     ErrorCodeRemoteFailure,
		Endpoint: endpoint,
		Message:  cause.Error(),
		cause:    cause,
	}
}

// NewMalformedResponse marks a success response whose envelope or columns
// failed to parse. This is a data-contract violation, not a transient fault.
func NewMalformedResponse(endpoint string, cause error) *Error {
	msg := "malformed response envelope"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:     ErrorCodeMalformedResponse,
		Endpoint: endpoint,
		Message:  msg,
		cause:    cause,
	}
}

// NewValidation rejects caller-supplied input before any remote call.
func NewValidation(cause error) *Error {
	return &Error{
		Code:    ErrorCodeValidation,
		Message: cause.Error(),
		cause:   cause,
	}
}

func NewValidationf(format string, args ...interface{}) *Error {
	return NewValidation(fmt.Errorf(format, args...))
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsAuthorizationRequired(err error) bool {
	return hasCode(err, ErrorCodeAuthorizationRequired)
}

func IsRemoteFailure(err error) bool {
	return hasCode(err, ErrorCodeRemoteFailure)
}

func IsMalformedResponse(err error) bool {
	return hasCode(err, ErrorCodeMalformedResponse)
}

func IsValidation(err error) bool {
	return hasCode(err, ErrorCodeValidation)
}
