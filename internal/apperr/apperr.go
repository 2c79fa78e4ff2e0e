// Package apperr defines the error taxonomy shared by the orchestrator
// services. Handlers translate these into HTTP status classes; services
// wrap collaborator failures so internals never reach the client.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both "absent" and "not owned by the caller" so
	// responses never leak whether a resource exists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnauthorized   = errors.New("not authenticated")
	ErrRateLimited    = errors.New("rate limit exceeded")
)

// ValidationError reports malformed or out-of-range input with
// field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError marks a failed collaborator call (generation, retrieval,
// extraction). The wrapped cause is logged server-side only.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func Upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
