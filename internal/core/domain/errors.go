package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for recoverable not-found conditions.
var (
	// ErrPlaceNotFound means the geocoder searched and found nothing.
	// User-correctable, distinct from an upstream failure.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrTripNotFound means no trip matched the id (and owner, on mutations).
	ErrTripNotFound = errors.New("trip not found")

	// ErrUserNotFound means no account matched.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials means the password check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken means an account with that email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmptyPath means a materialized trip path has zero renderable points.
	ErrEmptyPath = errors.New("trip path has no renderable points")

	// ErrDraftNotFound means the route draft expired or never existed.
	ErrDraftNotFound = errors.New("route draft not found")
)

// ValidationError is a caller fault: malformed or missing required input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidPlaceError means a required place name (start or destination)
// failed geocoding. Trip creation is rejected as a whole.
type InvalidPlaceError struct {
	Field string // "start" or "destination"
	Name  string
}

func (e *InvalidPlaceError) Error() string {
	return fmt.Sprintf("%s place %q could not be resolved", e.Field, e.Name)
}

// UpstreamError is a transient infrastructure failure from an external
// service (geocoding, discovery, routing). Safe to retry, never conflated
// with a not-found result.
type UpstreamError struct {
	Service string // "geocoding", "discovery", "routing"
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps err as a failure of the named external service.
func NewUpstreamError(service string, err error) error {
	return &UpstreamError{Service: service, Err: err}
}
