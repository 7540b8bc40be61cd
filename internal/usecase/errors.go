package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrFeatureDisabled       = errors.New("feature disabled")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// FieldError names the input field a validation failure is about.
type FieldError struct {
	Field  string
	Reason string
	cause  error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.cause
}

// FieldErrorOf extracts the field-level reason carried by a validation error.
func FieldErrorOf(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ValidationError builds an ErrInvalidInput failure for field. Transport
// adapters use it for request-shape problems found before a service is called.
func ValidationError(field, reason string) error {
	return invalidField(field, "%s", reason)
}

func invalidField(field, format string, args ...any) error {
	return errors.Mark(&FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}, ErrInvalidInput)
}

// invalidRule reports a domain rule violation against field, keeping the rule
// error reachable through errors.Is.
func invalidRule(field string, cause error) error {
	return errors.Mark(&FieldError{Field: field, Reason: cause.Error(), cause: cause}, ErrInvalidInput)
}

func notFound(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

func conflict(cause error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(cause, format, args...), ErrConflict)
}

func featureDisabled(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrFeatureDisabled)
}

func unauthorized(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnauthorized)
}

// storeFailure wraps an entity store error. Cancellation by the caller is
// passed through untouched; anything else, deadlines included, means the store
// could not serve the request.
func storeFailure(err error, op string) error {
	if errors.Is(err, context.Canceled) {
		return errors.Wrap(err, op)
	}
	return errors.Mark(errors.Wrap(err, op), ErrDependencyUnavailable)
}
