// Package apperr defines the error taxonomy shared by repositories, services,
// and HTTP handlers. Every error crossing a layer boundary carries a Kind so
// callers can decide between surfacing, masking, and retrying without string
// matching.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindValidation marks malformed input: unknown filter field, enum value
	// outside its declared set, missing required field. Not retryable.
	KindValidation Kind = iota + 1
	// KindNotFound marks a referenced id that does not exist in the store.
	KindNotFound
	// KindAuthorization marks a principal that lacks ownership of a referenced
	// row. Read paths surface it as not-found; write paths as forbidden.
	KindAuthorization
	// KindTransient marks a store timeout or unreachable dependency. Retryable
	// with backoff.
	KindTransient
	// KindConfiguration marks an internal misconfiguration (unknown entity
	// kind, missing status-set constant). Fatal, never exposed raw.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindTransient:
		return "transient"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged error with an optional field name for validation
// detail and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Field, e.Message, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a field-level validation error.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound builds a not-found error for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Forbidden builds an authorization error for the named entity.
func Forbidden(entity string) *Error {
	return &Error{Kind: KindAuthorization, Message: entity + " not owned by principal"}
}

// Transient wraps a store failure as retryable.
func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

// Configuration wraps an internal misconfiguration.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// KindOf extracts the Kind from err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAuthorization reports whether err is an ownership error.
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool { return KindOf(err) == KindTransient }

// IsConfiguration reports whether err is an internal misconfiguration.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
