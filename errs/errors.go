// Package errs implements the closed error taxonomy the core surfaces to
// callers, grounded in stick.SafeError's wrap-and-mark-safe pattern: every
// ActionError is safe to present to an API caller once formatted, unlike an
// arbitrary internal error.
package errs

import (
	"fmt"

	"github.com/256dpi/xo"
	"github.com/pkg/errors"
)

// Kind is the closed set of error kinds from §7.
type Kind uint8

const (
	UnexpectedInputRootType Kind = iota
	UnexpectedInputType
	UnexpectedInputValue
	UnexpectedInputKey
	UnexpectedObjectLength
	MissingRequiredInput
	ValidationFailed
	PermissionDenied
	NotFound
	UniqueConstraintViolation
	ObjectIsDeleted
	InternalServerError
	ConnectorError
)

// String names the kind, matching the taxonomy's identifiers.
func (k Kind) String() string {
	switch k {
	case UnexpectedInputRootType:
		return "UnexpectedInputRootType"
	case UnexpectedInputType:
		return "UnexpectedInputType"
	case UnexpectedInputValue:
		return "UnexpectedInputValue"
	case UnexpectedInputKey:
		return "UnexpectedInputKey"
	case UnexpectedObjectLength:
		return "UnexpectedObjectLength"
	case MissingRequiredInput:
		return "MissingRequiredInput"
	case ValidationFailed:
		return "ValidationError"
	case PermissionDenied:
		return "PermissionDenied"
	case NotFound:
		return "NotFound"
	case UniqueConstraintViolation:
		return "UniqueConstraintViolation"
	case ObjectIsDeleted:
		return "ObjectIsDeleted"
	case InternalServerError:
		return "InternalServerError"
	case ConnectorError:
		return "ConnectorError"
	default:
		return "Unknown"
	}
}

// ActionError is the single error type the core returns across decode,
// pipeline, object and connector boundaries. At most one of Reason or
// Fields is populated, matching the taxonomy's per-kind payload shape.
type ActionError struct {
	Kind   Kind
	Path   string
	Reason string
	Fields map[string]string // ValidationFailed only: path -> reason
	err    error
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	if e.Kind == ValidationFailed {
		return fmt.Sprintf("%s: %v", e.Kind, e.Fields)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s at %q: %s", e.Kind, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap returns the wrapped connector/internal error, if any, so callers
// may use errors.As against the originating cause.
func (e *ActionError) Unwrap() error { return e.err }

// New builds an ActionError of the given kind with a formatted reason.
func New(kind Kind, path string, format string, args ...interface{}) *ActionError {
	return &ActionError{Kind: kind, Path: path, Reason: xo.F(format, args...).Error()}
}

// Wrap builds an InternalServerError or ConnectorError that wraps cause,
// preserving it for errors.As/errors.Is chains.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *ActionError {
	return &ActionError{Kind: kind, Reason: errors.Wrapf(cause, format, args...).Error(), err: cause}
}

// Validation builds a ValidationFailed error from an accumulated set of
// per-path field errors.
func Validation(fields map[string]string) *ActionError {
	return &ActionError{Kind: ValidationFailed, Fields: fields}
}

// As extracts an *ActionError from err's chain, if present.
func As(err error) (*ActionError, bool) {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
