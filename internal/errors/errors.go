// Package errors provides the error taxonomy used across bookminer.
//
// Every failure that crosses a package boundary is classified into one of a
// small set of kinds, and the workflow decides what to do purely from the
// kind:
//
//   - KindUnreachable: the note service is not listening. The only kind
//     eligible for an interactive retry.
//   - KindApplicationRejected: the service answered with a non-null error
//     field. The message is opaque and shown verbatim.
//   - KindInvalidInput: malformed local data such as an unusable filename.
//   - KindLocalIO: a scratch, config or tags file could not be read or
//     written. The message names the path and the operation.
//   - KindTransport: any other network or decoding failure.
//   - KindCancelled: the user backed out of an interaction. Normal control
//     flow, not a failure.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewServiceError("addNote", errors.KindUnreachable, cause)
//	err := errors.NewLocalIOError("read", "/tmp/x/front.tex", cause)
//	err := errors.NewValidationError("attachment filename is unusable").WithValue(path)
//
// Checking errors:
//
//	if errors.IsRetryable(err) { ... }   // only KindUnreachable
//	if errors.IsCancelled(err) { ... }
//	if errors.IsActionLocal(err) { ... } // LocalIO or InvalidInput
//	switch errors.KindOf(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Kind classifies an error by how the workflow must react to it.
type Kind int

const (
	// KindUnknown is reported for errors that carry no classification.
	KindUnknown Kind = iota
	// KindUnreachable means the remote note service is not listening.
	KindUnreachable
	// KindApplicationRejected means the service rejected the request.
	KindApplicationRejected
	// KindInvalidInput means local data was malformed.
	KindInvalidInput
	// KindLocalIO means a local file operation failed.
	KindLocalIO
	// KindTransport means any other network or decoding failure.
	KindTransport
	// KindCancelled means the user backed out of an interaction.
	KindCancelled
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindApplicationRejected:
		return "rejected"
	case KindInvalidInput:
		return "invalid_input"
	case KindLocalIO:
		return "local_io"
	case KindTransport:
		return "transport"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrUnreachable indicates that the note service is not running.
	ErrUnreachable = New("note service is not running")
	// ErrCancelled indicates that the user backed out of an interaction.
	ErrCancelled = New("cancelled")
	// ErrRetryDeclined indicates that the user chose not to retry an
	// unreachable service. The process must end with a non-zero status.
	ErrRetryDeclined = New("retry declined")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// BookminerError is the base interface for all classified errors.
type BookminerError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Kind returns the classification of this error.
	Kind() Kind

	// IsRetryable returns true if the operation may succeed on retry.
	IsRetryable() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message string
	cause   error
	kind    Kind
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Kind returns the error classification.
func (e *baseError) Kind() Kind {
	return e.kind
}

// IsRetryable reports whether the error is retryable. Only an unreachable
// service qualifies.
func (e *baseError) IsRetryable() bool {
	return e.kind == KindUnreachable
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ServiceError represents a failed exchange with the note service.
//
// Example:
//
//	err := errors.NewServiceError("addNote", errors.KindApplicationRejected, nil).
//		WithMessage("cannot create note because it is a duplicate")
//	fmt.Println(err) // "anki addNote: cannot create note because it is a duplicate"
type ServiceError struct {
	baseError
	Action string
}

// NewServiceError creates a new ServiceError for the given RPC action.
func NewServiceError(action string, kind Kind, cause error) *ServiceError {
	msg := kind.String()
	if kind == KindUnreachable {
		msg = ErrUnreachable.Error()
	}
	return &ServiceError{
		baseError: baseError{
			message: msg,
			cause:   cause,
			kind:    kind,
		},
		Action: action,
	}
}

// WithMessage replaces the error message. Used for the service's own
// error text, which is surfaced verbatim.
func (e *ServiceError) WithMessage(msg string) *ServiceError {
	e.message = msg
	return e
}

// Message returns the message without the action prefix or cause.
func (e *ServiceError) Message() string {
	return e.message
}

// Error returns the formatted error message.
func (e *ServiceError) Error() string {
	prefix := "anki"
	if e.Action != "" {
		prefix = fmt.Sprintf("anki %s", e.Action)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ServiceError) Is(target error) bool {
	if target == ErrUnreachable {
		return e.kind == KindUnreachable
	}
	if _, ok := target.(*ServiceError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// LocalIOError represents a failed read or write of a local file.
//
// Example:
//
//	err := errors.NewLocalIOError("read", "/tmp/bookmining1/front.tex", fs.ErrNotExist)
//	fmt.Println(err) // "read /tmp/bookmining1/front.tex: file does not exist"
type LocalIOError struct {
	baseError
	Op   string
	Path string
}

// NewLocalIOError creates a new LocalIOError.
func NewLocalIOError(op, path string, cause error) *LocalIOError {
	return &LocalIOError{
		baseError: baseError{
			message: op,
			cause:   cause,
			kind:    KindLocalIO,
		},
		Op:   op,
		Path: path,
	}
}

// Error returns the formatted error message.
func (e *LocalIOError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *LocalIOError) Is(target error) bool {
	if _, ok := target.(*LocalIOError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// ValidationError represents malformed local input.
//
// Example:
//
//	err := errors.NewValidationError("deck name is required").WithField("deck_name")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message: message,
			kind:    KindInvalidInput,
		},
	}
}

// WithField adds the field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause sets the underlying cause.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	msg := e.message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Value != nil {
		msg = fmt.Sprintf("%s (got: %v)", msg, e.Value)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidInput {
		return true
	}
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// KindOf returns the classification of err. Unclassified errors report
// KindUnknown; ErrCancelled anywhere in the chain reports KindCancelled.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if Is(err, ErrCancelled) {
		return KindCancelled
	}
	var be BookminerError
	if As(err, &be) {
		return be.Kind()
	}
	if Is(err, ErrUnreachable) {
		return KindUnreachable
	}
	return KindUnknown
}

// IsRetryable returns true if the error represents an unreachable note
// service, the only condition the workflow offers to retry.
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    retry, _ := prompter.Confirm("Anki is not running. Do you want to retry?")
//	}
func IsRetryable(err error) bool {
	return KindOf(err) == KindUnreachable
}

// IsCancelled returns true if the user backed out of an interaction.
func IsCancelled(err error) bool {
	return KindOf(err) == KindCancelled
}

// IsActionLocal returns true for errors that abort only the current menu
// action: local file failures and invalid input.
func IsActionLocal(err error) bool {
	switch KindOf(err) {
	case KindLocalIO, KindInvalidInput:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike a bare message, this preserves the classification of err.
//
// Example:
//
//	err := errors.Wrap(baseErr, "editing front")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
