// Package apperr holds the typed errors shared by the intake pipeline,
// the newsletter flow, and the HTTP layer.
//
// Two families exist.  *ValidationError is a caller mistake and maps to a
// 400; its Message is already user-facing.  *ServerError is an operational
// failure (missing configuration, mail delivery) and maps to a 500.
// Anything else is an unexpected fault.  Callers match with errors.As.
package apperr

import (
	"errors"
	"fmt"
)

// Kind names one failure condition.
type Kind string

const (
	MalformedBody        Kind = "malformed_body"
	MissingFields        Kind = "missing_fields"
	InvalidEmail         Kind = "invalid_email"
	InvalidChoice        Kind = "invalid_choice"
	InvalidAge           Kind = "invalid_age"
	AgeBelowMinimum      Kind = "age_below_minimum"
	MissingDynamicAnswer Kind = "missing_dynamic_answer"
	MissingToken         Kind = "missing_token"
	InvalidToken         Kind = "invalid_token"
	TokenExpired         Kind = "token_expired"

	Unconfigured       Kind = "unconfigured"
	MailDeliveryFailed Kind = "mail_delivery_failed"
)

// ValidationError reports invalid input.
type ValidationError struct {
	Kind     Kind
	Message  string
	Fields   []string // MissingFields only
	Question string   // MissingDynamicAnswer only
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Kind, e.Message)
}

// Validation builds a *ValidationError.
func Validation(kind Kind, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}

// ServerError reports an operational failure.  Err is the cause, if any.
type ServerError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServerError) Unwrap() error { return e.Err }

// Server builds a *ServerError.
func Server(kind Kind, msg string, err error) *ServerError {
	return &ServerError{Kind: kind, Message: msg, Err: err}
}

// AsValidation unwraps err to a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsServer unwraps err to a *ServerError.
func AsServer(err error) (*ServerError, bool) {
	var se *ServerError
	ok := errors.As(err, &se)
	return se, ok
}

// IsKind reports whether err is a validation or server error of kind k.
func IsKind(err error, k Kind) bool {
	if ve, ok := AsValidation(err); ok {
		return ve.Kind == k
	}
	if se, ok := AsServer(err); ok {
		return se.Kind == k
	}
	return false
}
