// Package apperror defines the error kinds surfaced by the loan domain.
// Transports map a Kind to a status code; the domain never frames I/O itself.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindBusinessRule
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindBusinessRule:
		return "BUSINESS_RULE"
	case KindPersistence:
		return "PERSISTENCE"
	default:
		return "UNKNOWN"
	}
}

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing referenced entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BusinessRule reports a violated domain invariant.
func BusinessRule(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a storage failure.
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing message of the first *Error in err's
// chain, falling back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
