// Package apperr defines the typed business errors shared by the domain,
// application and transport layers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an expected business failure.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidState     Kind = "invalid_state"
	KindConflict         Kind = "conflict"
	KindValidationFailed Kind = "validation_failed"
	KindForbidden        Kind = "forbidden"
)

// AppError is an expected, typed failure that the transport layer maps to a
// user-visible response.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string { return e.Message }

// NewNotFoundError reports that the referenced entity does not exist.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewInvalidStateError reports a rejected status transition.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewInvalidStateMessage reports an invalid source state with a custom message.
func NewInvalidStateMessage(msg string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidationFailed, Message: msg}
}

func NewForbiddenError(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// KindOf returns the kind of err, or "" when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsInvalidState(err error) bool     { return KindOf(err) == KindInvalidState }
func IsConflict(err error) bool         { return KindOf(err) == KindConflict }
func IsValidationFailed(err error) bool { return KindOf(err) == KindValidationFailed }
func IsForbidden(err error) bool        { return KindOf(err) == KindForbidden }
