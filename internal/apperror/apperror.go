package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures the API surfaces to callers. Anything outside
// this set is generalized to KindInternal before it leaves the service
// layer, so storage details never leak.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationRequired
	KindNotFound
	KindInvalidFilter
	KindOwnershipViolation
	KindAlreadyCompleted
	KindValidation
)

func (k Kind) Code() string {
	switch k {
	case KindAuthenticationRequired:
		return "AUTHENTICATION_REQUIRED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidFilter:
		return "INVALID_FILTER"
	case KindOwnershipViolation:
		return "OWNERSHIP_VIOLATION"
	case KindAlreadyCompleted:
		return "ALREADY_COMPLETED"
	case KindValidation:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

func (e *Error) Unwrap() error { return e.err }

func AuthenticationRequired() *Error {
	return &Error{Kind: KindAuthenticationRequired, Message: "authentication required"}
}

func NotFound(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

func InvalidFilter(msg string) *Error {
	return &Error{Kind: KindInvalidFilter, Message: msg}
}

func OwnershipViolation(entity string, id any) *Error {
	return &Error{Kind: KindOwnershipViolation, Message: fmt.Sprintf("%s %v does not belong to the caller", entity, id)}
}

func AlreadyCompleted(attemptID uint) *Error {
	return &Error{Kind: KindAlreadyCompleted, Message: fmt.Sprintf("attempt %d has already been completed", attemptID)}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Internal wraps a low-level failure behind an opaque message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", err: err}
}

// KindOf reports the kind of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage returns the message safe to show a caller.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

// HTTPStatus maps an error kind to the status the controllers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidFilter, KindValidation:
		return http.StatusBadRequest
	case KindOwnershipViolation:
		return http.StatusForbidden
	case KindAlreadyCompleted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
