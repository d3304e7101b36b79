package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

// ErrorKind classifies a service error for HTTP translation. The set is
// closed: every error raised by a service carries exactly one kind, and
// HTTPStatus maps each kind to a status code.
type ErrorKind int

const (
	// KindNotFound means the requested entity does not exist.
	KindNotFound ErrorKind = iota
	// KindValidation means a field failed a data-model constraint.
	KindValidation
	// KindBusiness means a business rule was violated (duplicate username,
	// invalid credentials, disabled account, missing product reference).
	KindBusiness
	// KindUnauthorized means a malformed or expired token reached a
	// protected resource.
	KindUnauthorized
	// KindForbidden means the caller is authenticated but lacks the role.
	KindForbidden
	// KindInternal means an unexpected failure whose detail must not leak.
	KindInternal
)

// Error is the error type raised at every service boundary.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFoundError reports that the entity of the given kind and id is absent.
func NotFoundError(resource string, id uint) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found, id: %d", resource, id)}
}

// ValidationError reports a field-constraint failure.
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// BusinessError reports a business-rule violation.
func BusinessError(message string) *Error {
	return &Error{Kind: KindBusiness, Message: message}
}

// UnauthorizedError reports an authentication failure.
func UnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// ForbiddenError reports an authorization failure.
func ForbiddenError() *Error {
	return &Error{Kind: KindForbidden, Message: "insufficient permissions"}
}

// InternalError wraps an unexpected failure. The underlying detail is logged
// but kept out of the message so it never reaches a client.
func InternalError(err error) *Error {
	log.Printf("unexpected error: %v", err)
	return &Error{Kind: KindInternal, Message: "internal server error, please try again later"}
}

// HTTPStatus translates a service error into an HTTP status code and a
// client-safe message. Unknown error values are treated as internal.
func HTTPStatus(err error) (int, string) {
	var se *Error
	if !errors.As(err, &se) {
		return http.StatusInternalServerError, "internal server error, please try again later"
	}
	switch se.Kind {
	case KindNotFound:
		return http.StatusNotFound, se.Message
	case KindValidation, KindBusiness:
		return http.StatusBadRequest, se.Message
	case KindUnauthorized:
		return http.StatusUnauthorized, se.Message
	case KindForbidden:
		return http.StatusForbidden, se.Message
	default:
		return http.StatusInternalServerError, se.Message
	}
}
