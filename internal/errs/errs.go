package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error kinds. Every AppErr unwraps to exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("malformed request")
	ErrInternal     = errors.New("internal error")
)

// StatusClientClosedRequest is reported when the caller went away before the
// request finished.
const StatusClientClosedRequest = 499

// AppErr carries an error kind plus the entity and field it concerns.
type AppErr struct {
	kind    error
	Entity  string
	Field   string
	Details string
	Cause   error
}

func (e *AppErr) Error() string {
	msg := e.kind.Error()
	if e.Entity != "" {
		msg = fmt.Sprintf("%s %s", e.Entity, msg)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrNotFound) and friends work.
func (e *AppErr) Unwrap() error {
	return e.kind
}

// FullError includes the underlying cause, for logs only.
func (e *AppErr) FullError() string {
	if e.Cause == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s -> %s", e.Error(), e.Cause.Error())
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppErr) StatusCode() int {
	return StatusCode(e)
}

func NotFound(entity string) *AppErr {
	return &AppErr{kind: ErrNotFound, Entity: entity}
}

func Conflict(entity, details string) *AppErr {
	return &AppErr{kind: ErrConflict, Entity: entity, Details: details}
}

func Validation(field, details string) *AppErr {
	return &AppErr{kind: ErrValidation, Field: field, Details: details}
}

func BadRequest(details string) *AppErr {
	return &AppErr{kind: ErrBadRequest, Details: details}
}

func Unauthorized(details string) *AppErr {
	return &AppErr{kind: ErrUnauthorized, Details: details}
}

func Internal(details string, cause error) *AppErr {
	return &AppErr{kind: ErrInternal, Details: details, Cause: cause}
}

// FromDB translates a storage error for the given operation and entity.
// Errors that are already AppErr pass through untouched, as do context
// cancellation and deadline errors.
func FromDB(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppErr
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppErr{kind: ErrNotFound, Entity: entity, Cause: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &AppErr{kind: ErrConflict, Entity: entity, Details: "already exists", Cause: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &AppErr{kind: ErrNotFound, Entity: entity, Details: "referenced record does not exist", Cause: err}
	}
	return &AppErr{
		kind:    ErrInternal,
		Entity:  entity,
		Details: fmt.Sprintf("failed to %s", operation),
		Cause:   err,
	}
}

// StatusCode returns the HTTP status for any error.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine readable code used in API error bodies.
func Code(err error) string {
	switch StatusCode(err) {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_FAILED"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case StatusClientClosedRequest:
		return "CLIENT_CLOSED_REQUEST"
	case http.StatusGatewayTimeout:
		return "TIMEOUT"
	default:
		return "INTERNAL_ERROR"
	}
}
