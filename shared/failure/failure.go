package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of its HTTP code, so callers can tell
// apart failures that share a status (an invalid transition and a double booking
// are both 409).
type Kind string

const (
	KindUnknown      Kind = ""
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindSlotConflict Kind = "slot_conflict"
	KindNotAvailable Kind = "not_available"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter", Kind: KindValidation}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter", Kind: KindValidation}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Kind: KindForbidden}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource", Kind: KindForbidden}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    KindValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Kind:    KindValidation,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
		Kind:    KindUnauthorized,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			Kind:    KindInternal,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Kind:    KindNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// InvalidState reports an operation that the entity's current status does not allow.
func InvalidState(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Kind:    KindInvalidState,
	}
}

// SlotConflict reports a (doctor, date, time) that is already held by another active appointment.
func SlotConflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Kind:    KindSlotConflict,
	}
}

// NotAvailable reports a doctor that is inactive, unavailable, or off on the requested day.
func NotAvailable(message string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Kind:    KindNotAvailable,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Kind:    KindForbidden,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf returns the Kind of the first Failure in err's chain.
func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindUnknown
}

// Is reports whether err carries a Failure of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
