package errors

import (
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"

	CodeServiceNotAvailable     = "SERVICE_NOT_AVAILABLE"
	CodeServiceNotFound         = "SERVICE_NOT_FOUND"
	CodeTimeSlotUnavailable     = "TIME_SLOT_UNAVAILABLE"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeNotAuthorized           = "NOT_AUTHORIZED"
	CodeCannotCancelCompleted   = "CANNOT_CANCEL_COMPLETED"
	CodeAlreadyCancelled        = "ALREADY_CANCELLED"
	CodeBookingNotFound         = "BOOKING_NOT_FOUND"
	CodeUserExists              = "USER_EXISTS"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeAccountDeactivated      = "ACCOUNT_DEACTIVATED"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

// --- Domain errors ---

func ServiceNotAvailable() *AppError {
	return &AppError{
		Code:       CodeServiceNotAvailable,
		Message:    "Service not found or not available",
		HTTPStatus: http.StatusNotFound,
	}
}

func ServiceNotFound() *AppError {
	return &AppError{
		Code:       CodeServiceNotFound,
		Message:    "Service not found",
		HTTPStatus: http.StatusNotFound,
	}
}

func TimeSlotUnavailable() *AppError {
	return &AppError{
		Code:       CodeTimeSlotUnavailable,
		Message:    "This time slot is already booked",
		HTTPStatus: http.StatusConflict,
	}
}

func InvalidStatusTransition(from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidStatusTransition,
		Message:    fmt.Sprintf("Cannot change status from %s to %s", from, to),
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotAuthorized(action string) *AppError {
	return &AppError{
		Code:       CodeNotAuthorized,
		Message:    fmt.Sprintf("Not authorized to %s", action),
		HTTPStatus: http.StatusForbidden,
	}
}

func CannotCancelCompleted() *AppError {
	return &AppError{
		Code:       CodeCannotCancelCompleted,
		Message:    "Cannot cancel a completed booking",
		HTTPStatus: http.StatusBadRequest,
	}
}

func AlreadyCancelled() *AppError {
	return &AppError{
		Code:       CodeAlreadyCancelled,
		Message:    "Booking is already cancelled",
		HTTPStatus: http.StatusBadRequest,
	}
}

func BookingNotFound() *AppError {
	return &AppError{
		Code:       CodeBookingNotFound,
		Message:    "Booking not found",
		HTTPStatus: http.StatusNotFound,
	}
}

func UserExists() *AppError {
	return &AppError{
		Code:       CodeUserExists,
		Message:    "User with this email already exists",
		HTTPStatus: http.StatusConflict,
	}
}

func UserNotFound() *AppError {
	return &AppError{
		Code:       CodeUserNotFound,
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
	}
}

func InvalidCredentials() *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    "Invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

func AccountDeactivated() *AppError {
	return &AppError{
		Code:       CodeAccountDeactivated,
		Message:    "Account has been deactivated",
		HTTPStatus: http.StatusUnauthorized,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
