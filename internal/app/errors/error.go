package errors

import (
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

// Code is a machine-readable reason attached to an AppError so clients can
// branch on redemption outcomes instead of parsing messages.
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeTooManyRequests Code = "TOO_MANY_REQUESTS"
	CodeInternal        Code = "INTERNAL_ERROR"

	// Issuance outcomes
	CodeAlreadyRedeemed Code = "ALREADY_REDEEMED"
	CodeOutOfInventory  Code = "OUT_OF_INVENTORY"
	CodeCooldownActive  Code = "COOLDOWN_ACTIVE"
	CodeDealInactive    Code = "DEAL_INACTIVE"

	// Verification outcomes
	CodeInvalidCode   Code = "INVALID_CODE"
	CodeWrongBusiness Code = "WRONG_BUSINESS"
	CodeAlreadyUsed   Code = "ALREADY_USED"
)

type AppError struct {
	StatusCode int
	Code       Code
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       defaultCode(statusCode),
		Message:    message,
	}
}

// NewTypedError builds an AppError with an explicit reason code. Used for
// redemption outcomes where the client must branch deterministically.
func NewTypedError(statusCode int, code Code, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, "Unauthorized")
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message)
}

func NewConflictError(code Code, message string) *AppError {
	return NewTypedError(http.StatusConflict, code, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, message)
}

func defaultCode(statusCode int) Code {
	switch statusCode {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	default:
		return CodeInternal
	}
}

// CodeOf extracts the reason code from an error, or CodeInternal when the
// error is not an AppError.
func CodeOf(err error) Code {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}
