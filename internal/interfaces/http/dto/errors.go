package dto

import (
	"net/http"
	"strings"
)

// General error codes. Domain errors keep their own codes; these cover the HTTP layer.
const (
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeAlreadyExists  = "ALREADY_EXISTS"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeInvalidState   = "INVALID_STATE"
	ErrCodeDependency     = "DEPENDENCY_ERROR"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeTimeout        = "REQUEST_TIMEOUT"
	ErrCodeTokenExpired   = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid   = "INVALID_TOKEN"
	ErrCodeInvalidSig     = "INVALID_SIGNATURE"
	ErrCodeBodyTooLarge   = "REQUEST_TOO_LARGE"
	ErrCodeConcurrentEdit = "CONCURRENT_MODIFICATION"
)

// ErrorCodeHTTPStatus maps exact error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeInvalidSig:   http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeConcurrentEdit:    http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"VERSION_CONFLICT":       http.StatusConflict,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR":  http.StatusConflict,
	"DUPLICATE_SUBSCRIPTION": http.StatusConflict,

	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	"INVALID_STATUS_TRANSITION": http.StatusUnprocessableEntity,
	"FEE_PLAN_LOCKED":           http.StatusUnprocessableEntity,
	"FEE_PLAN_NOT_ACTIVE":       http.StatusUnprocessableEntity,
	"FEE_EVENT_NOT_ACCRUED":     http.StatusUnprocessableEntity,
	"NO_EFFECTIVE_FEE_PLAN":     http.StatusUnprocessableEntity,
	"EXCEEDS_BALANCE_DUE":       http.StatusUnprocessableEntity,
	"APPROVAL_ALREADY_DECIDED":  http.StatusUnprocessableEntity,

	ErrCodeDependency:   http.StatusBadGateway,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeTimeout:      http.StatusGatewayTimeout,
	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are validation failures; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "DUPLICATE_") || strings.HasSuffix(code, "_EXISTS") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
