package dto

import (
	"net/http"
	"strings"

	"github.com/menudash/backend/internal/domain/shared"
)

// Transport level error codes. Domain errors keep their own code.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeInvalidJSON  = "INVALID_JSON"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeTooLarge     = "REQUEST_TOO_LARGE"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":              http.StatusNotFound,
	"ALREADY_EXISTS":         http.StatusConflict,
	shared.CodeRequestFailed: http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":         http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":       http.StatusUnprocessableEntity,
	"FORBIDDEN":              http.StatusForbidden,
	"STORAGE_DISABLED":       http.StatusServiceUnavailable,

	CodeValidation:   http.StatusBadRequest,
	CodeBadRequest:   http.StatusBadRequest,
	CodeInvalidJSON:  http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeTokenExpired: http.StatusUnauthorized,
	CodeTokenInvalid: http.StatusUnauthorized,
	CodeTooLarge:     http.StatusRequestEntityTooLarge,
	CodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Unlisted INVALID_*
// codes are input errors; anything else is a server error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
