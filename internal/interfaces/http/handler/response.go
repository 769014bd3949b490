package handler

import "github.com/menudash/backend/internal/interfaces/http/dto"

// APIResponse is dto.Response with a typed payload. The swagger annotations
// name it, and clients that know the payload type decode into it.
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// Failed reports whether the call returned the error envelope
func (r APIResponse[T]) Failed() bool {
	return !r.Success && r.Error != nil
}

// ErrorResponse is the body of a failed call.
// Error.Code is one of the domain error codes, e.g. ALREADY_EXISTS.
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
