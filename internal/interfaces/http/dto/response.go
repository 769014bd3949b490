package dto

import "time"

// Response is the JSON envelope of every API response. Exactly one of Data
// and Error is set; Meta accompanies paged lists.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Timestamp int64              `json:"timestamp,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one invalid field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta computes the page count for total rows split into pageSize pages.
func NewMeta(total int64, page, pageSize int) *Meta {
	m := &Meta{Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		m.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return m
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta wraps one page of a list.
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	r := NewSuccessResponse(data)
	r.Meta = NewMeta(total, page, pageSize)
	return r
}

// NewErrorResponseWithRequestID builds a failure envelope stamped with the
// current Unix time.
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{Error: &ErrorInfo{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}}
}

// NewValidationErrorResponse is a VALIDATION_ERROR envelope listing the
// invalid fields.
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	r := NewErrorResponseWithRequestID(CodeValidation, message, requestID)
	r.Error.Details = details
	return r
}
