package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// CodeRequestFailed is the code used when a storage request error is surfaced to callers
const CodeRequestFailed = "REQUEST_FAILED"

// Request error kinds reported by the persistence layer
const (
	RequestErrorDuplicatedKey   = "DUPLICATED_KEY"
	RequestErrorForeignKey      = "FOREIGN_KEY_VIOLATED"
	RequestErrorCheckConstraint = "CHECK_CONSTRAINT_VIOLATED"
	RequestErrorInvalidData     = "INVALID_DATA"
)

// RequestError is a known, classified failure of a storage request
// (constraint violations, rejected values). Anything the store could not
// classify is returned as-is instead.
type RequestError struct {
	Kind string
	Err  error
}

// Error returns the message of the underlying storage error
func (e *RequestError) Error() string {
	if e.Err == nil {
		return e.Kind
	}
	return e.Err.Error()
}

// Unwrap returns the underlying storage error
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError wraps err as a known request error of the given kind
func NewRequestError(kind string, err error) *RequestError {
	return &RequestError{Kind: kind, Err: err}
}

// AsRequestError reports whether err is (or wraps) a RequestError
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// RewrapRequestError turns a known request error into a generic domain error
// carrying the original message. Other errors are returned unchanged.
func RewrapRequestError(err error) error {
	if err == nil {
		return nil
	}
	if reqErr, ok := AsRequestError(err); ok {
		return NewDomainError(CodeRequestFailed, reqErr.Error())
	}
	return err
}
