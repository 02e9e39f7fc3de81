package shared

import "errors"

// DomainError represents a domain-level error.
// Ref optionally points at an existing record (for conflicts such as a duplicate
// subscription fingerprint or an approval that already exists).
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so errors.Is(err, ErrNotFound) holds for
// copies produced by WithRef or WithMessage.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithRef returns a copy of the error referencing an existing record
func (e *DomainError) WithRef(ref string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Ref: ref}
}

// WithMessage returns a copy of the error with a more specific message
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message, Ref: e.Ref}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewConflictError creates a conflict error carrying a reference to the record that won
func NewConflictError(code, message, ref string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Ref:     ref,
	}
}

// AsDomainError unwraps err into a *DomainError if one is in the chain
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrConflict            = NewDomainError("CONFLICT", "Resource conflicts with an existing record")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrDependency          = NewDomainError("DEPENDENCY_ERROR", "An external collaborator could not be reached")
	ErrInternal            = NewDomainError("INTERNAL_ERROR", "An internal error occurred")
)
