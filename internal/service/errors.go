package service

import "fmt"

// Error kinds surfaced to callers. Every error is scoped to the single
// operation that raised it; nothing here is fatal to the process.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindConflict   = "conflict"
)

// DomainError carries a machine-readable kind alongside the message so
// the API layer can map it to a status code without string matching.
type DomainError struct {
	Kind    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError rejects malformed or incomplete caller input
func NewValidationError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError rejects a reference to a nonexistent record
func NewNotFoundError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError reports a concurrent-modification race
func NewConflictError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// ErrorKind extracts the domain kind from an error, or "" for plain errors
func ErrorKind(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Kind
	}
	return ""
}
