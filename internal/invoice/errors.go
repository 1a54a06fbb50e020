package invoice

import (
	"errors"
	"fmt"
)

// Invoice errors
var (
	// ErrMissingClient is returned when an invoice is finalized without a client.
	ErrMissingClient = errors.New("no client selected")

	// ErrNoValidLineItems is returned when no line item has both a description
	// and a positive amount.
	ErrNoValidLineItems = errors.New("no line item with a description and a positive amount")

	// ErrMissingClientName is returned when a client is added without a name.
	ErrMissingClientName = errors.New("client name is required")

	// ErrInvoiceNotFound is returned when an invoice id or number matches nothing.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrClientNotFound is returned when a client id matches nothing.
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidStatus is returned for a status outside draft, sent, pending and paid.
	ErrInvalidStatus = errors.New("invalid invoice status")
)

// ValidationError reports which draft field stopped a finalization.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}
