package invoice

import (
	"errors"
	"fmt"
	"strings"
)

// Common invoice editing and submission errors
var (
	// ErrLastItem is returned when an edit would remove the only remaining line item.
	// The snapshot is left unchanged.
	ErrLastItem = errors.New("cannot remove the last line item")

	// ErrItemNotFound is returned when an item edit references an unknown item id.
	ErrItemNotFound = errors.New("line item not found")

	// ErrUnknownField is returned when an edit names a field the invoice does not have.
	ErrUnknownField = errors.New("unknown invoice field")

	// ErrInvalidInvoice is matched by every submission validation failure.
	ErrInvalidInvoice = errors.New("invoice is not complete")
)

// EditError wraps a rejected edit with the operation that rejected it.
type EditError struct {
	// Op is the edit that failed (e.g., "RemoveItem", "UpdateItem").
	Op string

	// Target is the item id or field name the edit referenced.
	Target string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EditError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("invoice: %s %q rejected: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("invoice: %s rejected: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *EditError) Unwrap() error {
	return e.Err
}

func newEditError(op, target string, err error) *EditError {
	return &EditError{Op: op, Target: target, Err: err}
}

// ValidationError represents a single incomplete or inconsistent field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is reports every field failure as ErrInvalidInvoice.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInvoice
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ValidationErrors collects every failing field of one submission.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInvoice, strings.Join(msgs, "; "))
}

// Is implements error matching for errors.Is(err, ErrInvalidInvoice).
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInvoice
}

// Fields returns the names of the failing fields in report order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, e := range v {
		fields = append(fields, e.Field)
	}
	return fields
}
