package domain

import (
	"errors"
	"fmt"
)

// Error classes. Specific errors below wrap one of these so callers can branch
// on the class with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvariantViolation = errors.New("settlement invariant violated")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

var (
	ErrDocumentNotFound = fmt.Errorf("document %w", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("payment %w", ErrNotFound)
	ErrPartyNotFound    = fmt.Errorf("party %w", ErrNotFound)
	ErrCompanyNotFound  = fmt.Errorf("company %w", ErrNotFound)
	ErrSequenceNotFound = fmt.Errorf("sequence counter %w", ErrNotFound)

	ErrDiscountExceedsLineTotal = fmt.Errorf("%w: discount exceeds line total", ErrValidation)
	ErrNonPositiveAllocation    = fmt.Errorf("%w: allocated amount must be greater than zero", ErrValidation)
	ErrMissingParty             = fmt.Errorf("%w: party is required", ErrValidation)
	ErrMissingDocumentDate      = fmt.Errorf("%w: document date is required", ErrValidation)
	ErrNoLineItems              = fmt.Errorf("%w: at least one line item is required", ErrValidation)
	ErrNegativeTotal            = fmt.Errorf("%w: document total cannot be negative", ErrValidation)
	ErrDocumentNotPayable       = fmt.Errorf("%w: document cannot be settled by this payment", ErrValidation)
	ErrInvalidSeries            = fmt.Errorf("%w: unknown numbering series", ErrValidation)

	ErrDuplicateDocumentNumber  = fmt.Errorf("%w: document number already issued", ErrConflict)
	ErrAllocationExceedsPayment = fmt.Errorf("%w: allocations exceed payment amount", ErrConflict)
	ErrAllocationExceedsBalance = fmt.Errorf("%w: allocation exceeds document balance due", ErrConflict)
	ErrIdempotencyInProgress    = fmt.Errorf("%w: request with this idempotency key is in progress", ErrConflict)
	ErrCounterRewind            = fmt.Errorf("%w: next number cannot move backwards", ErrConflict)
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
