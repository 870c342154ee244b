package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"document not found", domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{"wrapped payment not found", fmt.Errorf("loading: %w", domain.ErrPaymentNotFound), http.StatusNotFound, "PAYMENT_NOT_FOUND"},
		{"generic not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"validation field", domain.NewValidationError("notes", "must be at most 2000 characters"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"validation sentinel", domain.ErrNoLineItems, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate number", domain.ErrDuplicateDocumentNumber, http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER"},
		{"exceeds balance", domain.ErrAllocationExceedsBalance, http.StatusConflict, "ALLOCATION_EXCEEDS_BALANCE"},
		{"in progress", domain.ErrIdempotencyInProgress, http.StatusConflict, "REQUEST_IN_PROGRESS"},
		{"invariant", domain.ErrInvariantViolation, http.StatusInternalServerError, "SETTLEMENT_INVARIANT"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", fmt.Errorf("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_ValidationMessage(t *testing.T) {
	_, _, msg := handler.MapDomainError(domain.NewValidationError("notes", "must be at most 2000 characters"))
	assert.Equal(t, "must be at most 2000 characters", msg)
}
