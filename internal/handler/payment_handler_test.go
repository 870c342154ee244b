package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/handler"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/mocks"
)

func newPaymentHandler() (*handler.PaymentHandler, *mocks.MockPaymentService) {
	svc := new(mocks.MockPaymentService)
	return handler.NewPaymentHandler(svc, quietLogger()), svc
}

func TestPaymentHandler_Create(t *testing.T) {
	h, svc := newPaymentHandler()
	tenantID, userID, docID := uuid.New(), uuid.New(), uuid.New()

	body := `{
		"direction": "received",
		"party_id": "` + uuid.NewString() + `",
		"payment_date": "2025-04-10",
		"mode": "neft",
		"amount": "250000",
		"allocations": [{"document_id": "` + docID.String() + `", "allocated_amount": "250000"}]
	}`

	svc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.CreatePaymentInput) bool {
		return in.TenantID == tenantID &&
			in.CreatedBy == userID &&
			in.IdempotencyKey == "retry-42" &&
			in.Direction == domain.PaymentReceived &&
			in.Amount.Equal(decimal.NewFromInt(250000)) &&
			len(in.Allocations) == 1 && in.Allocations[0].DocumentID == docID
	})).Return(&domain.Payment{PaymentNumber: "PAY-0001", Amount: decimal.NewFromInt(250000)}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/payments", body)
	c.Request.Header.Set(handler.IdempotencyKeyHeader, "retry-42")
	setAuthContext(c, tenantID, userID, "member")

	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var p domain.Payment
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &p))
	assert.Equal(t, "PAY-0001", p.PaymentNumber)
	svc.AssertExpectations(t)
}

func TestPaymentHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"over allocation", domain.ErrAllocationExceedsPayment, http.StatusConflict, "ALLOCATION_EXCEEDS_PAYMENT"},
		{"exceeds balance", domain.ErrAllocationExceedsBalance, http.StatusConflict, "ALLOCATION_EXCEEDS_BALANCE"},
		{"retry in flight", domain.ErrIdempotencyInProgress, http.StatusConflict, "REQUEST_IN_PROGRESS"},
		{"not payable", domain.ErrDocumentNotPayable, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invariant", domain.ErrInvariantViolation, http.StatusInternalServerError, "SETTLEMENT_INVARIANT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newPaymentHandler()
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/api/v1/payments", `{"direction": "received", "amount": "1"}`)
			setAuthContext(c, uuid.New(), uuid.New(), "member")

			h.Create(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		})
	}
}

func TestPaymentHandler_Create_BadDate(t *testing.T) {
	h, svc := newPaymentHandler()

	c, w := newContext(http.MethodPost, "/api/v1/payments", `{"direction": "made", "payment_date": "yesterday"}`)
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "payment_date", decode(t, w).Error.Field)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentHandler_GetByID_NotFound(t *testing.T) {
	h, svc := newPaymentHandler()
	tenantID, paymentID := uuid.New(), uuid.New()

	svc.On("Get", mock.Anything, tenantID, paymentID).Return(nil, domain.ErrPaymentNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/payments/"+paymentID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: paymentID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PAYMENT_NOT_FOUND", decode(t, w).Error.Code)
}

func TestPaymentHandler_Delete(t *testing.T) {
	h, svc := newPaymentHandler()
	tenantID, paymentID, docID := uuid.New(), uuid.New(), uuid.New()

	svc.On("Delete", mock.Anything, tenantID, paymentID).Return([]*domain.Document{
		{ID: docID, Status: domain.DocumentStatusOverdue},
	}, nil)

	c, w := newContext(http.MethodDelete, "/api/v1/payments/"+paymentID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: paymentID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "admin")

	h.Delete(c)

	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		PaymentID uuid.UUID         `json:"payment_id"`
		Documents []domain.Document `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, paymentID, data.PaymentID)
	require.Len(t, data.Documents, 1)
	assert.Equal(t, domain.DocumentStatusOverdue, data.Documents[0].Status)
}
