package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/currency"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/settlement"
)

// IdempotencyKeyHeader lets clients retry POST /payments safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
	log            logrus.FieldLogger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService, log logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, log: log}
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Direction   domain.PaymentDirection `json:"direction"`
		PartyID     uuid.UUID               `json:"party_id"`
		PaymentDate string                  `json:"payment_date"`
		Mode        string                  `json:"mode"`
		Reference   string                  `json:"reference"`
		currency.Input
		Allocations []settlement.Entry `json:"allocations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a valid payment")
		return
	}
	paymentDate, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), &service.CreatePaymentInput{
		TenantID:       tenantID,
		CreatedBy:      userID,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
		Direction:      req.Direction,
		PartyID:        req.PartyID,
		PaymentDate:    paymentDate,
		Mode:           req.Mode,
		Reference:      req.Reference,
		Input:          req.Input,
		Allocations:    req.Allocations,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondCreated(c, payment)
}

// GetByID handles GET /api/v1/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, payment)
}

// Delete handles DELETE /api/v1/payments/:id. The response lists the
// documents whose settlement was restored.
func (h *PaymentHandler) Delete(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "payment")
	if !ok {
		return
	}

	docs, err := h.paymentService.Delete(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, gin.H{"payment_id": paymentID, "documents": docs})
}
