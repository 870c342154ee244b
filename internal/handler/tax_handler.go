package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
)

// TaxHandler exposes the GST split as a calculator endpoint.
type TaxHandler struct{}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler() *TaxHandler {
	return &TaxHandler{}
}

type splitResponse struct {
	InterState bool            `json:"inter_state"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	gst.TaxSplit
}

// Split handles GET /api/v1/tax/split?amount=..&from_state=..&from_gstin=..&to_state=..&to_gstin=..
func (h *TaxHandler) Split(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount must be a decimal number")
		return
	}
	if amount.IsNegative() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount cannot be negative")
		return
	}

	from := gst.Jurisdiction{State: c.Query("from_state"), GSTIN: c.Query("from_gstin")}
	to := gst.Jurisdiction{State: c.Query("to_state"), GSTIN: c.Query("to_gstin")}

	RespondOK(c, splitResponse{
		InterState: gst.IsInterState(from, to),
		TaxAmount:  amount.Round(2),
		TaxSplit:   gst.Split(amount, from, to),
	})
}
