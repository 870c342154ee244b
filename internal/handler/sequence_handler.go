package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
)

// SequenceHandler handles numbering series endpoints.
type SequenceHandler struct {
	sequenceService service.SequenceService
	log             logrus.FieldLogger
}

// NewSequenceHandler creates a new SequenceHandler.
func NewSequenceHandler(sequenceService service.SequenceService, log logrus.FieldLogger) *SequenceHandler {
	return &SequenceHandler{sequenceService: sequenceService, log: log}
}

type numberResponse struct {
	Series domain.SeriesType `json:"series"`
	Number string            `json:"number"`
}

// Peek handles GET /api/v1/sequences/:series/peek
func (h *SequenceHandler) Peek(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	series := domain.SeriesType(c.Param("series"))

	number, err := h.sequenceService.Peek(c.Request.Context(), tenantID, series)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, numberResponse{Series: series, Number: number})
}

// Next handles POST /api/v1/sequences/:series/next
func (h *SequenceHandler) Next(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	series := domain.SeriesType(c.Param("series"))

	number, err := h.sequenceService.Next(c.Request.Context(), tenantID, series)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondCreated(c, numberResponse{Series: series, Number: number})
}

// Configure handles PUT /api/v1/sequences/:series
func (h *SequenceHandler) Configure(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req service.ConfigureSequenceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "prefix, padding_digits and next_number are required")
		return
	}
	req.TenantID = tenantID
	req.Series = domain.SeriesType(c.Param("series"))

	counter, err := h.sequenceService.Configure(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, counter)
}
