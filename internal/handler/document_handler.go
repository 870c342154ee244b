package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/calc"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/csvexport"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
)

// DocumentHandler handles document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	reportService   service.ReportService
	log             logrus.FieldLogger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, reportService service.ReportService, log logrus.FieldLogger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, reportService: reportService, log: log}
}

// documentRequest is the JSON body shared by create, update and preview.
// Dates travel as YYYY-MM-DD.
type documentRequest struct {
	DocumentType   domain.DocumentType   `json:"document_type"`
	Status         domain.DocumentStatus `json:"status"`
	PartyID        uuid.UUID             `json:"party_id"`
	DocumentDate   string                `json:"document_date"`
	DueDate        string                `json:"due_date"`
	PlaceOfSupply  string                `json:"place_of_supply"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	ShippingCharge decimal.Decimal       `json:"shipping_charge"`
	Notes          string                `json:"notes"`
	LineItems      []calc.LineInput      `json:"line_items"`
}

func (r *documentRequest) toInput() (service.DocumentInput, error) {
	docDate, err := parseDate("document_date", r.DocumentDate)
	if err != nil {
		return service.DocumentInput{}, err
	}
	in := service.DocumentInput{
		PartyID:        r.PartyID,
		DocumentDate:   docDate,
		PlaceOfSupply:  r.PlaceOfSupply,
		DiscountAmount: r.DiscountAmount,
		ShippingCharge: r.ShippingCharge,
		Notes:          r.Notes,
		LineItems:      r.LineItems,
	}
	if r.DueDate != "" {
		due, err := parseDate("due_date", r.DueDate)
		if err != nil {
			return service.DocumentInput{}, err
		}
		in.DueDate = &due
	}
	return in, nil
}

func (h *DocumentHandler) bind(c *gin.Context) (*documentRequest, service.DocumentInput, bool) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a valid document")
		return nil, service.DocumentInput{}, false
	}
	in, err := req.toInput()
	if err != nil {
		HandleError(c, h.log, err)
		return nil, service.DocumentInput{}, false
	}
	return &req, in, true
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	req, in, ok := h.bind(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), &service.CreateDocumentInput{
		TenantID:      tenantID,
		DocumentType:  req.DocumentType,
		Status:        req.Status,
		DocumentInput: in,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondCreated(c, doc)
}

// Update handles PUT /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "document")
	if !ok {
		return
	}
	_, in, ok := h.bind(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), &service.UpdateDocumentInput{
		TenantID:      tenantID,
		DocumentID:    docID,
		DocumentInput: in,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, doc)
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "document")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, doc)
}

// Preview handles POST /api/v1/documents/preview
func (h *DocumentHandler) Preview(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	_, in, ok := h.bind(c)
	if !ok {
		return
	}

	totals, err := h.documentService.Preview(c.Request.Context(), &service.PreviewInput{
		TenantID:      tenantID,
		DocumentInput: in,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, totals)
}

// RegisterCSV handles GET /api/v1/documents/register.csv?type=invoice&from=2025-04-01&to=2025-04-30
func (h *DocumentHandler) RegisterCSV(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filter := port.RegisterFilter{DocumentType: domain.DocumentType(c.DefaultQuery("type", string(domain.DocumentTypeInvoice)))}
	for _, p := range []struct {
		field string
		dst   *time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		v := c.Query(p.field)
		if v == "" {
			HandleError(c, h.log, domain.NewValidationError(p.field, "is required"))
			return
		}
		t, err := parseDate(p.field, v)
		if err != nil {
			HandleError(c, h.log, err)
			return
		}
		*p.dst = t
	}

	// Rendered into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.WriteRegister(c.Request.Context(), tenantID, filter, &buf); err != nil {
		HandleError(c, h.log, err)
		return
	}

	filename := csvexport.BuildFilename(string(filter.DocumentType)+"_register", filter.From, filter.To, "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// TaxSummaryXLSX handles GET /api/v1/documents/:id/tax-summary.xlsx
func (h *DocumentHandler) TaxSummaryXLSX(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "document")
	if !ok {
		return
	}

	doc, f, err := h.reportService.TaxSummary(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	defer f.Close()

	filename := csvexport.SanitizeFilename(doc.DocumentNumber) + "_tax_summary.xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.log.WithError(err).WithField("document_id", docID).Error("writing tax summary workbook")
	}
}
