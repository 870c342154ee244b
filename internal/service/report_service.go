package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/calc"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/csvexport"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

const taxSummarySheet = "Tax Summary"

var taxSummaryHeader = []any{"GST Rate %", "Taxable Amount", "IGST", "CGST", "SGST", "Total Tax", "Lines"}

// ReportService defines the GST export contract.
type ReportService interface {
	// WriteRegister streams a CSV GST register (BOM, header, one row per
	// document) to w.
	WriteRegister(ctx context.Context, tenantID uuid.UUID, filter port.RegisterFilter, w io.Writer) error
	// TaxSummary builds a workbook of the document's tax grouped by GST rate.
	TaxSummary(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, *excelize.File, error)
}

type reportService struct {
	tx  port.Transactor
	log logrus.FieldLogger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(tx port.Transactor, log logrus.FieldLogger) ReportService {
	return &reportService{tx: tx, log: log}
}

func (s *reportService) WriteRegister(ctx context.Context, tenantID uuid.UUID, filter port.RegisterFilter, w io.Writer) error {
	if filter.DocumentType != "" && !filter.DocumentType.Valid() {
		return domain.NewValidationError("document_type", "unknown document type")
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return domain.NewValidationError("to", "must not be before from")
	}

	var (
		company *domain.Company
		docs    []domain.Document
		parties = map[uuid.UUID]*domain.Party{}
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		if company, err = repos.Companies.GetByTenant(ctx, tenantID); err != nil {
			return err
		}
		if docs, err = repos.Documents.ListForRegister(ctx, tenantID, filter); err != nil {
			return err
		}
		ids := lo.Uniq(lo.Map(docs, func(d domain.Document, _ int) uuid.UUID { return d.PartyID }))
		for _, id := range ids {
			p, err := repos.Parties.GetByID(ctx, tenantID, id)
			if err != nil {
				return err
			}
			parties[id] = p
		}
		return nil
	})
	if err != nil {
		logger.LogError(s.log, "report", "WriteRegister", "loading register",
			logrus.Fields{"tenant_id": tenantID, "document_type": filter.DocumentType}, err)
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w, gst.Jurisdiction{State: company.State, GSTIN: company.GSTIN})
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteDocuments(docs, parties); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) TaxSummary(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, *excelize.File, error) {
	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		if doc, err = repos.Documents.GetByID(ctx, tenantID, docID); err != nil {
			return err
		}
		doc.LineItems, err = repos.LineItems.ListByDocument(ctx, tenantID, docID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	f, err := buildTaxSummary(doc)
	if err != nil {
		logger.LogError(s.log, "report", "TaxSummary", "building workbook",
			logrus.Fields{"tenant_id": tenantID, "document_id": docID}, err)
		return nil, nil, err
	}
	return doc, f, nil
}

func buildTaxSummary(doc *domain.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), taxSummarySheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(taxSummarySheet, "A1", &[]any{"Document", doc.DocumentNumber}); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(taxSummarySheet, "A2", &[]any{"Date", doc.DocumentDate.Format("2006-01-02")}); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(taxSummarySheet, "A4", &taxSummaryHeader); err != nil {
		return nil, err
	}

	row := 5
	for _, b := range calc.SummarizeByRate(doc.LineItems) {
		tax := b.IGSTAmount.Add(b.CGSTAmount).Add(b.SGSTAmount)
		values := []any{
			b.GSTRate.InexactFloat64(),
			b.TaxableAmount.InexactFloat64(),
			b.IGSTAmount.InexactFloat64(),
			b.CGSTAmount.InexactFloat64(),
			b.SGSTAmount.InexactFloat64(),
			tax.InexactFloat64(),
			b.Lines,
		}
		if err := f.SetSheetRow(taxSummarySheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		row++
	}

	totals := []any{
		"Total",
		doc.Subtotal.InexactFloat64(),
		doc.IGSTAmount.InexactFloat64(),
		doc.CGSTAmount.InexactFloat64(),
		doc.SGSTAmount.InexactFloat64(),
		doc.TaxTotal().InexactFloat64(),
		len(doc.LineItems),
	}
	if err := f.SetSheetRow(taxSummarySheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return nil, err
	}
	return f, nil
}
