package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/calc"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/settlement"
)

// DocumentInput carries the editable side of a document.
type DocumentInput struct {
	PartyID        uuid.UUID        `json:"party_id"`
	DocumentDate   time.Time        `json:"document_date"`
	DueDate        *time.Time       `json:"due_date"`
	PlaceOfSupply  string           `json:"place_of_supply" validate:"max=100"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	ShippingCharge decimal.Decimal  `json:"shipping_charge"`
	Notes          string           `json:"notes" validate:"max=2000"`
	LineItems      []calc.LineInput `json:"line_items"`
}

// CreateDocumentInput is the DTO for creating a numbered document.
type CreateDocumentInput struct {
	TenantID     uuid.UUID             `json:"-"`
	DocumentType domain.DocumentType   `json:"document_type" validate:"required"`
	Status       domain.DocumentStatus `json:"status"`
	DocumentInput
}

// UpdateDocumentInput is the DTO for replacing a document's lines and totals.
type UpdateDocumentInput struct {
	TenantID   uuid.UUID `json:"-"`
	DocumentID uuid.UUID `json:"-"`
	DocumentInput
}

// PreviewInput is the DTO for computing totals without writing anything.
type PreviewInput struct {
	TenantID uuid.UUID `json:"-"`
	DocumentInput
}

// DocumentService defines the document contract.
type DocumentService interface {
	Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error)
	Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error)
	Get(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	Preview(ctx context.Context, input *PreviewInput) (*calc.Totals, error)
}

type documentService struct {
	tx        port.Transactor
	sequences SequenceService
	log       logrus.FieldLogger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(tx port.Transactor, sequences SequenceService, log logrus.FieldLogger) DocumentService {
	return &documentService{tx: tx, sequences: sequences, log: log}
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.DocumentType.Valid() {
		return nil, domain.NewValidationError("document_type", "unknown document type")
	}
	status := input.Status
	if status == "" {
		status = input.DocumentType.DefaultOpenStatus()
	}
	if !status.Valid() || status == domain.DocumentStatusPaid || status == domain.DocumentStatusPartial {
		return nil, domain.NewValidationError("status", "must be an unsettled status")
	}
	if err := checkDocumentInput(&input.DocumentInput); err != nil {
		return nil, err
	}

	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		from, to, err := jurisdictions(ctx, repos, input.TenantID, &input.DocumentInput)
		if err != nil {
			return err
		}
		totals, err := calc.Aggregate(input.LineItems, input.DiscountAmount, input.ShippingCharge, from, to)
		if err != nil {
			return err
		}
		number, err := s.sequences.Issue(ctx, repos, input.TenantID, input.DocumentType.Series())
		if err != nil {
			return err
		}

		doc = &domain.Document{
			ID:             uuid.New(),
			TenantID:       input.TenantID,
			DocumentType:   input.DocumentType,
			DocumentNumber: number,
			PartyID:        input.PartyID,
			DocumentDate:   input.DocumentDate,
			DueDate:        input.DueDate,
			PlaceOfSupply:  input.PlaceOfSupply,
			Status:         status,
			Notes:          input.Notes,
		}
		totals.ApplyTo(doc)
		settlement.Settle(doc, decimal.Zero)
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}
		return s.writeLines(ctx, repos, doc)
	})
	if err != nil {
		logger.LogError(s.log, "document", "Create", "creating document",
			logrus.Fields{"tenant_id": input.TenantID, "document_type": input.DocumentType}, err)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id":       doc.TenantID,
		"document_id":     doc.ID,
		"document_number": doc.DocumentNumber,
		"total_amount":    doc.TotalAmount.StringFixed(2),
	}).Info("document created")
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkDocumentInput(&input.DocumentInput); err != nil {
		return nil, err
	}

	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		doc, err = repos.Documents.GetForUpdate(ctx, input.TenantID, input.DocumentID)
		if err != nil {
			return err
		}
		from, to, err := jurisdictions(ctx, repos, input.TenantID, &input.DocumentInput)
		if err != nil {
			return err
		}
		totals, err := calc.Aggregate(input.LineItems, input.DiscountAmount, input.ShippingCharge, from, to)
		if err != nil {
			return err
		}

		doc.PartyID = input.PartyID
		doc.DocumentDate = input.DocumentDate
		doc.DueDate = input.DueDate
		doc.PlaceOfSupply = input.PlaceOfSupply
		doc.Notes = input.Notes
		totals.ApplyTo(doc)
		settlement.Settle(doc, doc.AmountPaid)

		if err := repos.LineItems.DeleteByDocument(ctx, doc.TenantID, doc.ID); err != nil {
			return err
		}
		if err := repos.Documents.UpdateTotals(ctx, doc); err != nil {
			return err
		}
		return s.writeLines(ctx, repos, doc)
	})
	if err != nil {
		logger.LogError(s.log, "document", "Update", "replacing line items",
			logrus.Fields{"tenant_id": input.TenantID, "document_id": input.DocumentID}, err)
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		doc, err = repos.Documents.GetByID(ctx, tenantID, docID)
		if err != nil {
			return err
		}
		doc.LineItems, err = repos.LineItems.ListByDocument(ctx, tenantID, docID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Preview(ctx context.Context, input *PreviewInput) (*calc.Totals, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkDocumentInput(&input.DocumentInput); err != nil {
		return nil, err
	}
	var totals *calc.Totals
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		from, to, err := jurisdictions(ctx, repos, input.TenantID, &input.DocumentInput)
		if err != nil {
			return err
		}
		totals, err = calc.Aggregate(input.LineItems, input.DiscountAmount, input.ShippingCharge, from, to)
		return err
	})
	return totals, err
}

// writeLines stamps doc's computed lines with their owner and inserts them,
// then re-checks the stored totals against them.
func (s *documentService) writeLines(ctx context.Context, repos port.Repositories, doc *domain.Document) error {
	for i := range doc.LineItems {
		doc.LineItems[i].ID = uuid.New()
		doc.LineItems[i].TenantID = doc.TenantID
		doc.LineItems[i].DocumentID = doc.ID
	}
	if err := repos.LineItems.CreateBatch(ctx, doc.LineItems); err != nil {
		return err
	}
	return calc.Verify(doc, doc.LineItems)
}

func checkDocumentInput(in *DocumentInput) error {
	if in.PartyID == uuid.Nil {
		return domain.ErrMissingParty
	}
	if in.DocumentDate.IsZero() {
		return domain.ErrMissingDocumentDate
	}
	if in.DueDate != nil && in.DueDate.Before(in.DocumentDate) {
		return domain.NewValidationError("due_date", "must not be before document_date")
	}
	if len(in.LineItems) == 0 {
		return domain.ErrNoLineItems
	}
	return nil
}

// jurisdictions returns the company (from) and party (to) sides of the
// transaction. An explicit place of supply overrides the party's state.
func jurisdictions(ctx context.Context, repos port.Repositories, tenantID uuid.UUID, in *DocumentInput) (gst.Jurisdiction, gst.Jurisdiction, error) {
	company, err := repos.Companies.GetByTenant(ctx, tenantID)
	if err != nil {
		return gst.Jurisdiction{}, gst.Jurisdiction{}, err
	}
	party, err := repos.Parties.GetByID(ctx, tenantID, in.PartyID)
	if err != nil {
		return gst.Jurisdiction{}, gst.Jurisdiction{}, err
	}
	if company.GSTIN != "" && !gst.ValidGSTIN(company.GSTIN) {
		return gst.Jurisdiction{}, gst.Jurisdiction{}, domain.NewValidationError("company.gstin", "malformed GSTIN")
	}
	if party.GSTIN != "" && !gst.ValidGSTIN(party.GSTIN) {
		return gst.Jurisdiction{}, gst.Jurisdiction{}, domain.NewValidationError("party.gstin", "malformed GSTIN")
	}

	from := gst.Jurisdiction{State: company.State, GSTIN: company.GSTIN}
	to := gst.Jurisdiction{State: party.State, GSTIN: party.GSTIN}
	if in.PlaceOfSupply != "" {
		to = gst.Jurisdiction{State: in.PlaceOfSupply}
	}
	return from, to, nil
}
