package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
)

// CompanyRepository reads the tenant's own business profile.
type CompanyRepository interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Company, error)
}

// PartyRepository reads customers and vendors. Parties are owned by the
// surrounding CRUD layer.
type PartyRepository interface {
	GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error)
}

// RegisterFilter selects documents for the GST register export.
type RegisterFilter struct {
	DocumentType domain.DocumentType
	From         time.Time
	To           time.Time
}

// DocumentRepository defines the contract for document persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	// GetForUpdate reads the document and holds its row lock until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	UpdateTotals(ctx context.Context, doc *domain.Document) error
	UpdateSettlement(ctx context.Context, doc *domain.Document) error
	CountByType(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (int64, error)
	ListForRegister(ctx context.Context, tenantID uuid.UUID, filter RegisterFilter) ([]domain.Document, error)
	// ListAfter pages through every tenant's documents in id order.
	ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Document, error)
}

// LineItemRepository defines the contract for line item persistence.
type LineItemRepository interface {
	CreateBatch(ctx context.Context, items []domain.LineItem) error
	ListByDocument(ctx context.Context, tenantID, docID uuid.UUID) ([]domain.LineItem, error)
	ListByDocuments(ctx context.Context, tenantID uuid.UUID, docIDs []uuid.UUID) ([]domain.LineItem, error)
	DeleteByDocument(ctx context.Context, tenantID, docID uuid.UUID) error
}

// SequenceRepository defines the contract for numbering counters.
type SequenceRepository interface {
	// IssueNext atomically increments the counter and returns it with
	// NextNumber set to the number just issued. Returns
	// domain.ErrSequenceNotFound when the series has no counter row.
	IssueNext(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (*domain.SequenceCounter, error)
	Get(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (*domain.SequenceCounter, error)
	// Upsert creates or reconfigures a counter. It fails with
	// domain.ErrCounterRewind if NextNumber would move backwards.
	Upsert(ctx context.Context, counter *domain.SequenceCounter) error
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error)
	GetForUpdate(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error)
	UpdateExcess(ctx context.Context, payment *domain.Payment) error
	CountByDirection(ctx context.Context, tenantID uuid.UUID, direction domain.PaymentDirection) (int64, error)
	Delete(ctx context.Context, tenantID, paymentID uuid.UUID) error
}

// AllocationRepository defines the contract for allocation persistence.
type AllocationRepository interface {
	Create(ctx context.Context, alloc *domain.Allocation) error
	ListByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) ([]domain.Allocation, error)
	SumByDocument(ctx context.Context, tenantID, docID uuid.UUID) (decimal.Decimal, error)
	DeleteByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) error
}
