package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

type documentRepo struct {
	db sqlx.ExtContext
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db sqlx.ExtContext) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, tenant_id, document_type, document_number, party_id,
		document_date, due_date, place_of_supply,
		subtotal, discount_amount, igst_amount, cgst_amount, sgst_amount,
		shipping_charge, total_amount, amount_paid, balance_due,
		status, open_status, notes, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8,
		$9, $10, $11, $12, $13,
		$14, $15, $16, $17,
		$18, $19, $20, $21, $22
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.TenantID, doc.DocumentType, doc.DocumentNumber, doc.PartyID,
		doc.DocumentDate, doc.DueDate, doc.PlaceOfSupply,
		doc.Subtotal, doc.DiscountAmount, doc.IGSTAmount, doc.CGSTAmount, doc.SGSTAmount,
		doc.ShippingCharge, doc.TotalAmount, doc.AmountPaid, doc.BalanceDue,
		doc.Status, doc.OpenStatus, doc.Notes, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_documents_number") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateDocumentNumber, doc.DocumentNumber)
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	return r.get(ctx, "documentRepo.GetByID",
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
}

func (r *documentRepo) GetForUpdate(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	return r.get(ctx, "documentRepo.GetForUpdate",
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2 FOR UPDATE", docID, tenantID)
}

func (r *documentRepo) get(ctx context.Context, op, query string, args ...interface{}) (*domain.Document, error) {
	var doc domain.Document
	if err := sqlx.GetContext(ctx, r.db, &doc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &doc, nil
}

func (r *documentRepo) UpdateTotals(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	query := `UPDATE documents SET
		party_id = $1, document_date = $2, due_date = $3, place_of_supply = $4,
		subtotal = $5, discount_amount = $6, igst_amount = $7, cgst_amount = $8, sgst_amount = $9,
		shipping_charge = $10, total_amount = $11, balance_due = $12, status = $13,
		notes = $14, updated_at = $15
		WHERE id = $16 AND tenant_id = $17`

	result, err := r.db.ExecContext(ctx, query,
		doc.PartyID, doc.DocumentDate, doc.DueDate, doc.PlaceOfSupply,
		doc.Subtotal, doc.DiscountAmount, doc.IGSTAmount, doc.CGSTAmount, doc.SGSTAmount,
		doc.ShippingCharge, doc.TotalAmount, doc.BalanceDue, doc.Status,
		doc.Notes, doc.UpdatedAt,
		doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateTotals: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateSettlement(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET amount_paid = $1, balance_due = $2, status = $3, open_status = $4, updated_at = $5
		 WHERE id = $6 AND tenant_id = $7`,
		doc.AmountPaid, doc.BalanceDue, doc.Status, doc.OpenStatus, doc.UpdatedAt,
		doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateSettlement: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) CountByType(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, r.db, &n,
		"SELECT COUNT(*) FROM documents WHERE tenant_id = $1 AND document_type = $2", tenantID, docType)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.CountByType: %w", err)
	}
	return n, nil
}

func (r *documentRepo) ListForRegister(ctx context.Context, tenantID uuid.UUID, filter port.RegisterFilter) ([]domain.Document, error) {
	var docs []domain.Document
	err := sqlx.SelectContext(ctx, r.db, &docs,
		`SELECT * FROM documents
		 WHERE tenant_id = $1 AND document_type = $2 AND document_date BETWEEN $3 AND $4
		   AND status <> $5
		 ORDER BY document_date, document_number`,
		tenantID, filter.DocumentType, filter.From, filter.To, domain.DocumentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListForRegister: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Document, error) {
	var docs []domain.Document
	err := sqlx.SelectContext(ctx, r.db, &docs,
		"SELECT * FROM documents WHERE id > $1 ORDER BY id LIMIT $2", afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListAfter: %w", err)
	}
	return docs, nil
}
