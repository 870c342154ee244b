package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

const lineItemColumns = 17

type lineItemRepo struct {
	db sqlx.ExtContext
}

// NewLineItemRepo creates a new PostgreSQL-backed LineItemRepository.
func NewLineItemRepo(db sqlx.ExtContext) port.LineItemRepository {
	return &lineItemRepo{db: db}
}

func (r *lineItemRepo) CreateBatch(ctx context.Context, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	valueStrings := make([]string, 0, len(items))
	valueArgs := make([]interface{}, 0, len(items)*lineItemColumns)

	for i := range items {
		li := &items[i]
		li.CreatedAt = now
		placeholders := make([]string, lineItemColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", i*lineItemColumns+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			li.ID, li.TenantID, li.DocumentID, li.Position, li.Description, li.HSNSAC, li.Unit,
			li.Quantity, li.Rate, li.DiscountPercent, li.GSTRate, li.DiscountAmount,
			li.IGSTAmount, li.CGSTAmount, li.SGSTAmount, li.Amount, li.CreatedAt)
	}

	query := fmt.Sprintf(`INSERT INTO line_items (
		id, tenant_id, document_id, position, description, hsn_sac, unit,
		quantity, rate, discount_percent, gst_rate, discount_amount,
		igst_amount, cgst_amount, sgst_amount, amount, created_at
	) VALUES %s`, strings.Join(valueStrings, ", "))

	if _, err := r.db.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("lineItemRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *lineItemRepo) ListByDocument(ctx context.Context, tenantID, docID uuid.UUID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := sqlx.SelectContext(ctx, r.db, &items,
		"SELECT * FROM line_items WHERE document_id = $1 AND tenant_id = $2 ORDER BY position",
		docID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("lineItemRepo.ListByDocument: %w", err)
	}
	return items, nil
}

func (r *lineItemRepo) ListByDocuments(ctx context.Context, tenantID uuid.UUID, docIDs []uuid.UUID) ([]domain.LineItem, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM line_items WHERE tenant_id = ? AND document_id IN (?) ORDER BY document_id, position",
		tenantID, docIDs)
	if err != nil {
		return nil, fmt.Errorf("lineItemRepo.ListByDocuments: %w", err)
	}

	var items []domain.LineItem
	if err := sqlx.SelectContext(ctx, r.db, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("lineItemRepo.ListByDocuments: %w", err)
	}
	return items, nil
}

func (r *lineItemRepo) DeleteByDocument(ctx context.Context, tenantID, docID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM line_items WHERE document_id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		return fmt.Errorf("lineItemRepo.DeleteByDocument: %w", err)
	}
	return nil
}
