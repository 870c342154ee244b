package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

type paymentRepo struct {
	db sqlx.ExtContext
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db sqlx.ExtContext) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO payments (
		id, tenant_id, direction, payment_number, party_id, payment_date, mode, reference,
		amount, original_amount, currency_code, exchange_rate, excess_amount,
		created_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.TenantID, p.Direction, p.PaymentNumber, p.PartyID, p.PaymentDate, p.Mode, p.Reference,
		p.Amount, p.OriginalAmount, p.CurrencyCode, p.ExchangeRate, p.ExcessAmount,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_payments_number") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateDocumentNumber, p.PaymentNumber)
		}
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	return r.get(ctx, "paymentRepo.GetByID",
		"SELECT * FROM payments WHERE id = $1 AND tenant_id = $2", paymentID, tenantID)
}

func (r *paymentRepo) GetForUpdate(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	return r.get(ctx, "paymentRepo.GetForUpdate",
		"SELECT * FROM payments WHERE id = $1 AND tenant_id = $2 FOR UPDATE", paymentID, tenantID)
}

func (r *paymentRepo) get(ctx context.Context, op, query string, args ...interface{}) (*domain.Payment, error) {
	var p domain.Payment
	if err := sqlx.GetContext(ctx, r.db, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *paymentRepo) UpdateExcess(ctx context.Context, p *domain.Payment) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"UPDATE payments SET excess_amount = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		p.ExcessAmount, p.UpdatedAt, p.ID, p.TenantID)
	if err != nil {
		return fmt.Errorf("paymentRepo.UpdateExcess: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepo) CountByDirection(ctx context.Context, tenantID uuid.UUID, direction domain.PaymentDirection) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, r.db, &n,
		"SELECT COUNT(*) FROM payments WHERE tenant_id = $1 AND direction = $2", tenantID, direction)
	if err != nil {
		return 0, fmt.Errorf("paymentRepo.CountByDirection: %w", err)
	}
	return n, nil
}

func (r *paymentRepo) Delete(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM payments WHERE id = $1 AND tenant_id = $2", paymentID, tenantID)
	if err != nil {
		return fmt.Errorf("paymentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

type allocationRepo struct {
	db sqlx.ExtContext
}

// NewAllocationRepo creates a new PostgreSQL-backed AllocationRepository.
func NewAllocationRepo(db sqlx.ExtContext) port.AllocationRepository {
	return &allocationRepo{db: db}
}

func (r *allocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	a.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO allocations (id, tenant_id, payment_id, document_id, allocated_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.TenantID, a.PaymentID, a.DocumentID, a.AllocatedAmount, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("allocationRepo.Create: %w", err)
	}
	return nil
}

func (r *allocationRepo) ListByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) ([]domain.Allocation, error) {
	var allocs []domain.Allocation
	err := sqlx.SelectContext(ctx, r.db, &allocs,
		"SELECT * FROM allocations WHERE payment_id = $1 AND tenant_id = $2 ORDER BY created_at, id",
		paymentID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("allocationRepo.ListByPayment: %w", err)
	}
	return allocs, nil
}

func (r *allocationRepo) SumByDocument(ctx context.Context, tenantID, docID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := sqlx.GetContext(ctx, r.db, &sum,
		"SELECT COALESCE(SUM(allocated_amount), 0) FROM allocations WHERE document_id = $1 AND tenant_id = $2",
		docID, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("allocationRepo.SumByDocument: %w", err)
	}
	return sum, nil
}

func (r *allocationRepo) DeleteByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM allocations WHERE payment_id = $1 AND tenant_id = $2", paymentID, tenantID)
	if err != nil {
		return fmt.Errorf("allocationRepo.DeleteByPayment: %w", err)
	}
	return nil
}
