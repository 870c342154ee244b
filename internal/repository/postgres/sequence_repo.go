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

type sequenceRepo struct {
	db sqlx.ExtContext
}

// NewSequenceRepo creates a new PostgreSQL-backed SequenceRepository.
func NewSequenceRepo(db sqlx.ExtContext) port.SequenceRepository {
	return &sequenceRepo{db: db}
}

// IssueNext increments and reads the counter in one statement. The row lock
// taken by the UPDATE serialises concurrent issuers; a second caller blocks
// until the first commits and then sees the incremented value.
func (r *sequenceRepo) IssueNext(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (*domain.SequenceCounter, error) {
	var c domain.SequenceCounter
	err := sqlx.GetContext(ctx, r.db, &c,
		`UPDATE sequence_counters
		 SET next_number = next_number + 1, updated_at = NOW()
		 WHERE tenant_id = $1 AND series = $2
		 RETURNING tenant_id, series, prefix, separator, padding_digits,
		           next_number - 1 AS next_number, updated_at`,
		tenantID, series)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSequenceNotFound
		}
		return nil, fmt.Errorf("sequenceRepo.IssueNext: %w", err)
	}
	return &c, nil
}

func (r *sequenceRepo) Get(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (*domain.SequenceCounter, error) {
	var c domain.SequenceCounter
	err := sqlx.GetContext(ctx, r.db, &c,
		"SELECT * FROM sequence_counters WHERE tenant_id = $1 AND series = $2", tenantID, series)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSequenceNotFound
		}
		return nil, fmt.Errorf("sequenceRepo.Get: %w", err)
	}
	return &c, nil
}

// Upsert writes the counter unless that would move next_number backwards.
func (r *sequenceRepo) Upsert(ctx context.Context, c *domain.SequenceCounter) error {
	c.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sequence_counters (tenant_id, series, prefix, separator, padding_digits, next_number, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (tenant_id, series) DO UPDATE SET
		     prefix = EXCLUDED.prefix,
		     separator = EXCLUDED.separator,
		     padding_digits = EXCLUDED.padding_digits,
		     next_number = EXCLUDED.next_number,
		     updated_at = EXCLUDED.updated_at
		 WHERE sequence_counters.next_number <= EXCLUDED.next_number`,
		c.TenantID, c.Series, c.Prefix, c.Separator, c.PaddingDigits, c.NextNumber, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sequenceRepo.Upsert: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCounterRewind
	}
	return nil
}
