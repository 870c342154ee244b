package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

type companyRepo struct {
	db sqlx.ExtContext
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db sqlx.ExtContext) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Company, error) {
	var c domain.Company
	err := sqlx.GetContext(ctx, r.db, &c, "SELECT * FROM companies WHERE tenant_id = $1", tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByTenant: %w", err)
	}
	return &c, nil
}

type partyRepo struct {
	db sqlx.ExtContext
}

// NewPartyRepo creates a new PostgreSQL-backed PartyRepository.
func NewPartyRepo(db sqlx.ExtContext) port.PartyRepository {
	return &partyRepo{db: db}
}

func (r *partyRepo) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error) {
	var p domain.Party
	err := sqlx.GetContext(ctx, r.db, &p,
		"SELECT * FROM parties WHERE id = $1 AND tenant_id = $2", partyID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("partyRepo.GetByID: %w", err)
	}
	return &p, nil
}
