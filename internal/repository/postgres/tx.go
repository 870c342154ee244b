package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

// NewRepositories binds every repository to ext, which may be the pool or
// an open transaction.
func NewRepositories(ext sqlx.ExtContext) port.Repositories {
	return port.Repositories{
		Companies:   NewCompanyRepo(ext),
		Parties:     NewPartyRepo(ext),
		Documents:   NewDocumentRepo(ext),
		LineItems:   NewLineItemRepo(ext),
		Sequences:   NewSequenceRepo(ext),
		Payments:    NewPaymentRepo(ext),
		Allocations: NewAllocationRepo(ext),
	}
}

type transactor struct {
	db *sqlx.DB
}

// NewTransactor creates a Transactor running units of work at READ COMMITTED
// with explicit row locks.
func NewTransactor(db *sqlx.DB) port.Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("transactor.WithinTx begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transactor.WithinTx commit: %w", err)
	}
	return nil
}
