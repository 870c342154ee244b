package port

import (
	"context"

	"github.com/google/uuid"
)

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	Companies   CompanyRepository
	Parties     PartyRepository
	Documents   DocumentRepository
	LineItems   LineItemRepository
	Sequences   SequenceRepository
	Payments    PaymentRepository
	Allocations AllocationRepository
}

// Transactor runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise, including when ctx
// is cancelled.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// IdempotencyGuard serialises requests carrying the same idempotency key.
// Do runs fn at most once per (tenant, key) within the guard's retention
// window; a later call returns the id fn produced with replayed set.
type IdempotencyGuard interface {
	Do(ctx context.Context, tenantID uuid.UUID, key string, fn func(ctx context.Context) (uuid.UUID, error)) (id uuid.UUID, replayed bool, err error)
}
