package mocks

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

// MockRepositories bundles one mock per repository so tests can set
// expectations on the unit of work handed to WithinTx.
type MockRepositories struct {
	Companies   *MockCompanyRepo
	Parties     *MockPartyRepo
	Documents   *MockDocumentRepo
	LineItems   *MockLineItemRepo
	Sequences   *MockSequenceRepo
	Payments    *MockPaymentRepo
	Allocations *MockAllocationRepo
}

// NewMockRepositories creates a MockRepositories with fresh mocks.
func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		Companies:   new(MockCompanyRepo),
		Parties:     new(MockPartyRepo),
		Documents:   new(MockDocumentRepo),
		LineItems:   new(MockLineItemRepo),
		Sequences:   new(MockSequenceRepo),
		Payments:    new(MockPaymentRepo),
		Allocations: new(MockAllocationRepo),
	}
}

// Repositories returns the mocks as a port.Repositories.
func (r *MockRepositories) Repositories() port.Repositories {
	return port.Repositories{
		Companies:   r.Companies,
		Parties:     r.Parties,
		Documents:   r.Documents,
		LineItems:   r.LineItems,
		Sequences:   r.Sequences,
		Payments:    r.Payments,
		Allocations: r.Allocations,
	}
}

// AssertExpectations asserts expectations on every repository mock.
func (r *MockRepositories) AssertExpectations(t mock.TestingT) {
	r.Companies.AssertExpectations(t)
	r.Parties.AssertExpectations(t)
	r.Documents.AssertExpectations(t)
	r.LineItems.AssertExpectations(t)
	r.Sequences.AssertExpectations(t)
	r.Payments.AssertExpectations(t)
	r.Allocations.AssertExpectations(t)
}

// MockTransactor runs fn directly against Repos. It does not roll anything
// back; tests assert on which calls were made.
type MockTransactor struct {
	Repos *MockRepositories
	calls atomic.Int64
}

// NewMockTransactor creates a MockTransactor backed by repos.
func NewMockTransactor(repos *MockRepositories) *MockTransactor {
	return &MockTransactor{Repos: repos}
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	m.calls.Add(1)
	return fn(ctx, m.Repos.Repositories())
}

// Calls returns how many transactions were started.
func (m *MockTransactor) Calls() int {
	return int(m.calls.Load())
}

// MockIdempotencyGuard is a mock implementation of port.IdempotencyGuard.
// When no replay id is configured it runs fn.
type MockIdempotencyGuard struct {
	mock.Mock
}

func (m *MockIdempotencyGuard) Do(ctx context.Context, tenantID uuid.UUID, key string, fn func(ctx context.Context) (uuid.UUID, error)) (uuid.UUID, bool, error) {
	args := m.Called(ctx, tenantID, key)
	if err := args.Error(2); err != nil {
		return uuid.Nil, false, err
	}
	if args.Bool(1) {
		return args.Get(0).(uuid.UUID), true, nil
	}
	id, err := fn(ctx)
	return id, false, err
}
