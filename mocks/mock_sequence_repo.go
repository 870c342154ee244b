package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
)

// MockSequenceRepo is a mock implementation of port.SequenceRepository.
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) IssueNext(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, tenantID, series)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceRepo) Get(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, tenantID, series)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceRepo) Upsert(ctx context.Context, counter *domain.SequenceCounter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}
