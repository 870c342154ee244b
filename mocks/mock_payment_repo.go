package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
)

// MockPaymentRepo is a mock implementation of port.PaymentRepository.
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetForUpdate(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) UpdateExcess(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) CountByDirection(ctx context.Context, tenantID uuid.UUID, direction domain.PaymentDirection) (int64, error) {
	args := m.Called(ctx, tenantID, direction)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepo) Delete(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, paymentID)
	return args.Error(0)
}

// MockAllocationRepo is a mock implementation of port.AllocationRepository.
type MockAllocationRepo struct {
	mock.Mock
}

func (m *MockAllocationRepo) Create(ctx context.Context, alloc *domain.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *MockAllocationRepo) ListByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) ([]domain.Allocation, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepo) SumByDocument(ctx context.Context, tenantID, docID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, docID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAllocationRepo) DeleteByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, paymentID)
	return args.Error(0)
}
