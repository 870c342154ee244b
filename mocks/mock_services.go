package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/calc"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, input *service.CreateDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, input *service.UpdateDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Preview(ctx context.Context, input *service.PreviewInput) (*calc.Totals, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calc.Totals), args.Error(1)
}

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Create(ctx context.Context, input *service.CreatePaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) Get(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) Delete(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*domain.Document, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

// MockSequenceService is a mock implementation of service.SequenceService.
type MockSequenceService struct {
	mock.Mock
}

func (m *MockSequenceService) Next(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	args := m.Called(ctx, tenantID, series)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceService) Peek(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	args := m.Called(ctx, tenantID, series)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceService) Configure(ctx context.Context, input *service.ConfigureSequenceInput) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceService) Issue(ctx context.Context, repos port.Repositories, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	args := m.Called(ctx, repos, tenantID, series)
	return args.String(0), args.Error(1)
}

// MockReportService is a mock implementation of service.ReportService.
// WriteRegister writes args[0] (a string) to w when it is set.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WriteRegister(ctx context.Context, tenantID uuid.UUID, filter port.RegisterFilter, w io.Writer) error {
	args := m.Called(ctx, tenantID, filter, w)
	if body, ok := args.Get(0).(string); ok {
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
		return args.Error(1)
	}
	return args.Error(0)
}

func (m *MockReportService) TaxSummary(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, *excelize.File, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Document), args.Get(1).(*excelize.File), args.Error(2)
}
