package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/mocks"
)

func setupReconcileService() (service.ReconcileService, *mocks.MockRepositories) {
	repos := mocks.NewMockRepositories()
	return service.NewReconcileService(mocks.NewMockTransactor(repos), quietLogger()), repos
}

func TestReconcileService_DryRunReportsDrift(t *testing.T) {
	svc, repos := setupReconcileService()
	tenantID := uuid.New()

	clean := &domain.Document{
		ID: uuid.New(), TenantID: tenantID, DocumentType: domain.DocumentTypeInvoice,
		TotalAmount: d("1000"), AmountPaid: d("400"), BalanceDue: d("600"), Status: domain.DocumentStatusPartial,
	}
	stale := &domain.Document{
		ID: uuid.New(), TenantID: tenantID, DocumentType: domain.DocumentTypeInvoice, DocumentNumber: "INV-0002",
		TotalAmount: d("1000"), AmountPaid: d("0"), BalanceDue: d("1000"), Status: domain.DocumentStatusSent,
	}

	repos.Documents.On("ListAfter", mock.Anything, uuid.Nil, 2).Return([]domain.Document{*clean, *stale}, nil)
	repos.Documents.On("ListAfter", mock.Anything, stale.ID, 2).Return([]domain.Document{}, nil)
	repos.Documents.On("GetForUpdate", mock.Anything, tenantID, clean.ID).Return(clean, nil)
	repos.Documents.On("GetForUpdate", mock.Anything, tenantID, stale.ID).Return(stale, nil)
	repos.Allocations.On("SumByDocument", mock.Anything, tenantID, clean.ID).Return(d("400"), nil)
	repos.Allocations.On("SumByDocument", mock.Anything, tenantID, stale.ID).Return(d("1000"), nil)

	report, err := svc.Run(context.Background(), false, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Scanned)
	require.Len(t, report.Drifts, 1)
	got := report.Drifts[0]
	assert.Equal(t, "INV-0002", got.DocumentNumber)
	assert.Equal(t, domain.DocumentStatusSent, got.StoredStatus)
	assert.Equal(t, domain.DocumentStatusPaid, got.DerivedStatus)
	assert.True(t, got.AllocatedPaid.Equal(d("1000")))
	assert.False(t, got.Fixed)
	repos.Documents.AssertNotCalled(t, "UpdateSettlement", mock.Anything, mock.Anything)
}

func TestReconcileService_FixWritesDerivedSettlement(t *testing.T) {
	svc, repos := setupReconcileService()
	tenantID := uuid.New()

	// Marked paid but every allocation has since been removed.
	doc := &domain.Document{
		ID: uuid.New(), TenantID: tenantID, DocumentType: domain.DocumentTypeBill,
		TotalAmount: d("500"), AmountPaid: d("500"), BalanceDue: d("0"),
		Status: domain.DocumentStatusPaid, OpenStatus: domain.DocumentStatusOverdue,
	}

	repos.Documents.On("ListAfter", mock.Anything, uuid.Nil, 100).Return([]domain.Document{*doc}, nil)
	repos.Documents.On("ListAfter", mock.Anything, doc.ID, 100).Return([]domain.Document{}, nil)
	repos.Documents.On("GetForUpdate", mock.Anything, tenantID, doc.ID).Return(doc, nil)
	repos.Allocations.On("SumByDocument", mock.Anything, tenantID, doc.ID).Return(d("0"), nil)
	repos.Documents.On("UpdateSettlement", mock.Anything, mock.MatchedBy(func(u *domain.Document) bool {
		return u.ID == doc.ID && u.AmountPaid.IsZero() && u.BalanceDue.Equal(d("500")) &&
			u.Status == domain.DocumentStatusOverdue
	})).Return(nil)

	report, err := svc.Run(context.Background(), true, 0)
	require.NoError(t, err)

	require.Len(t, report.Drifts, 1)
	assert.True(t, report.Drifts[0].Fixed)
	repos.AssertExpectations(t)
}

func TestReconcileService_StopsOnStoreError(t *testing.T) {
	svc, repos := setupReconcileService()
	boom := errors.New("connection reset")

	repos.Documents.On("ListAfter", mock.Anything, uuid.Nil, 10).Return(nil, boom)

	report, err := svc.Run(context.Background(), false, 10)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, report.Scanned)
}
