package settlement_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

// memStore is an in-memory stand-in for the rows the engine touches.
type memStore struct {
	docs     map[uuid.UUID]*domain.Document
	payments map[uuid.UUID]*domain.Payment
	allocs   []domain.Allocation
	locked   []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		docs:     map[uuid.UUID]*domain.Document{},
		payments: map[uuid.UUID]*domain.Payment{},
	}
}

func (s *memStore) repos() port.Repositories {
	return port.Repositories{
		Documents:   memDocs{s},
		Payments:    memPayments{s},
		Allocations: memAllocs{s},
	}
}

func (s *memStore) addDoc(doc *domain.Document) *domain.Document {
	s.docs[doc.ID] = doc
	return doc
}

func (s *memStore) doc(id uuid.UUID) *domain.Document {
	return s.docs[id]
}

type memDocs struct{ s *memStore }

func (r memDocs) Create(_ context.Context, doc *domain.Document) error {
	r.s.docs[doc.ID] = doc
	return nil
}

func (r memDocs) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Document, error) {
	doc, ok := r.s.docs[id]
	if !ok || doc.TenantID != tenantID {
		return nil, domain.ErrDocumentNotFound
	}
	cp := *doc
	return &cp, nil
}

func (r memDocs) GetForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*domain.Document, error) {
	r.s.locked = append(r.s.locked, id)
	return r.GetByID(ctx, tenantID, id)
}

func (r memDocs) UpdateTotals(_ context.Context, doc *domain.Document) error {
	cp := *doc
	r.s.docs[doc.ID] = &cp
	return nil
}

func (r memDocs) UpdateSettlement(_ context.Context, doc *domain.Document) error {
	stored := r.s.docs[doc.ID]
	stored.AmountPaid = doc.AmountPaid
	stored.BalanceDue = doc.BalanceDue
	stored.Status = doc.Status
	stored.OpenStatus = doc.OpenStatus
	return nil
}

func (r memDocs) CountByType(context.Context, uuid.UUID, domain.DocumentType) (int64, error) {
	return int64(len(r.s.docs)), nil
}

func (r memDocs) ListForRegister(context.Context, uuid.UUID, port.RegisterFilter) ([]domain.Document, error) {
	return nil, nil
}

func (r memDocs) ListAfter(context.Context, uuid.UUID, int) ([]domain.Document, error) {
	return nil, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Create(_ context.Context, p *domain.Payment) error {
	r.s.payments[p.ID] = p
	return nil
}

func (r memPayments) GetByID(_ context.Context, _, id uuid.UUID) (*domain.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (r memPayments) GetForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*domain.Payment, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r memPayments) UpdateExcess(_ context.Context, p *domain.Payment) error {
	if stored, ok := r.s.payments[p.ID]; ok {
		stored.ExcessAmount = p.ExcessAmount
	}
	return nil
}

func (r memPayments) CountByDirection(context.Context, uuid.UUID, domain.PaymentDirection) (int64, error) {
	return int64(len(r.s.payments)), nil
}

func (r memPayments) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(r.s.payments, id)
	return nil
}

type memAllocs struct{ s *memStore }

func (r memAllocs) Create(_ context.Context, a *domain.Allocation) error {
	r.s.allocs = append(r.s.allocs, *a)
	return nil
}

func (r memAllocs) ListByPayment(_ context.Context, _, paymentID uuid.UUID) ([]domain.Allocation, error) {
	var out []domain.Allocation
	for _, a := range r.s.allocs {
		if a.PaymentID == paymentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAllocs) SumByDocument(_ context.Context, _, docID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range r.s.allocs {
		if a.DocumentID == docID {
			sum = sum.Add(a.AllocatedAmount)
		}
	}
	return sum, nil
}

func (r memAllocs) DeleteByPayment(_ context.Context, _, paymentID uuid.UUID) error {
	kept := r.s.allocs[:0]
	for _, a := range r.s.allocs {
		if a.PaymentID != paymentID {
			kept = append(kept, a)
		}
	}
	r.s.allocs = kept
	return nil
}
