// Package settlement applies payments to outstanding documents and reverses
// them, keeping amount_paid, balance_due and status consistent with the
// allocation rows. Callers run both operations inside one transaction.
package settlement

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

// Entry asks for Amount of a payment to be allocated to DocumentID.
type Entry struct {
	DocumentID uuid.UUID       `json:"document_id" validate:"required"`
	Amount     decimal.Decimal `json:"allocated_amount"`
}

// Result describes what Apply wrote.
type Result struct {
	Allocations    []domain.Allocation
	Documents      []*domain.Document
	TotalAllocated decimal.Decimal
	ExcessAmount   decimal.Decimal
}

// Engine is the payment allocation engine.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply allocates payment across entries. The payment row must already exist.
// Entries are validated before anything is written; target documents are
// locked in ascending id order and then settled in the order supplied.
func (e *Engine) Apply(ctx context.Context, repos port.Repositories, payment *domain.Payment, entries []Entry) (*Result, error) {
	total, err := validateEntries(payment, entries)
	if err != nil {
		return nil, err
	}

	docs, order, err := lockDocuments(ctx, repos.Documents, payment.TenantID,
		lo.Map(entries, func(en Entry, _ int) uuid.UUID { return en.DocumentID }))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Allocations:    make([]domain.Allocation, 0, len(entries)),
		TotalAllocated: total,
	}
	for i, en := range entries {
		doc := docs[en.DocumentID]
		if err := checkPayable(payment, doc, en.Amount); err != nil {
			return nil, fmt.Errorf("allocations[%d]: %w", i, err)
		}

		alloc := domain.Allocation{
			ID:              uuid.New(),
			TenantID:        payment.TenantID,
			PaymentID:       payment.ID,
			DocumentID:      doc.ID,
			AllocatedAmount: en.Amount,
		}
		if err := repos.Allocations.Create(ctx, &alloc); err != nil {
			return nil, err
		}
		res.Allocations = append(res.Allocations, alloc)

		if doc.AmountPaid.IsZero() {
			doc.OpenStatus = doc.Status
		}
		Settle(doc, doc.AmountPaid.Add(en.Amount))
	}

	for _, id := range order {
		doc := docs[id]
		if err := repos.Documents.UpdateSettlement(ctx, doc); err != nil {
			return nil, err
		}
		if err := checkAgainstStore(ctx, repos.Allocations, doc); err != nil {
			return nil, err
		}
		res.Documents = append(res.Documents, doc)
	}

	res.ExcessAmount = decimal.Max(payment.Amount.Sub(total), decimal.Zero)
	payment.ExcessAmount = res.ExcessAmount
	payment.Allocations = res.Allocations
	if err := repos.Payments.UpdateExcess(ctx, payment); err != nil {
		return nil, err
	}
	return res, nil
}

// Reverse undoes every allocation of payment, then deletes the allocations
// and the payment row.
func (e *Engine) Reverse(ctx context.Context, repos port.Repositories, payment *domain.Payment) ([]*domain.Document, error) {
	allocs, err := repos.Allocations.ListByPayment(ctx, payment.TenantID, payment.ID)
	if err != nil {
		return nil, err
	}

	released := make(map[uuid.UUID]decimal.Decimal, len(allocs))
	for i := range allocs {
		released[allocs[i].DocumentID] = released[allocs[i].DocumentID].Add(allocs[i].AllocatedAmount)
	}

	docs, order, err := lockDocuments(ctx, repos.Documents, payment.TenantID, lo.Keys(released))
	if err != nil {
		return nil, err
	}
	touched := make([]*domain.Document, 0, len(order))
	for _, id := range order {
		doc := docs[id]
		Settle(doc, doc.AmountPaid.Sub(released[id]))
		if err := repos.Documents.UpdateSettlement(ctx, doc); err != nil {
			return nil, err
		}
		touched = append(touched, doc)
	}

	if err := repos.Allocations.DeleteByPayment(ctx, payment.TenantID, payment.ID); err != nil {
		return nil, err
	}
	for _, doc := range touched {
		if err := checkAgainstStore(ctx, repos.Allocations, doc); err != nil {
			return nil, err
		}
	}
	if err := repos.Payments.Delete(ctx, payment.TenantID, payment.ID); err != nil {
		return nil, err
	}
	return touched, nil
}

func validateEntries(payment *domain.Payment, entries []Entry) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, en := range entries {
		if en.DocumentID == uuid.Nil {
			return decimal.Zero, domain.NewValidationError(fmt.Sprintf("allocations[%d].document_id", i), "is required")
		}
		if !en.Amount.IsPositive() {
			return decimal.Zero, fmt.Errorf("allocations[%d]: %w", i, domain.ErrNonPositiveAllocation)
		}
		total = total.Add(en.Amount)
	}
	if total.GreaterThan(payment.Amount) {
		return decimal.Zero, fmt.Errorf("%w: allocating %s of %s", domain.ErrAllocationExceedsPayment, total, payment.Amount)
	}
	return total, nil
}

// lockDocuments row-locks every distinct id in ascending order so concurrent
// settlements touching overlapping documents cannot deadlock.
func lockDocuments(ctx context.Context, docs port.DocumentRepository, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.Document, []uuid.UUID, error) {
	order := lo.Uniq(ids)
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(order[i][:], order[j][:]) < 0
	})

	locked := make(map[uuid.UUID]*domain.Document, len(order))
	for _, id := range order {
		doc, err := docs.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return nil, nil, err
		}
		locked[id] = doc
	}
	return locked, order, nil
}

func checkPayable(payment *domain.Payment, doc *domain.Document, amount decimal.Decimal) error {
	switch {
	case doc.PartyID != payment.PartyID:
		return fmt.Errorf("%w: document %s belongs to another party", domain.ErrDocumentNotPayable, doc.DocumentNumber)
	case !payment.Direction.Accepts(doc.DocumentType):
		return fmt.Errorf("%w: a %s payment cannot settle a %s", domain.ErrDocumentNotPayable, payment.Direction, doc.DocumentType)
	case doc.Status == domain.DocumentStatusCancelled:
		return fmt.Errorf("%w: document %s is cancelled", domain.ErrDocumentNotPayable, doc.DocumentNumber)
	case amount.GreaterThan(doc.BalanceDue):
		return fmt.Errorf("%w: %s against %s due on %s",
			domain.ErrAllocationExceedsBalance, amount, doc.BalanceDue, doc.DocumentNumber)
	}
	return nil
}

func checkAgainstStore(ctx context.Context, allocs port.AllocationRepository, doc *domain.Document) error {
	sum, err := allocs.SumByDocument(ctx, doc.TenantID, doc.ID)
	if err != nil {
		return err
	}
	if !sum.Equal(doc.AmountPaid) {
		return fmt.Errorf("%w: document %s amount_paid %s, allocations sum to %s",
			domain.ErrInvariantViolation, doc.ID, doc.AmountPaid, sum)
	}
	if !doc.BalanceDue.Equal(decimal.Max(doc.TotalAmount.Sub(doc.AmountPaid), decimal.Zero)) {
		return fmt.Errorf("%w: document %s balance_due %s does not match total %s less paid %s",
			domain.ErrInvariantViolation, doc.ID, doc.BalanceDue, doc.TotalAmount, doc.AmountPaid)
	}
	return nil
}
