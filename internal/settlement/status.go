package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
)

// Settle sets the document's amount paid (clamped at zero) and re-derives
// balance_due and status from it. A document with nothing paid only changes
// status if it was marked paid or partial. Cancelled documents keep their
// status.
func Settle(doc *domain.Document, paid decimal.Decimal) {
	doc.AmountPaid = decimal.Max(paid, decimal.Zero)
	doc.BalanceDue = decimal.Max(doc.TotalAmount.Sub(doc.AmountPaid), decimal.Zero)

	if doc.Status == domain.DocumentStatusCancelled {
		return
	}
	switch {
	case doc.AmountPaid.IsPositive() && doc.AmountPaid.GreaterThanOrEqual(doc.TotalAmount):
		doc.Status = domain.DocumentStatusPaid
	case doc.AmountPaid.IsPositive():
		doc.Status = domain.DocumentStatusPartial
	case doc.Status == domain.DocumentStatusPaid || doc.Status == domain.DocumentStatusPartial:
		doc.Status = OpenStatus(doc)
	}
}

// OpenStatus is the status a document returns to once nothing is paid on it:
// the status recorded before its first payment, or the type's default when
// none was recorded.
func OpenStatus(doc *domain.Document) domain.DocumentStatus {
	switch doc.OpenStatus {
	case "", domain.DocumentStatusPaid, domain.DocumentStatusPartial:
		return doc.DocumentType.DefaultOpenStatus()
	}
	return doc.OpenStatus
}
