package calc

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
)

// tolerance is one paisa, the smallest unit a rounded amount can drift by.
var tolerance = decimal.New(1, -moneyPlaces)

// Totals is the computed money side of a document.
type Totals struct {
	Subtotal       decimal.Decimal   `json:"subtotal"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	IGSTAmount     decimal.Decimal   `json:"igst_amount"`
	CGSTAmount     decimal.Decimal   `json:"cgst_amount"`
	SGSTAmount     decimal.Decimal   `json:"sgst_amount"`
	ShippingCharge decimal.Decimal   `json:"shipping_charge"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	InterState     bool              `json:"inter_state"`
	LineItems      []domain.LineItem `json:"line_items"`
}

// Aggregate computes every line and rolls them into document totals.
func Aggregate(lines []LineInput, discount, shipping decimal.Decimal, from, to gst.Jurisdiction) (*Totals, error) {
	if len(lines) == 0 {
		return nil, domain.ErrNoLineItems
	}
	if discount.IsNegative() {
		return nil, domain.NewValidationError("discount_amount", "must not be negative")
	}
	if shipping.IsNegative() {
		return nil, domain.NewValidationError("shipping_charge", "must not be negative")
	}

	t := &Totals{
		DiscountAmount: discount.Round(moneyPlaces),
		ShippingCharge: shipping.Round(moneyPlaces),
		InterState:     gst.IsInterState(from, to),
		LineItems:      make([]domain.LineItem, 0, len(lines)),
	}
	for i := range lines {
		item, err := CalculateLine(lines[i], from, to)
		if err != nil {
			return nil, fmt.Errorf("line_items[%d]: %w", i, err)
		}
		item.Position = i + 1
		t.Subtotal = t.Subtotal.Add(item.Amount)
		t.IGSTAmount = t.IGSTAmount.Add(item.IGSTAmount)
		t.CGSTAmount = t.CGSTAmount.Add(item.CGSTAmount)
		t.SGSTAmount = t.SGSTAmount.Add(item.SGSTAmount)
		t.LineItems = append(t.LineItems, item)
	}

	t.TotalAmount = t.Subtotal.
		Sub(t.DiscountAmount).
		Add(t.IGSTAmount).
		Add(t.CGSTAmount).
		Add(t.SGSTAmount).
		Add(t.ShippingCharge).
		Round(moneyPlaces)
	if t.TotalAmount.IsNegative() {
		return nil, domain.ErrNegativeTotal
	}
	return t, nil
}

// ApplyTo copies the totals and computed lines onto doc. Settlement fields
// are left for the caller to re-derive.
func (t *Totals) ApplyTo(doc *domain.Document) {
	doc.Subtotal = t.Subtotal
	doc.DiscountAmount = t.DiscountAmount
	doc.IGSTAmount = t.IGSTAmount
	doc.CGSTAmount = t.CGSTAmount
	doc.SGSTAmount = t.SGSTAmount
	doc.ShippingCharge = t.ShippingCharge
	doc.TotalAmount = t.TotalAmount
	doc.LineItems = t.LineItems
}

// Verify re-checks that doc's subtotal matches its lines and that its total
// reconstructs from the stored components.
func Verify(doc *domain.Document, items []domain.LineItem) error {
	sum := lo.Reduce(items, func(acc decimal.Decimal, li domain.LineItem, _ int) decimal.Decimal {
		return acc.Add(li.Amount)
	}, decimal.Zero)
	if !approxEqual(sum, doc.Subtotal) {
		return fmt.Errorf("%w: document %s subtotal %s, lines sum to %s",
			domain.ErrInvariantViolation, doc.ID, doc.Subtotal, sum)
	}

	want := doc.Subtotal.
		Sub(doc.DiscountAmount).
		Add(doc.TaxTotal()).
		Add(doc.ShippingCharge)
	if !approxEqual(want, doc.TotalAmount) {
		return fmt.Errorf("%w: document %s total %s, components give %s",
			domain.ErrInvariantViolation, doc.ID, doc.TotalAmount, want)
	}
	return nil
}

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// RateBucket aggregates the lines of one GST rate.
type RateBucket struct {
	GSTRate       decimal.Decimal
	TaxableAmount decimal.Decimal
	IGSTAmount    decimal.Decimal
	CGSTAmount    decimal.Decimal
	SGSTAmount    decimal.Decimal
	Lines         int
}

// SummarizeByRate groups line items by GST rate, lowest rate first.
func SummarizeByRate(items []domain.LineItem) []RateBucket {
	groups := lo.GroupBy(items, func(li domain.LineItem) string {
		return li.GSTRate.StringFixed(2)
	})

	buckets := make([]RateBucket, 0, len(groups))
	for _, lines := range groups {
		b := RateBucket{GSTRate: lines[0].GSTRate, Lines: len(lines)}
		for i := range lines {
			b.TaxableAmount = b.TaxableAmount.Add(lines[i].Amount)
			b.IGSTAmount = b.IGSTAmount.Add(lines[i].IGSTAmount)
			b.CGSTAmount = b.CGSTAmount.Add(lines[i].CGSTAmount)
			b.SGSTAmount = b.SGSTAmount.Add(lines[i].SGSTAmount)
		}
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].GSTRate.LessThan(buckets[j].GSTRate)
	})
	return buckets
}
