// Package calc computes line-item and document totals for GST documents.
// Every monetary value is rounded to two places at the point it is computed,
// so re-deriving a document from its stored lines reproduces the same totals.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// LineInput is one raw line of a document request.
type LineInput struct {
	Description     string          `json:"description"`
	HSNSAC          string          `json:"hsn_sac"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GSTRate         decimal.Decimal `json:"gst_rate"`
}

func (in *LineInput) validate() error {
	switch {
	case in.Quantity.IsNegative():
		return domain.NewValidationError("quantity", "must not be negative")
	case in.Rate.IsNegative():
		return domain.NewValidationError("rate", "must not be negative")
	case in.DiscountPercent.IsNegative():
		return domain.NewValidationError("discount_percent", "must not be negative")
	case in.GSTRate.IsNegative():
		return domain.NewValidationError("gst_rate", "must not be negative")
	case in.HSNSAC != "" && !gst.ValidHSNSAC(in.HSNSAC):
		return domain.NewValidationError("hsn_sac", "must be 4 to 8 digits")
	}
	return nil
}

// CalculateLine prices a single line and splits its tax for the from/to pair.
// The returned item has no identity fields set.
func CalculateLine(in LineInput, from, to gst.Jurisdiction) (domain.LineItem, error) {
	if err := in.validate(); err != nil {
		return domain.LineItem{}, err
	}

	lineTotal := in.Quantity.Mul(in.Rate).Round(moneyPlaces)
	discount := lineTotal.Mul(in.DiscountPercent).Div(hundred).Round(moneyPlaces)
	if discount.GreaterThan(lineTotal) {
		return domain.LineItem{}, domain.ErrDiscountExceedsLineTotal
	}
	amount := lineTotal.Sub(discount)
	tax := amount.Mul(in.GSTRate).Div(hundred).Round(moneyPlaces)
	split := gst.Split(tax, from, to)

	return domain.LineItem{
		Description:     in.Description,
		HSNSAC:          in.HSNSAC,
		Unit:            in.Unit,
		Quantity:        in.Quantity,
		Rate:            in.Rate,
		DiscountPercent: in.DiscountPercent,
		GSTRate:         in.GSTRate,
		DiscountAmount:  discount,
		IGSTAmount:      split.IGST,
		CGSTAmount:      split.CGST,
		SGSTAmount:      split.SGST,
		Amount:          amount,
	}, nil
}

// InputFromItem turns a stored line back into calculator input.
func InputFromItem(li *domain.LineItem) LineInput {
	return LineInput{
		Description:     li.Description,
		HSNSAC:          li.HSNSAC,
		Unit:            li.Unit,
		Quantity:        li.Quantity,
		Rate:            li.Rate,
		DiscountPercent: li.DiscountPercent,
		GSTRate:         li.GSTRate,
	}
}
