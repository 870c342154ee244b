package calc_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/calc"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
)

var (
	haryana     = gst.Jurisdiction{State: "Haryana"}
	maharashtra = gst.Jurisdiction{State: "Maharashtra"}
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func scenarioLine() calc.LineInput {
	return calc.LineInput{
		Description: "Cotton fabric",
		HSNSAC:      "5208",
		Unit:        "mtr",
		Quantity:    d("500"),
		Rate:        d("650"),
		GSTRate:     d("12"),
	}
}

func TestCalculateLine_InterState(t *testing.T) {
	li, err := calc.CalculateLine(scenarioLine(), haryana, maharashtra)
	require.NoError(t, err)

	assertDec(t, "325000", li.Amount)
	assertDec(t, "39000", li.IGSTAmount)
	assert.True(t, li.CGSTAmount.IsZero())
	assert.True(t, li.SGSTAmount.IsZero())
	assert.True(t, li.DiscountAmount.IsZero())
	assert.Equal(t, "5208", li.HSNSAC)
}

func TestCalculateLine_IntraState(t *testing.T) {
	li, err := calc.CalculateLine(scenarioLine(), haryana, haryana)
	require.NoError(t, err)

	assertDec(t, "325000", li.Amount)
	assert.True(t, li.IGSTAmount.IsZero())
	assertDec(t, "19500", li.CGSTAmount)
	assertDec(t, "19500", li.SGSTAmount)
}

func TestCalculateLine_Discount(t *testing.T) {
	in := calc.LineInput{Quantity: d("3"), Rate: d("99.99"), DiscountPercent: d("10"), GSTRate: d("18")}
	li, err := calc.CalculateLine(in, haryana, haryana)
	require.NoError(t, err)

	// 299.97 line total, 30.00 discount (29.997 rounded), 269.97 taxable.
	assertDec(t, "30.00", li.DiscountAmount)
	assertDec(t, "269.97", li.Amount)
	// 48.5946 -> 48.59, split 24.29 / 24.30.
	assertDec(t, "24.29", li.SGSTAmount)
	assertDec(t, "24.30", li.CGSTAmount)
}

func TestCalculateLine_FullDiscountAllowed(t *testing.T) {
	in := calc.LineInput{Quantity: d("2"), Rate: d("50"), DiscountPercent: d("100"), GSTRate: d("5")}
	li, err := calc.CalculateLine(in, haryana, maharashtra)
	require.NoError(t, err)
	assert.True(t, li.Amount.IsZero())
	assert.True(t, li.IGSTAmount.IsZero())
}

func TestCalculateLine_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    calc.LineInput
		field string
	}{
		{"negative_quantity", calc.LineInput{Quantity: d("-1"), Rate: d("10")}, "quantity"},
		{"negative_rate", calc.LineInput{Quantity: d("1"), Rate: d("-10")}, "rate"},
		{"negative_discount", calc.LineInput{Quantity: d("1"), Rate: d("10"), DiscountPercent: d("-5")}, "discount_percent"},
		{"negative_gst", calc.LineInput{Quantity: d("1"), Rate: d("10"), GSTRate: d("-18")}, "gst_rate"},
		{"malformed_hsn", calc.LineInput{Quantity: d("1"), Rate: d("10"), HSNSAC: "52A8"}, "hsn_sac"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.CalculateLine(tt.in, haryana, haryana)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCalculateLine_DiscountExceedsLineTotal(t *testing.T) {
	in := calc.LineInput{Quantity: d("1"), Rate: d("100"), DiscountPercent: d("100.5")}
	_, err := calc.CalculateLine(in, haryana, haryana)
	assert.ErrorIs(t, err, domain.ErrDiscountExceedsLineTotal)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCalculateLine_RoundingProperty(t *testing.T) {
	hundred := d("100")
	quantities := []string{"1", "3", "7", "12", "500"}
	rates := []string{"0.99", "10.05", "99.99", "650", "1234.57"}
	discounts := []string{"0", "2.5", "7.5", "12.345", "33.33", "100"}
	gstRates := []string{"0", "0.25", "3", "5", "12", "18", "28"}

	for _, q := range quantities {
		for _, r := range rates {
			for _, p := range discounts {
				for _, g := range gstRates {
					in := calc.LineInput{Quantity: d(q), Rate: d(r), DiscountPercent: d(p), GSTRate: d(g)}
					for _, to := range []gst.Jurisdiction{haryana, maharashtra} {
						li, err := calc.CalculateLine(in, haryana, to)
						require.NoError(t, err)

						direct := d(q).Mul(d(r)).Mul(hundred.Sub(d(p)).Div(hundred)).Round(2)
						assert.True(t, li.Amount.Sub(direct).Abs().LessThanOrEqual(d("0.01")),
							"amount q=%s r=%s p=%s: got %s want %s", q, r, p, li.Amount, direct)

						tax := li.Amount.Mul(d(g)).Div(hundred).Round(2)
						assert.True(t, li.TaxTotal().Equal(tax),
							"tax q=%s r=%s p=%s g=%s: got %s want %s", q, r, p, g, li.TaxTotal(), tax)

						assert.True(t, li.Amount.Equal(li.Amount.Round(2)))
					}
				}
			}
		}
	}
}

func TestAggregate_ScenarioA(t *testing.T) {
	totals, err := calc.Aggregate([]calc.LineInput{scenarioLine()}, decimal.Zero, decimal.Zero, haryana, maharashtra)
	require.NoError(t, err)

	assert.True(t, totals.InterState)
	assertDec(t, "325000", totals.Subtotal)
	assertDec(t, "39000", totals.IGSTAmount)
	assert.True(t, totals.CGSTAmount.IsZero())
	assert.True(t, totals.SGSTAmount.IsZero())
	assertDec(t, "364000", totals.TotalAmount)
	require.Len(t, totals.LineItems, 1)
	assert.Equal(t, 1, totals.LineItems[0].Position)
}

func TestAggregate_ScenarioB(t *testing.T) {
	totals, err := calc.Aggregate([]calc.LineInput{scenarioLine()}, decimal.Zero, decimal.Zero, haryana, haryana)
	require.NoError(t, err)

	assert.False(t, totals.InterState)
	assert.True(t, totals.IGSTAmount.IsZero())
	assertDec(t, "19500", totals.CGSTAmount)
	assertDec(t, "19500", totals.SGSTAmount)
	assertDec(t, "364000", totals.TotalAmount)
}

func TestAggregate_DiscountAndShipping(t *testing.T) {
	lines := []calc.LineInput{
		{Quantity: d("2"), Rate: d("1000"), GSTRate: d("18")},
		{Quantity: d("1"), Rate: d("500"), DiscountPercent: d("10"), GSTRate: d("5")},
	}
	totals, err := calc.Aggregate(lines, d("100"), d("250.50"), haryana, maharashtra)
	require.NoError(t, err)

	// 2000 + 450 subtotal, 360 + 22.50 IGST.
	assertDec(t, "2450", totals.Subtotal)
	assertDec(t, "382.50", totals.IGSTAmount)
	assertDec(t, "2983.00", totals.TotalAmount)
	assert.Equal(t, 2, totals.LineItems[1].Position)
}

func TestAggregate_Validation(t *testing.T) {
	line := []calc.LineInput{scenarioLine()}

	_, err := calc.Aggregate(nil, decimal.Zero, decimal.Zero, haryana, haryana)
	assert.ErrorIs(t, err, domain.ErrNoLineItems)

	_, err = calc.Aggregate(line, d("-1"), decimal.Zero, haryana, haryana)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = calc.Aggregate(line, decimal.Zero, d("-1"), haryana, haryana)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = calc.Aggregate(line, d("400000"), decimal.Zero, haryana, haryana)
	assert.ErrorIs(t, err, domain.ErrNegativeTotal)

	bad := []calc.LineInput{scenarioLine(), {Quantity: d("1"), Rate: d("10"), DiscountPercent: d("150")}}
	_, err = calc.Aggregate(bad, decimal.Zero, decimal.Zero, haryana, haryana)
	assert.ErrorIs(t, err, domain.ErrDiscountExceedsLineTotal)
	assert.Contains(t, err.Error(), "line_items[1]")
}

func TestTotals_ApplyTo(t *testing.T) {
	totals, err := calc.Aggregate([]calc.LineInput{scenarioLine()}, decimal.Zero, d("10"), haryana, maharashtra)
	require.NoError(t, err)

	doc := &domain.Document{Status: domain.DocumentStatusFinal, AmountPaid: d("5")}
	totals.ApplyTo(doc)
	assertDec(t, "325000", doc.Subtotal)
	assertDec(t, "39000", doc.IGSTAmount)
	assertDec(t, "10", doc.ShippingCharge)
	assertDec(t, "364010", doc.TotalAmount)
	assertDec(t, "5", doc.AmountPaid)
	assert.Len(t, doc.LineItems, 1)
	assert.Equal(t, domain.DocumentStatusFinal, doc.Status)
}

func TestVerify(t *testing.T) {
	totals, err := calc.Aggregate([]calc.LineInput{scenarioLine()}, d("1000"), d("50"), haryana, haryana)
	require.NoError(t, err)
	doc := &domain.Document{}
	totals.ApplyTo(doc)

	require.NoError(t, calc.Verify(doc, doc.LineItems))

	drifted := *doc
	drifted.Subtotal = drifted.Subtotal.Add(d("0.01"))
	drifted.TotalAmount = drifted.TotalAmount.Add(d("0.01"))
	assert.NoError(t, calc.Verify(&drifted, doc.LineItems), "one paisa is tolerated")

	broken := *doc
	broken.Subtotal = broken.Subtotal.Add(d("1"))
	assert.ErrorIs(t, calc.Verify(&broken, doc.LineItems), domain.ErrInvariantViolation)

	badTotal := *doc
	badTotal.TotalAmount = badTotal.TotalAmount.Sub(d("5"))
	assert.ErrorIs(t, calc.Verify(&badTotal, doc.LineItems), domain.ErrInvariantViolation)
}

func TestSummarizeByRate(t *testing.T) {
	lines := []calc.LineInput{
		{Quantity: d("1"), Rate: d("100"), GSTRate: d("18")},
		{Quantity: d("1"), Rate: d("200"), GSTRate: d("5")},
		{Quantity: d("2"), Rate: d("100"), GSTRate: d("18.00")},
	}
	totals, err := calc.Aggregate(lines, decimal.Zero, decimal.Zero, haryana, haryana)
	require.NoError(t, err)

	buckets := calc.SummarizeByRate(totals.LineItems)
	require.Len(t, buckets, 2)
	assertDec(t, "5", buckets[0].GSTRate)
	assertDec(t, "200", buckets[0].TaxableAmount)
	assert.Equal(t, 2, buckets[1].Lines)
	assertDec(t, "300", buckets[1].TaxableAmount)
	assertDec(t, "54", buckets[1].CGSTAmount.Add(buckets[1].SGSTAmount))
}

func TestInputFromItem_RoundTrips(t *testing.T) {
	li, err := calc.CalculateLine(scenarioLine(), haryana, maharashtra)
	require.NoError(t, err)
	again, err := calc.CalculateLine(calc.InputFromItem(&li), haryana, maharashtra)
	require.NoError(t, err)
	assert.True(t, li.Amount.Equal(again.Amount))
	assert.True(t, li.IGSTAmount.Equal(again.IGSTAmount))
}
