// Package currency converts caller-supplied foreign amounts into the
// company's base currency. Rates are always supplied by the caller.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
)

// Input is the currency side of a payment request. For base-currency
// payments only Amount is needed; for foreign payments OriginalAmount and
// ExchangeRate are required and Amount is ignored.
type Input struct {
	Amount         decimal.Decimal `json:"amount"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	CurrencyCode   string          `json:"currency_code"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
}

// Normalized is what gets stored on the payment.
type Normalized struct {
	Amount         decimal.Decimal
	OriginalAmount decimal.Decimal
	CurrencyCode   string
	ExchangeRate   decimal.Decimal
}

// Normalize resolves in against the base currency.
func Normalize(base string, in Input) (Normalized, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if !validCode(base) {
		return Normalized{}, domain.NewValidationError("base_currency", "must be a 3-letter currency code")
	}
	code := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))

	if code == "" || code == base {
		if !in.Amount.IsPositive() {
			return Normalized{}, domain.NewValidationError("amount", "must be greater than zero")
		}
		amount := in.Amount.Round(2)
		return Normalized{
			Amount:         amount,
			OriginalAmount: amount,
			CurrencyCode:   base,
			ExchangeRate:   decimal.NewFromInt(1),
		}, nil
	}

	if !validCode(code) {
		return Normalized{}, domain.NewValidationError("currency_code", "must be a 3-letter currency code")
	}
	if !in.OriginalAmount.IsPositive() {
		return Normalized{}, domain.NewValidationError("original_amount", "must be greater than zero")
	}
	if !in.ExchangeRate.IsPositive() {
		return Normalized{}, domain.NewValidationError("exchange_rate", "must be greater than zero")
	}
	amount := in.OriginalAmount.Mul(in.ExchangeRate).Round(2)
	if !amount.IsPositive() {
		return Normalized{}, domain.NewValidationError("amount", "converted amount rounds to zero")
	}
	return Normalized{
		Amount:         amount,
		OriginalAmount: in.OriginalAmount,
		CurrencyCode:   code,
		ExchangeRate:   in.ExchangeRate,
	}, nil
}

func validCode(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
