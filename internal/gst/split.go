// Package gst decides the tax jurisdiction of a transaction and splits GST
// between the integrated (IGST) and central/state (CGST+SGST) heads.
package gst

import (
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

var two = decimal.NewFromInt(2)

// Jurisdiction is one side of a transaction: an explicit state name and/or a GSTIN.
type Jurisdiction struct {
	State string `json:"state"`
	GSTIN string `json:"gstin"`
}

// TaxSplit is a tax amount divided between IGST and CGST+SGST.
type TaxSplit struct {
	IGST decimal.Decimal `json:"igst"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
}

// Total returns igst + cgst + sgst.
func (s TaxSplit) Total() decimal.Decimal {
	return s.IGST.Add(s.CGST).Add(s.SGST)
}

// Resolve returns the canonical (trimmed, lower-cased) state of a party. An
// explicit state name wins; otherwise the first two characters of the tax ID
// are looked up in the jurisdiction table.
func Resolve(stateName, taxID string) (string, bool) {
	if s := normalize(stateName); s != "" {
		return s, true
	}
	if len(taxID) < 2 {
		return "", false
	}
	name, ok := stateCodes[taxID[:2]]
	if !ok {
		return "", false
	}
	return normalize(name), true
}

// IsInterState reports whether from and to resolve to different states.
// When either side cannot be resolved the transaction is treated as
// intra-state.
func IsInterState(from, to Jurisdiction) bool {
	fromState, ok := Resolve(from.State, from.GSTIN)
	if !ok {
		return false
	}
	toState, ok := Resolve(to.State, to.GSTIN)
	if !ok {
		return false
	}
	return fromState != toState
}

// Split divides totalTax between the heads applicable to the transaction.
// Intra-state halves are truncated to the paisa for SGST and CGST takes the
// remainder, so CGST+SGST always reconstructs the rounded total exactly.
func Split(totalTax decimal.Decimal, from, to Jurisdiction) TaxSplit {
	total := totalTax.Round(moneyPlaces)
	if IsInterState(from, to) {
		return TaxSplit{IGST: total, CGST: decimal.Zero, SGST: decimal.Zero}
	}
	sgst := total.Div(two).Truncate(moneyPlaces)
	return TaxSplit{IGST: decimal.Zero, CGST: total.Sub(sgst), SGST: sgst}
}
