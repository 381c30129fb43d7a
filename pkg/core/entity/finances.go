package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"declaration_audit/pkg/core/currency"
)

// salaryMarker identifies income origins subject to the flat withholding.
const salaryMarker = "заробітна плата"

// withholdingRate is the flat share of salary income kept after taxes.
var withholdingRate = decimal.RequireFromString("0.8")

// IncomeEntry is one income record. Taxed is derived once at construction and
// never recomputed: 80% of the amount for salary-labeled origins, the full
// amount otherwise.
type IncomeEntry struct {
	Amount decimal.Decimal `json:"amount"`
	Owner  string          `json:"owner"`
	Origin string          `json:"origin"`
	Taxed  decimal.Decimal `json:"taxed"`
}

// NewIncomeEntry classifies the origin and fixes the taxed amount.
func NewIncomeEntry(amount decimal.Decimal, owner, origin string) IncomeEntry {
	e := IncomeEntry{Amount: amount, Owner: owner, Origin: origin}
	if strings.Contains(strings.ToLower(origin), salaryMarker) {
		e.Taxed = amount.Mul(withholdingRate).Round(2)
	} else {
		e.Taxed = amount
	}
	return e
}

// MonetaryHolding is one cash or account entry. Owner is the stringified
// person identifier.
type MonetaryHolding struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency currency.Code   `json:"currency"`
	Owner    string          `json:"owner"`
	Type     string          `json:"type"`
}

// ToBase converts the holding into the base currency using the yearly
// average rate for the given year.
func (h MonetaryHolding) ToBase(year int) (decimal.Decimal, error) {
	return currency.ToBaseByYearlyAvg(h.Amount, h.Currency, year)
}

// ToBaseRange converts the holding using the yearly (low, high) rate range.
func (h MonetaryHolding) ToBaseRange(year int) (low, high decimal.Decimal, err error) {
	return currency.ToBaseByYearlyRange(h.Amount, h.Currency, year)
}
