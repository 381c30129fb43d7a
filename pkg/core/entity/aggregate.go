package entity

import (
	"github.com/shopspring/decimal"

	"declaration_audit/pkg/core/currency"
)

// OwnerCurrency is the value-tuple key of the per-person-per-currency
// holdings breakdown.
type OwnerCurrency struct {
	Owner    string        `json:"owner"`
	Currency currency.Code `json:"currency"`
}

// Aggregates are the per-filing summaries the diff engine works from. They
// are pure functions of the raw entity lists, computed once after parsing.
type Aggregates struct {
	TaxedIncomeByOwner      map[string]decimal.Decimal        `json:"taxed_income_by_owner"`
	HoldingsByOwnerCurrency map[OwnerCurrency]decimal.Decimal `json:"-"`
	HoldingsByCurrency      map[currency.Code]decimal.Decimal `json:"holdings_by_currency"`
}

// ComputeAggregates fills the cached summaries. Calling it again recomputes
// the same values; the inputs never change after parsing.
func (d *Declaration) ComputeAggregates() {
	d.Aggregates = Aggregates{
		TaxedIncomeByOwner:      TaxedIncomeByOwner(d.Income),
		HoldingsByOwnerCurrency: HoldingsByOwnerCurrency(d.Holdings),
		HoldingsByCurrency:      HoldingsByCurrency(d.Holdings),
	}
}

// TaxedIncomeByOwner sums taxed income per owner. The running sum is rounded
// to 2 decimal places at every accumulation step, which reproduces the
// historical report figures exactly.
func TaxedIncomeByOwner(entries []IncomeEntry) map[string]decimal.Decimal {
	byOwner := make(map[string]decimal.Decimal)
	for _, e := range entries {
		byOwner[e.Owner] = byOwner[e.Owner].Add(e.Taxed).Round(2)
	}
	return byOwner
}

// HoldingsByOwnerCurrency sums raw holding amounts per (owner, currency)
// pair. No conversion happens here.
func HoldingsByOwnerCurrency(holdings []MonetaryHolding) map[OwnerCurrency]decimal.Decimal {
	byPair := make(map[OwnerCurrency]decimal.Decimal)
	for _, h := range holdings {
		key := OwnerCurrency{Owner: h.Owner, Currency: h.Currency}
		byPair[key] = byPair[key].Add(h.Amount)
	}
	return byPair
}

// HoldingsByCurrency sums raw holding amounts per currency across all owners.
func HoldingsByCurrency(holdings []MonetaryHolding) map[currency.Code]decimal.Decimal {
	byCurrency := make(map[currency.Code]decimal.Decimal)
	for _, h := range holdings {
		byCurrency[h.Currency] = byCurrency[h.Currency].Add(h.Amount)
	}
	return byCurrency
}

// HoldingOwners returns the distinct owners appearing in a per-pair map.
func HoldingOwners(byPair map[OwnerCurrency]decimal.Decimal) map[string]bool {
	owners := make(map[string]bool)
	for key := range byPair {
		owners[key.Owner] = true
	}
	return owners
}
