// Package currency converts declared monetary amounts into the base reporting
// currency (UAH) using fixed per-year rate tables. All arithmetic goes through
// shopspring/decimal so conversions stay reproducible across runs.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Code identifies one of the currencies the declaration registry records.
type Code string

const (
	UAH Code = "UAH" // base reporting currency
	USD Code = "USD"
	EUR Code = "EUR"
)

// UnknownRateError reports a conversion request outside the fixed rate tables.
// There is deliberately no fallback rate: defaulting an exchange rate would
// silently corrupt every downstream delta.
type UnknownRateError struct {
	Currency Code
	Year     int
}

func (e *UnknownRateError) Error() string {
	return fmt.Sprintf("no exchange rate for currency %q in year %d", e.Currency, e.Year)
}

// ToBaseByYearlyAvg converts amount to UAH using the yearly average rate for
// the given year. UAH passes through rounded to 2 decimal places; foreign
// amounts are rounded to the nearest whole unit, matching the precision of
// the published average rates.
func ToBaseByYearlyAvg(amount decimal.Decimal, code Code, year int) (decimal.Decimal, error) {
	switch code {
	case UAH:
		return amount.Round(2), nil
	case USD, EUR:
		rate, ok := avgRate(code, year)
		if !ok {
			return decimal.Zero, &UnknownRateError{Currency: code, Year: year}
		}
		return amount.Mul(rate).Round(0), nil
	default:
		return decimal.Zero, &UnknownRateError{Currency: code, Year: year}
	}
}

// ToBaseByYearlyRange converts amount to UAH twice, against the lowest and
// highest rate observed that year, for worst/best-case reporting.
func ToBaseByYearlyRange(amount decimal.Decimal, code Code, year int) (low, high decimal.Decimal, err error) {
	switch code {
	case UAH:
		rounded := amount.Round(2)
		return rounded, rounded, nil
	case USD, EUR:
		lo, hi, ok := rangeRate(code, year)
		if !ok {
			return decimal.Zero, decimal.Zero, &UnknownRateError{Currency: code, Year: year}
		}
		return amount.Mul(lo).Round(0), amount.Mul(hi).Round(0), nil
	default:
		return decimal.Zero, decimal.Zero, &UnknownRateError{Currency: code, Year: year}
	}
}

func avgRate(code Code, year int) (decimal.Decimal, bool) {
	table := usdAvgRate
	if code == EUR {
		table = eurAvgRate
	}
	raw, ok := table[fmt.Sprintf("%d", year)]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(raw), true
}

func rangeRate(code Code, year int) (decimal.Decimal, decimal.Decimal, bool) {
	table := usdRateRange
	if code == EUR {
		table = eurRateRange
	}
	r, ok := table[fmt.Sprintf("%d", year)]
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	return decimal.RequireFromString(r.low), decimal.RequireFromString(r.high), true
}
