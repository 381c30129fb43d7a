package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToBaseByYearlyAvg(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		code     Code
		year     int
		expected string
	}{
		{"UAH passes through", "1500.505", UAH, 2021, "1500.51"},
		{"UAH ignores missing year", "100", UAH, 1999, "100"},
		{"USD 2021", "1000", USD, 2021, "27290"},
		{"USD wartime rate", "1000", USD, 2022, "32340"},
		{"EUR 2019", "100", EUR, 2019, "2895"},
		{"foreign rounds to whole units", "10.4", USD, 2016, "266"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToBaseByYearlyAvg(decimal.RequireFromString(tc.amount), tc.code, tc.year)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.expected)) {
				t.Errorf("got %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestToBaseByYearlyAvgUnknownRate(t *testing.T) {
	tests := []struct {
		name string
		code Code
		year int
	}{
		{"year before table", USD, 2015},
		{"year after table", EUR, 2030},
		{"unsupported currency", Code("GBP"), 2021},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToBaseByYearlyAvg(decimal.NewFromInt(100), tc.code, tc.year)
			var rateErr *UnknownRateError
			if !errors.As(err, &rateErr) {
				t.Fatalf("expected UnknownRateError, got %v", err)
			}
			if rateErr.Currency != tc.code || rateErr.Year != tc.year {
				t.Errorf("error carries %s/%d, expected %s/%d", rateErr.Currency, rateErr.Year, tc.code, tc.year)
			}
		})
	}
}

func TestToBaseByYearlyRange(t *testing.T) {
	low, high, err := ToBaseByYearlyRange(decimal.NewFromInt(100), USD, 2022)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low.GreaterThan(high) {
		t.Errorf("low %s exceeds high %s", low, high)
	}

	// The range must bracket the average conversion.
	avg, err := ToBaseByYearlyAvg(decimal.NewFromInt(100), USD, 2022)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg.LessThan(low) || avg.GreaterThan(high) {
		t.Errorf("average %s outside range [%s, %s]", avg, low, high)
	}
}

func TestToBaseByYearlyRangeUAH(t *testing.T) {
	low, high, err := ToBaseByYearlyRange(decimal.RequireFromString("250.999"), UAH, 2020)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !low.Equal(high) {
		t.Errorf("UAH range must collapse, got [%s, %s]", low, high)
	}
	if !low.Equal(decimal.RequireFromString("251")) {
		t.Errorf("got %s, expected 251", low)
	}
}
