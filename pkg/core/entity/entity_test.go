package entity

import (
	"testing"

	"github.com/shopspring/decimal"

	"declaration_audit/pkg/core/currency"
)

func TestPropertySame(t *testing.T) {
	base := PropertyItem{
		Place:       "м. Київ",
		Type:        "квартира",
		AcquireDate: "12.06.2015",
		TotalArea:   72.4,
	}

	same := base
	same.Place = "Україна, м. Київ"
	same.Cost = Cost{State: CostNumeric, Value: 1200000}
	if !base.Same(same) {
		t.Error("place and cost drift must not break identity")
	}

	otherArea := base
	otherArea.TotalArea = 72.5
	if base.Same(otherArea) {
		t.Error("different area is a different asset")
	}

	otherDate := base
	otherDate.AcquireDate = "12.06.2016"
	if base.Same(otherDate) {
		t.Error("different acquisition date is a different asset")
	}
}

func TestPropertySamePlace(t *testing.T) {
	a := PropertyItem{Place: "м. Київ"}
	b := PropertyItem{Place: "Україна, М. КИЇВ"}
	if !a.SamePlace(b) {
		t.Error("containment with case drift must match")
	}

	c := PropertyItem{Place: "м. Львів"}
	if a.SamePlace(c) {
		t.Error("different places reported equal")
	}
}

func TestPropertyAcquireYear(t *testing.T) {
	tests := []struct {
		date     string
		expected int
		wantErr  bool
	}{
		{"12.06.2015", 2015, false},
		{"2019", 2019, false},
		{"невідомо", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := PropertyItem{AcquireDate: tc.date}.AcquireYear()
		if tc.wantErr {
			if err == nil {
				t.Errorf("AcquireYear(%q): expected error", tc.date)
			}
			continue
		}
		if err != nil {
			t.Errorf("AcquireYear(%q): unexpected error %v", tc.date, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("AcquireYear(%q) = %d, expected %d", tc.date, got, tc.expected)
		}
	}
}

func TestVehicleSame(t *testing.T) {
	car, err := NewVehicleItem("автомобіль легковий", "Toyota", "Camry", "2018", "01.03.2019", nil, Cost{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	relisted, err := NewVehicleItem("Автомобіль легковий", "TOYOTA", "camry", "15.07.2018", "01.01.2020", nil, Cost{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !car.Same(relisted) {
		t.Error("case drift in brand and model must not break identity")
	}

	otherYear, _ := NewVehicleItem("автомобіль легковий", "Toyota", "Camry", "2019", "01.03.2019", nil, Cost{})
	if car.Same(otherYear) {
		t.Error("different manufacture year is a different vehicle")
	}
}

func TestNewVehicleItemBadYear(t *testing.T) {
	if _, err := NewVehicleItem("автомобіль", "Lada", "2101", "не відомо", "", nil, Cost{}); err == nil {
		t.Error("expected error for unparseable manufacture year")
	}
}

func TestNewIncomeEntryTaxedAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		origin   string
		expected string
	}{
		{"salary keeps 80 percent", "10000", "Заробітна плата отримана за основним місцем роботи", "8000"},
		{"salary marker mid-phrase", "1234.55", "дохід: заробітна плата", "987.64"},
		{"gift passes through", "5000", "Подарунок у негрошовій формі", "5000"},
		{"dividends pass through", "777.77", "Дивіденди", "777.77"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewIncomeEntry(decimal.RequireFromString(tc.amount), "1", tc.origin)
			if !e.Taxed.Equal(decimal.RequireFromString(tc.expected)) {
				t.Errorf("taxed = %s, expected %s", e.Taxed, tc.expected)
			}
			if !e.Amount.Equal(decimal.RequireFromString(tc.amount)) {
				t.Errorf("raw amount changed: %s", e.Amount)
			}
		})
	}
}

func TestTaxedIncomeByOwner(t *testing.T) {
	entries := []IncomeEntry{
		NewIncomeEntry(decimal.RequireFromString("10000.10"), "1", "заробітна плата"),
		NewIncomeEntry(decimal.RequireFromString("500"), "1", "дивіденди"),
		NewIncomeEntry(decimal.RequireFromString("3000"), "2", "заробітна плата"),
	}
	byOwner := TaxedIncomeByOwner(entries)

	if got := byOwner["1"]; !got.Equal(decimal.RequireFromString("8500.08")) {
		t.Errorf("owner 1 taxed total = %s, expected 8500.08", got)
	}
	if got := byOwner["2"]; !got.Equal(decimal.RequireFromString("2400")) {
		t.Errorf("owner 2 taxed total = %s, expected 2400", got)
	}
}

func TestHoldingsAggregates(t *testing.T) {
	holdings := []MonetaryHolding{
		{Amount: decimal.NewFromInt(1000), Currency: currency.UAH, Owner: "1"},
		{Amount: decimal.NewFromInt(2000), Currency: currency.UAH, Owner: "1"},
		{Amount: decimal.NewFromInt(500), Currency: currency.USD, Owner: "2"},
	}

	byPair := HoldingsByOwnerCurrency(holdings)
	if got := byPair[OwnerCurrency{Owner: "1", Currency: currency.UAH}]; !got.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("pair (1, UAH) = %s, expected 3000", got)
	}
	if got := byPair[OwnerCurrency{Owner: "2", Currency: currency.USD}]; !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("pair (2, USD) = %s, expected 500", got)
	}

	byCurrency := HoldingsByCurrency(holdings)
	if got := byCurrency[currency.UAH]; !got.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("UAH total = %s, expected 3000", got)
	}

	owners := HoldingOwners(byPair)
	if !owners["1"] || !owners["2"] || len(owners) != 2 {
		t.Errorf("owners = %v, expected {1, 2}", owners)
	}
}

func TestComputeAggregatesIdempotent(t *testing.T) {
	d := NewDeclaration(CategoryAnnual, "doc-1", 42, "2022-03-01", 2021, SubtypeRegular, "")
	d.Income = []IncomeEntry{NewIncomeEntry(decimal.NewFromInt(1000), "1", "заробітна плата")}
	d.Holdings = []MonetaryHolding{{Amount: decimal.NewFromInt(100), Currency: currency.EUR, Owner: "1"}}

	d.ComputeAggregates()
	first := d.Aggregates.TaxedIncomeByOwner["1"]
	d.ComputeAggregates()
	second := d.Aggregates.TaxedIncomeByOwner["1"]

	if !first.Equal(second) {
		t.Errorf("recompute changed the total: %s then %s", first, second)
	}
	if !first.Equal(decimal.NewFromInt(800)) {
		t.Errorf("taxed total = %s, expected 800", first)
	}
}

func TestDeclarationMinorFlagAndLabel(t *testing.T) {
	tests := []struct {
		name     string
		category int
		subtype  int
		minor    bool
		label    string
	}{
		{"annual", CategoryAnnual, SubtypeRegular, false, "Щорічна"},
		{"corrected annual", CategoryAnnual, SubtypeCorrected, false, "Виправлена щорічна"},
		{"change notice", CategoryChangeNotice, SubtypeChangeNotice, true, "Про суттєві зміни у майновому стані"},
		{"at dismissal", CategoryAtDismissal, SubtypeRegular, false, "При звільненні"},
		{"candidate", CategoryCandidate, SubtypeRegular, false, "Кандидата на посаду"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDeclaration(tc.category, "id", 1, "2020-01-01", 2019, tc.subtype, "")
			if d.Minor != tc.minor {
				t.Errorf("Minor = %v, expected %v", d.Minor, tc.minor)
			}
			if d.Label != tc.label {
				t.Errorf("Label = %q, expected %q", d.Label, tc.label)
			}
		})
	}
}

func TestPersonLookup(t *testing.T) {
	d := NewDeclaration(CategoryAnnual, "id", 1, "2020-01-01", 2019, SubtypeRegular, "")
	d.FullName = "Петренко Петро Петрович"
	d.Persons["2"] = Person{ID: 2, FullName: "Петренко Марія Іванівна", Relation: "дружина"}

	if name, ok := d.PersonNameByID("1"); !ok || name != "Петренко Петро Петрович" {
		t.Errorf("self lookup = %q, %v", name, ok)
	}
	if label := d.PersonLabelByID("2"); label != "Петренко Марія Іванівна (дружина)" {
		t.Errorf("label = %q", label)
	}
	if label := d.PersonLabelByID("9"); label != "особа з ID 9" {
		t.Errorf("unresolved label = %q", label)
	}
}
