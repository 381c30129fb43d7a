package entity

import (
	"errors"
	"testing"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Cost
	}{
		{"empty string", "", Cost{State: CostAbsent}},
		{"not applicable phrase", "[Не застосовується]", Cost{State: CostAbsent}},
		{"not known phrase", "[Не відомо]", Cost{State: CostAbsent}},
		{"not specified bare", "Не вказано", Cost{State: CostAbsent}},
		{"not specified bracketed", "[Не вказано]", Cost{State: CostAbsent}},
		{"family member no info", "[Член сім'ї не надав інформацію]", Cost{State: CostAbsent}},
		{"relative declined", "Родич не надав інформацію", Cost{State: CostWithheld, Text: "Родич не надав інформацію"}},
		{"relative declined lowercase", "родич не надав інформацію", Cost{State: CostWithheld, Text: "родич не надав інформацію"}},
		{"plain number", "250000", Cost{State: CostNumeric, Value: 250000}},
		{"zero", "0", Cost{State: CostNumeric, Value: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCost(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("got %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestParseCostUnparseable(t *testing.T) {
	for _, raw := range []string{"дуже дорого", "12 000", "-5", "100грн"} {
		_, err := ParseCost(raw)
		var fieldErr *UnparseableFieldError
		if !errors.As(err, &fieldErr) {
			t.Errorf("ParseCost(%q): expected UnparseableFieldError, got %v", raw, err)
		}
	}
}

func TestCostEqual(t *testing.T) {
	numeric := Cost{State: CostNumeric, Value: 100}
	sameNumeric := Cost{State: CostNumeric, Value: 100}
	otherNumeric := Cost{State: CostNumeric, Value: 200}
	absent := Cost{State: CostAbsent}
	withheldA := Cost{State: CostWithheld, Text: "Родич не надав інформацію"}
	withheldB := Cost{State: CostWithheld, Text: "Родич відмовився"}

	if !numeric.Equal(sameNumeric) {
		t.Error("equal numeric costs reported unequal")
	}
	if numeric.Equal(otherNumeric) {
		t.Error("different numeric costs reported equal")
	}
	if numeric.Equal(absent) || absent.Equal(withheldA) {
		t.Error("different states reported equal")
	}
	// Text content does not matter once both sides are withheld.
	if !withheldA.Equal(withheldB) {
		t.Error("two withheld costs reported unequal")
	}
}

func TestCostString(t *testing.T) {
	if got := (Cost{State: CostNumeric, Value: 5000}).String(); got != "5000 грн" {
		t.Errorf("got %q", got)
	}
	if got := (Cost{State: CostAbsent}).String(); got != "не вказано" {
		t.Errorf("got %q", got)
	}
	if got := (Cost{State: CostWithheld, Text: "Родич не надав інформацію"}).String(); got != "Родич не надав інформацію" {
		t.Errorf("got %q", got)
	}
}
