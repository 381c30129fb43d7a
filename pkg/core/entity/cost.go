package entity

import (
	"fmt"
	"strings"
)

// CostState distinguishes the three shapes a declared value can take.
// Absent is a real state, never an implicit zero: diff logic compares
// presence as a boolean before it ever compares amounts.
type CostState int

const (
	CostAbsent   CostState = iota // nothing declared, or a "not applicable" phrase
	CostNumeric                   // an assessed value in UAH
	CostWithheld                  // a relative declined to disclose the value
)

// Cost is the tri-state valuation attached to property and vehicle entries.
type Cost struct {
	State CostState `json:"state"`
	Value int64     `json:"value,omitempty"` // set only when State == CostNumeric
	Text  string    `json:"text,omitempty"`  // original phrase when State == CostWithheld
}

// UnparseableFieldError reports a free-text field that matched none of the
// known patterns. It is fatal for the filing section it occurred in.
type UnparseableFieldError struct {
	Field string
	Value string
}

func (e *UnparseableFieldError) Error() string {
	return fmt.Sprintf("cannot parse %s value %q", e.Field, e.Value)
}

// Phrases the registry emits in place of a value when nothing was specified.
var absentCostPhrases = map[string]bool{
	"":                                true,
	"[Не застосовується]":             true,
	"[Не відомо]":                     true,
	"Не вказано":                      true,
	"[Не вказано]":                    true,
	"[Член сім'ї не надав інформацію]": true,
}

// withheldMarker appears in phrases like "Родич не надав інформацію".
// Matched case-insensitively.
const withheldMarker = "родич"

// ParseCost applies the shared valuation rule: known not-specified phrases
// normalize to the absent state, the relative-declined phrase is kept as a
// sentinel, pure digits parse to a number, anything else is an error.
func ParseCost(raw string) (Cost, error) {
	if absentCostPhrases[raw] {
		return Cost{State: CostAbsent}, nil
	}
	if strings.Contains(strings.ToLower(raw), withheldMarker) {
		return Cost{State: CostWithheld, Text: raw}, nil
	}
	var value int64
	if _, err := fmt.Sscanf(raw, "%d", &value); err == nil && isDigits(raw) {
		return Cost{State: CostNumeric, Value: value}, nil
	}
	return Cost{}, &UnparseableFieldError{Field: "cost", Value: raw}
}

// IsDeclared reports whether an actual number was provided.
func (c Cost) IsDeclared() bool { return c.State == CostNumeric }

// Equal compares two costs: states first, amounts only when both are numeric.
func (c Cost) Equal(other Cost) bool {
	if c.State != other.State {
		return false
	}
	if c.State == CostNumeric {
		return c.Value == other.Value
	}
	return true
}

// String renders the cost the way report lines show it.
func (c Cost) String() string {
	switch c.State {
	case CostNumeric:
		return fmt.Sprintf("%d грн", c.Value)
	case CostWithheld:
		return c.Text
	default:
		return "не вказано"
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
