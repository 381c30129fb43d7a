package entity

import (
	"fmt"
	"strings"
)

// PropertyItem is one real estate entry from a filing. Owners maps person
// identifiers (stringified) to ownership percentage strings; percentages stay
// strings because the registry records non-numeric markers in that field.
type PropertyItem struct {
	Place         string            `json:"place"`
	Type          string            `json:"type"` // normalized to lower case
	AcquireDate   string            `json:"acquire_date"`
	TotalArea     float64           `json:"total_area"`
	OwnershipKind string            `json:"ownership_kind"`
	Owners        map[string]string `json:"owners"`
	Cost          Cost              `json:"cost"`
}

// Same reports identity across snapshots: type, area and acquisition date.
// Place and cost are excluded on purpose, address formatting and re-assessment
// drift between filings without the asset being a different one.
func (p PropertyItem) Same(other PropertyItem) bool {
	return p.Type == other.Type &&
		p.TotalArea == other.TotalArea &&
		p.AcquireDate == other.AcquireDate
}

// AcquireYear extracts the 4-digit year from the acquisition date, which the
// registry stores either as a bare year or a longer date ending in one.
func (p PropertyItem) AcquireYear() (int, error) {
	return yearFromTail(p.AcquireDate)
}

// SamePlace treats two place strings as equal when one case-insensitively
// contains the other, so formatting drift is not reported as a move.
func (p PropertyItem) SamePlace(other PropertyItem) bool {
	a := strings.ToLower(p.Place)
	b := strings.ToLower(other.Place)
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func (p PropertyItem) String() string {
	return fmt.Sprintf("Власність '%s' (набута: %s, загальна площа: %v кв.м., ціна: %s)",
		p.Type, p.AcquireDate, p.TotalArea, p.Cost)
}

func yearFromTail(date string) (int, error) {
	s := date
	if len(s) > 4 {
		s = s[len(s)-4:]
	}
	if !isDigits(s) || len(s) != 4 {
		return 0, &UnparseableFieldError{Field: "year", Value: date}
	}
	var year int
	fmt.Sscanf(s, "%d", &year)
	return year, nil
}
