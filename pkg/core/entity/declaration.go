// Package entity defines the typed model of one disclosure filing: the
// declaration itself, the person roster, property and vehicle items, income
// entries and monetary holdings, plus the cached per-filing aggregates.
package entity

import (
	"fmt"
	"strconv"
)

// Filing categories as the registry numbers them.
const (
	CategoryChangeNotice  = 0 // significant property change notice ("minor")
	CategoryAnnual        = 1
	CategoryAtDismissal   = 2
	CategoryPostDismissal = 3
	CategoryCandidate     = 4
)

// Filing subtypes within a category.
const (
	SubtypeRegular      = 1
	SubtypeChangeNotice = 2
	SubtypeCorrected    = 3
)

// Declaration is one parsed filing. It is immutable once parsed except for
// the aggregate maps, which ComputeAggregates fills exactly once.
type Declaration struct {
	Category           int    `json:"category"`
	Subtype            int    `json:"subtype"`
	ID                 string `json:"id"`
	DeclarantID        int    `json:"declarant_id"`
	SubmitDate         string `json:"submit_date"`
	Year               int    `json:"year"`
	CorruptionAffected string `json:"corruption_affected,omitempty"`

	Minor bool   `json:"minor"`
	Label string `json:"label"`

	FullName string            `json:"full_name"`
	Persons  map[string]Person `json:"persons"`

	Properties []PropertyItem    `json:"properties"`
	Vehicles   []VehicleItem     `json:"vehicles"`
	Income     []IncomeEntry     `json:"income"`
	Holdings   []MonetaryHolding `json:"holdings"`

	// Sections the filing marked as not applicable; surfaced later as
	// informational findings, not errors.
	SkippedSections []int `json:"skipped_sections,omitempty"`

	Aggregates Aggregates `json:"aggregates"`
}

// NewDeclaration builds a Declaration header from a filing card and derives
// the minor flag and human label from the category/subtype pair.
func NewDeclaration(category int, id string, declarantID int, submitDate string, year, subtype int, corruptionAffected string) *Declaration {
	d := &Declaration{
		Category:           category,
		Subtype:            subtype,
		ID:                 id,
		DeclarantID:        declarantID,
		SubmitDate:         submitDate,
		Year:               year,
		CorruptionAffected: corruptionAffected,
		Persons:            make(map[string]Person),
	}
	d.Minor = category == CategoryChangeNotice && subtype == SubtypeChangeNotice
	d.Label = filingLabel(category, subtype)
	return d
}

// PersonNameByID resolves a referenced person identifier to a display name.
// The reserved identifier 1 always resolves to the declarant, whether or not
// the roster listed an explicit entry. The second return value is false when
// the reference is unresolved; callers substitute the bare identifier then.
func (d *Declaration) PersonNameByID(id string) (string, bool) {
	if id == strconv.Itoa(SelfID) {
		return d.FullName, d.FullName != ""
	}
	p, ok := d.Persons[id]
	if !ok {
		return "", false
	}
	return p.FullName, true
}

// PersonLabelByID is PersonNameByID with the relation appended, falling back
// to "особа з ID n" for unresolved references.
func (d *Declaration) PersonLabelByID(id string) string {
	name, ok := d.PersonNameByID(id)
	if !ok {
		return fmt.Sprintf("особа з ID %s", id)
	}
	if id == strconv.Itoa(SelfID) {
		return name
	}
	if p, found := d.Persons[id]; found && p.Relation != "" {
		return fmt.Sprintf("%s (%s)", name, p.Relation)
	}
	return name
}

func (d *Declaration) String() string {
	return fmt.Sprintf("декларація #%s (%s, %d рік, подана %s)", d.ID, d.Label, d.Year, d.SubmitDate)
}

func filingLabel(category, subtype int) string {
	if category == CategoryChangeNotice && subtype == SubtypeChangeNotice {
		return "Про суттєві зміни у майновому стані"
	}
	switch category {
	case CategoryAnnual:
		switch subtype {
		case SubtypeRegular:
			return "Щорічна"
		case SubtypeCorrected:
			return "Виправлена щорічна"
		}
		return "Невідомий підтип щорічної декларації"
	case CategoryAtDismissal:
		if subtype == SubtypeRegular {
			return "При звільненні"
		}
		return "Невідомий підтип декларації при звільненні"
	case CategoryPostDismissal:
		if subtype == SubtypeRegular {
			return "Після звільнення"
		}
		return "Невідомий підтип декларації після звільнення"
	case CategoryCandidate:
		switch subtype {
		case SubtypeRegular:
			return "Кандидата на посаду"
		case SubtypeCorrected:
			return "Виправлена кандидата на посаду"
		}
		return "Невідомий підтип декларації кандидата на посаду"
	}
	return "Невідомий тип або неправильні дані"
}
