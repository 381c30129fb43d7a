package entity

import (
	"fmt"
	"strconv"
)

// SelfID is the reserved person identifier of the declarant. Property,
// vehicle, income and holding records reference it even when the family
// roster section omits an explicit entry for the declarant.
const SelfID = 1

// InvalidPersonIDError reports a roster entry whose identifier is not a
// non-negative integer.
type InvalidPersonIDError struct {
	Raw string
}

func (e *InvalidPersonIDError) Error() string {
	return fmt.Sprintf("person id %q is not a valid identifier", e.Raw)
}

// Person is a family member or related individual from the filing roster.
// Other entities reference a Person by identifier only, never by pointer,
// so a Declaration stays an acyclic value.
type Person struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Relation string `json:"relation"`
}

// NewPerson validates the raw identifier and builds a roster entry.
func NewPerson(rawID, fullName, relation string) (Person, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id < 0 {
		return Person{}, &InvalidPersonIDError{Raw: rawID}
	}
	return Person{ID: id, FullName: fullName, Relation: relation}, nil
}
