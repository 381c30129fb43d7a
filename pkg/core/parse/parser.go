// Package parse turns one raw filing body into a typed entity.Declaration.
//
// Section numbering follows the registry form: step 1 is the declarant
// header, step 2 the family roster, step 3 real estate, step 6 vehicles,
// step 11 income, step 12 monetary holdings. Record fields inside a section
// vary between form revisions, so every extraction walks an explicit ordered
// list of candidate field names instead of probing ad hoc.
package parse

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"declaration_audit/pkg/core/currency"
	"declaration_audit/pkg/core/entity"
	"declaration_audit/pkg/core/utils"
	"declaration_audit/pkg/models"
)

// Section numbers carrying structured entity data.
const (
	sectionDeclarant = 1
	SectionPersons   = 2
	SectionProperty  = 3
	SectionVehicles  = 6
	SectionIncome    = 11
	SectionHoldings  = 12
)

// ownershipMarker appears in ownership kinds that denote real ownership, as
// opposed to usage rights like lease.
const ownershipMarker = "власність"

// record is one raw entry of a section after generic decoding.
type record map[string]interface{}

// PopulateDeclaration parses the raw filing body into the declaration
// created from the filing card. An error inside one section is logged and
// leaves that section empty; the remaining sections still parse. Only a body
// that cannot be decoded at all is a hard error.
func PopulateDeclaration(decl *entity.Declaration, body []byte) error {
	var filing models.FilingBody
	if err := utils.SmartParse(body, &filing); err != nil {
		return fmt.Errorf("filing %s: undecodable body: %w", decl.ID, err)
	}

	header, err := stepRecord(&filing, sectionDeclarant)
	if err != nil {
		return fmt.Errorf("filing %s: no declarant header: %w", decl.ID, err)
	}
	decl.FullName = fullNameFromHeader(header)

	for _, section := range []int{SectionPersons, SectionProperty, SectionVehicles, SectionIncome, SectionHoldings} {
		step, ok := filing.StepByNumber(section)
		if !ok {
			continue
		}
		if bool(step.IsNotApplicable) {
			log.Printf("filing %s: section %d marked not applicable", decl.ID, section)
			decl.SkippedSections = append(decl.SkippedSections, section)
			continue
		}
		if len(step.Data) == 0 {
			continue
		}
		if err := parseSection(decl, section, step.Data); err != nil {
			log.Printf("filing %s (year %d): section %d left empty: %v", decl.ID, decl.Year, section, err)
		}
	}

	// The declarant resolves as person 1 even when the roster omits them.
	decl.Persons[strconv.Itoa(entity.SelfID)] = entity.Person{
		ID:       entity.SelfID,
		FullName: decl.FullName,
		Relation: "self",
	}

	decl.ComputeAggregates()
	return nil
}

func parseSection(decl *entity.Declaration, section int, raw json.RawMessage) error {
	switch section {
	case SectionPersons:
		records, err := sectionRecords(raw)
		if err != nil {
			return err
		}
		persons, err := personEntries(records)
		if err != nil {
			return err
		}
		decl.Persons = persons
	case SectionProperty:
		records, err := sectionRecords(raw)
		if err != nil {
			return err
		}
		items, err := propertyEntries(records)
		if err != nil {
			return err
		}
		decl.Properties = items
	case SectionVehicles:
		records, err := sectionRecords(raw)
		if err != nil {
			return err
		}
		items, err := vehicleEntries(records)
		if err != nil {
			return err
		}
		decl.Vehicles = items
	case SectionIncome:
		records, err := sectionRecords(raw)
		if err != nil {
			return err
		}
		entries, err := incomeEntries(records)
		if err != nil {
			return err
		}
		decl.Income = entries
	case SectionHoldings:
		records, err := sectionRecords(raw)
		if err != nil {
			return err
		}
		holdings, err := holdingEntries(records)
		if err != nil {
			return err
		}
		decl.Holdings = holdings
	}
	return nil
}

func stepRecord(filing *models.FilingBody, n int) (record, error) {
	step, ok := filing.StepByNumber(n)
	if !ok || len(step.Data) == 0 {
		return nil, fmt.Errorf("section %d missing", n)
	}
	var rec record
	if err := json.Unmarshal(step.Data, &rec); err != nil {
		return nil, fmt.Errorf("section %d not an object: %w", n, err)
	}
	return rec, nil
}

func sectionRecords(raw json.RawMessage) ([]record, error) {
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("section data not a record list: %w", err)
	}
	return records, nil
}

func fullNameFromHeader(header record) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s",
		stringField(header, "lastname"),
		stringField(header, "firstname"),
		stringField(header, "middlename")))
}

// personEntries parses the family roster. A non-numeric person identifier is
// fatal for the whole section.
func personEntries(records []record) (map[string]entity.Person, error) {
	persons := make(map[string]entity.Person, len(records))
	for _, rec := range records {
		rawID := stringField(rec, "id")
		fullName := strings.TrimSpace(fmt.Sprintf("%s %s %s",
			stringField(rec, "lastname"), stringField(rec, "firstname"), stringField(rec, "middlename")))
		person, err := entity.NewPerson(rawID, fullName, stringField(rec, "subjectRelation"))
		if err != nil {
			return nil, err
		}
		persons[rawID] = person
	}
	return persons, nil
}

// propertyEntries parses real estate records (section 3).
func propertyEntries(records []record) ([]entity.PropertyItem, error) {
	items := make([]entity.PropertyItem, 0, len(records))
	for _, rec := range records {
		place, ok := firstField(rec, "city_txt", "city", "ua_cityType")
		if !ok {
			return nil, fmt.Errorf("property record has no place field")
		}
		rights, err := rightsList(rec)
		if err != nil {
			return nil, err
		}
		ownershipKind := stringField(rights[0], "ownershipType")
		owners, err := ownersFromRights(rights, ownershipKind)
		if err != nil {
			return nil, err
		}
		// A missing or empty assessment field is the absent cost state, not
		// a malformed record.
		rawCost, _ := firstField(rec, "cost_date_assessment", "costAssessment")
		cost, err := entity.ParseCost(rawCost)
		if err != nil {
			return nil, err
		}
		area, err := areaField(rec)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.PropertyItem{
			Place:         place,
			Type:          strings.ToLower(stringField(rec, "objectType")),
			AcquireDate:   stringField(rec, "owningDate"),
			TotalArea:     area,
			OwnershipKind: ownershipKind,
			Owners:        owners,
			Cost:          cost,
		})
	}
	return items, nil
}

// vehicleEntries parses vehicle records (section 6).
func vehicleEntries(records []record) ([]entity.VehicleItem, error) {
	items := make([]entity.VehicleItem, 0, len(records))
	for _, rec := range records {
		rights, err := rightsList(rec)
		if err != nil {
			return nil, err
		}
		ownershipKind := stringField(rights[0], "ownershipType")
		owners, err := ownersFromRights(rights, ownershipKind)
		if err != nil {
			return nil, err
		}
		cost, err := entity.ParseCost(stringField(rec, "costDate"))
		if err != nil {
			return nil, err
		}
		item, err := entity.NewVehicleItem(
			stringField(rec, "objectType"),
			stringField(rec, "brand"),
			stringField(rec, "model"),
			stringField(rec, "graduationYear"),
			stringField(rec, "owningDate"),
			owners, cost)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// incomeEntries parses income records (section 11). The owner reference
// lives under rights on current forms and under person_who_care on older
// ones.
func incomeEntries(records []record) ([]entity.IncomeEntry, error) {
	entries := make([]entity.IncomeEntry, 0, len(records))
	for _, rec := range records {
		amount, err := decimalField(rec, "sizeIncome")
		if err != nil {
			return nil, err
		}
		var owner string
		if rights, rErr := rightsList(rec); rErr == nil {
			if len(rights) > 1 {
				log.Printf("income record carries %d rights entries, using the first", len(rights))
			}
			owner = stringField(rights[0], "rightBelongs")
		} else if carers, ok := rec["person_who_care"].([]interface{}); ok && len(carers) > 0 {
			if carer, ok := carers[0].(map[string]interface{}); ok {
				owner = asString(carer["person"])
			}
		}
		if owner == "" {
			return nil, fmt.Errorf("income record has no owner reference")
		}
		entries = append(entries, entity.NewIncomeEntry(amount, owner, stringField(rec, "objectType")))
	}
	return entries, nil
}

// holdingEntries parses monetary asset records (section 12).
func holdingEntries(records []record) ([]entity.MonetaryHolding, error) {
	holdings := make([]entity.MonetaryHolding, 0, len(records))
	for _, rec := range records {
		amount, err := decimalField(rec, "sizeAssets")
		if err != nil {
			return nil, err
		}
		rights, err := rightsList(rec)
		if err != nil {
			return nil, err
		}
		if len(rights) > 1 {
			log.Printf("holding record carries %d rights entries, using the first", len(rights))
		}
		holdings = append(holdings, entity.MonetaryHolding{
			Amount:   amount,
			Currency: currency.Code(stringField(rec, "assetsCurrency")),
			Owner:    stringField(rights[0], "rightBelongs"),
			Type:     stringField(rec, "objectType"),
		})
	}
	return holdings, nil
}

// ownersFromRights builds the owners map. For real ownership the percentage
// comes from one of the known field names, defaulting to 100 when the entry
// carries only the two structural keys. For usage-right kinds (lease etc.)
// the single right holder is recorded with a zero percentage: the value is a
// usage marker, not a share.
func ownersFromRights(rights []record, ownershipKind string) (map[string]string, error) {
	owners := make(map[string]string, len(rights))
	if !strings.Contains(strings.ToLower(ownershipKind), ownershipMarker) {
		owners[stringField(rights[0], "rightBelongs")] = "0"
		return owners, nil
	}
	for _, item := range rights {
		holder := stringField(item, "rightBelongs")
		if pct, ok := firstField(item, "percent-ownership", "percentownership"); ok {
			owners[holder] = pct
			continue
		}
		if len(item) == 2 {
			if _, hasKind := item["ownershipType"]; hasKind {
				if _, hasHolder := item["rightBelongs"]; hasHolder {
					owners[holder] = "100"
					continue
				}
			}
		}
		return nil, fmt.Errorf("ownership percentage missing for right holder %s", holder)
	}
	return owners, nil
}

func rightsList(rec record) ([]record, error) {
	raw, ok := rec["rights"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("record has no rights list")
	}
	rights := make([]record, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("rights entry is not an object")
		}
		rights = append(rights, m)
	}
	return rights, nil
}

// firstField returns the value of the first candidate key with a non-empty
// string value, in priority order.
func firstField(rec record, candidates ...string) (string, bool) {
	for _, key := range candidates {
		if v, ok := rec[key]; ok {
			if s := asString(v); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func stringField(rec record, key string) string {
	return asString(rec[key])
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// areaField parses totalArea, accepting a comma decimal separator.
func areaField(rec record) (float64, error) {
	raw := strings.ReplaceAll(stringField(rec, "totalArea"), ",", ".")
	area, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &entity.UnparseableFieldError{Field: "total area", Value: raw}
	}
	return area, nil
}

// decimalField parses a monetary amount that may arrive as number or string.
func decimalField(rec record, key string) (decimal.Decimal, error) {
	raw := stringField(rec, key)
	if raw == "" {
		return decimal.Zero, &entity.UnparseableFieldError{Field: key, Value: raw}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &entity.UnparseableFieldError{Field: key, Value: raw}
	}
	return d, nil
}
