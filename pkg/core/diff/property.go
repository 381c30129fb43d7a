package diff

import (
	"fmt"

	"declaration_audit/pkg/core/entity"
	"declaration_audit/pkg/core/report"
)

// compareProperty computes the set difference and per-item field changes for
// real estate, then runs the recent-acquisition valuation checks.
func compareProperty(prev, curr *entity.Declaration, res *Result) {
	for _, old := range prev.Properties {
		if !containsProperty(curr.Properties, old) {
			res.PropertyRemoved = append(res.PropertyRemoved, old)
			res.addRisk(report.LevelSubstep, report.Questionable, "Видалено нерухомість: ")
			res.add(report.LevelDetails, fmt.Sprintf(" %s ", old))
		}
	}
	for _, item := range curr.Properties {
		if !containsProperty(prev.Properties, item) {
			res.PropertyAdded = append(res.PropertyAdded, item)
			res.add(report.LevelSubstep, "Додано нерухомість: ")
			res.add(report.LevelDetails, fmt.Sprintf(" %s ", item))
		}
	}

	for _, item := range curr.Properties {
		for _, old := range prev.Properties {
			if !item.Same(old) {
				continue
			}
			res.PropertyMatched = append(res.PropertyMatched, item)
			if change := propertyChanges(item, old); change != "" {
				res.add(report.LevelSubstep, fmt.Sprintf("Змінені дані:  %s:%s", item, change))
			}
		}
		checkRecentProperty(item, curr.Year, res)
	}
}

// propertyChanges describes field-level drift between two matched items.
// Place strings that contain one another are formatting drift, not a move.
func propertyChanges(curr, old entity.PropertyItem) string {
	change := ""
	if !ownersEqual(curr.Owners, old.Owners) {
		change += fmt.Sprintf("\n  - власники змінились: було %s, стало %s", renderOwners(old.Owners), renderOwners(curr.Owners))
	}
	if curr.OwnershipKind != old.OwnershipKind {
		change += fmt.Sprintf("\n  - тип власності змінився з %s на %s.", old.OwnershipKind, curr.OwnershipKind)
	}
	if !curr.SamePlace(old) {
		change += fmt.Sprintf("\n  - місце реєстрації змінилось із %s на %s (тип, площа та дата набуття однакові).", old.Place, curr.Place)
	}
	currDeclared := curr.Cost.State != entity.CostAbsent
	oldDeclared := old.Cost.State != entity.CostAbsent
	switch {
	case !currDeclared && oldDeclared:
		change += fmt.Sprintf("\n  - вартість була вказана у попередній декларації: %s, але не вказана у цій.", old.Cost)
	case currDeclared && !oldDeclared:
		change += fmt.Sprintf("\n  - вартість не була вказана раніше, проте вказана зараз: %s.", curr.Cost)
	case currDeclared && oldDeclared && !curr.Cost.Equal(old.Cost):
		change += fmt.Sprintf("\n  - вартість змінилась із %s на %s.", old.Cost, curr.Cost)
	}
	return change
}

// checkRecentProperty flags recently acquired items with no usable valuation.
func checkRecentProperty(item entity.PropertyItem, currentYear int, res *Result) {
	year, err := item.AcquireYear()
	year, ok := acquireYearOrSkip(item, year, err)
	if !ok || year < currentYear-recentWindowYears {
		return
	}
	switch item.Cost.State {
	case entity.CostAbsent:
		res.addRisk(report.LevelSubstep, report.HighRisk, "Власність набута нещодавно, проте вартість не вказана: ")
		res.add(report.LevelDetails, fmt.Sprintf(" %s ", item))
	case entity.CostWithheld:
		res.addRisk(report.LevelSubstep, report.HighRisk, "Власність набута родичами нещодавно, проте родичі не надали інформацію про ціну: ")
		res.add(report.LevelDetails, fmt.Sprintf(" %s ", item))
	}
}

func containsProperty(items []entity.PropertyItem, target entity.PropertyItem) bool {
	for _, item := range items {
		if item.Same(target) {
			return true
		}
	}
	return false
}
