package diff

import (
	"fmt"

	"declaration_audit/pkg/core/entity"
	"declaration_audit/pkg/core/report"
)

// compareVehicles mirrors the property comparison for vehicles.
func compareVehicles(prev, curr *entity.Declaration, res *Result) {
	for _, old := range prev.Vehicles {
		if !containsVehicle(curr.Vehicles, old) {
			res.VehicleRemoved = append(res.VehicleRemoved, old)
			res.addRisk(report.LevelSubstep, report.Questionable, "Видалено транспортний засіб: ")
			res.add(report.LevelDetails, fmt.Sprintf(" %s ", old))
		}
	}
	for _, item := range curr.Vehicles {
		if !containsVehicle(prev.Vehicles, item) {
			res.VehicleAdded = append(res.VehicleAdded, item)
			res.add(report.LevelSubstep, "Додано транспортний засіб: ")
			res.add(report.LevelDetails, fmt.Sprintf(" %s ", item))
		}
	}

	for _, item := range curr.Vehicles {
		for _, old := range prev.Vehicles {
			if !item.Same(old) {
				continue
			}
			res.VehicleMatched = append(res.VehicleMatched, item)
			if change := vehicleChanges(item, old); change != "" {
				res.add(report.LevelSubstep, fmt.Sprintf("%s:%s", item, change))
			}
		}
		checkRecentVehicle(item, curr.Year, res)
	}
}

func vehicleChanges(curr, old entity.VehicleItem) string {
	change := ""
	if !ownersEqual(curr.Owners, old.Owners) {
		change += fmt.Sprintf("\n  - власники змінились: було %s, стало %s", renderOwners(old.Owners), renderOwners(curr.Owners))
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
	if curr.AcquireDate != old.AcquireDate {
		change += fmt.Sprintf("\n  - дата набуття змінилась із %s на %s", old.AcquireDate, curr.AcquireDate)
	}
	return change
}

// checkRecentVehicle flags recent acquisitions whose cost is absent or
// non-numeric (a withheld sentinel counts as undisclosed here).
func checkRecentVehicle(item entity.VehicleItem, currentYear int, res *Result) {
	year, err := item.AcquireYear()
	year, ok := acquireYearOrSkip(item, year, err)
	if !ok || year < currentYear-recentWindowYears {
		return
	}
	if !item.Cost.IsDeclared() {
		res.addRisk(report.LevelSubstep, report.HighRisk, "Транспортний засіб набутий нещодавно, проте вартість не вказана: ")
		res.add(report.LevelDetails, fmt.Sprintf(" %s ", item))
	}
}

func containsVehicle(items []entity.VehicleItem, target entity.VehicleItem) bool {
	for _, item := range items {
		if item.Same(target) {
			return true
		}
	}
	return false
}
