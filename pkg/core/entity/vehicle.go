package entity

import (
	"fmt"
	"strings"
)

// VehicleItem is one vehicle entry from a filing.
type VehicleItem struct {
	Type            string            `json:"type"` // normalized to lower case
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	ManufactureYear int               `json:"manufacture_year"`
	AcquireDate     string            `json:"acquire_date"`
	Owners          map[string]string `json:"owners"`
	Cost            Cost              `json:"cost"`
}

// NewVehicleItem derives the manufacture year from its raw string, which is
// either a bare 4-digit year or a longer date truncated to its trailing year.
func NewVehicleItem(vehicleType, brand, model, rawYear, acquireDate string, owners map[string]string, cost Cost) (VehicleItem, error) {
	year, err := yearFromTail(rawYear)
	if err != nil {
		return VehicleItem{}, &UnparseableFieldError{Field: "manufacture year", Value: rawYear}
	}
	return VehicleItem{
		Type:            strings.ToLower(vehicleType),
		Brand:           brand,
		Model:           model,
		ManufactureYear: year,
		AcquireDate:     acquireDate,
		Owners:          owners,
		Cost:            cost,
	}, nil
}

// Same reports identity across snapshots: brand, model and manufacture year,
// case-insensitive on brand and model.
func (v VehicleItem) Same(other VehicleItem) bool {
	return strings.EqualFold(v.Brand, other.Brand) &&
		strings.EqualFold(v.Model, other.Model) &&
		v.ManufactureYear == other.ManufactureYear
}

// AcquireYear extracts the acquisition year from the acquisition date.
func (v VehicleItem) AcquireYear() (int, error) {
	return yearFromTail(v.AcquireDate)
}

func (v VehicleItem) String() string {
	return fmt.Sprintf("Транспортний засіб %s %s, %d року випуску. Дата набуття: %s, задекларована вартість: %s",
		v.Brand, v.Model, v.ManufactureYear, v.AcquireDate, v.Cost)
}
