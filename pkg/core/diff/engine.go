// Package diff computes rule-based differences between two consecutive major
// declarations and annotates every observation with a criticality level. The
// engine never mutates its inputs; each comparison returns a fresh Result
// whose findings the caller appends to the report in chronological order.
package diff

import (
	"fmt"
	"log"
	"sort"

	"github.com/shopspring/decimal"

	"declaration_audit/pkg/core/currency"
	"declaration_audit/pkg/core/entity"
	"declaration_audit/pkg/core/parse"
	"declaration_audit/pkg/core/report"
)

// recentWindowYears is how far back an acquisition still counts as recent
// for the undisclosed-valuation checks.
const recentWindowYears = 2

// Result is the outcome of comparing one adjacent pair of major filings.
type Result struct {
	Findings []report.Finding

	PropertyAdded   []entity.PropertyItem
	PropertyRemoved []entity.PropertyItem
	PropertyMatched []entity.PropertyItem

	VehicleAdded   []entity.VehicleItem
	VehicleRemoved []entity.VehicleItem
	VehicleMatched []entity.VehicleItem

	HoldingsDelta map[currency.Code]decimal.Decimal
	TotalDelta    decimal.Decimal
}

func (r *Result) add(level report.Level, text string) {
	r.Findings = append(r.Findings, report.Finding{Text: text, Level: level, Criticality: report.Info})
}

func (r *Result) addRisk(level report.Level, crit report.Criticality, text string) {
	r.Findings = append(r.Findings, report.Finding{Text: text, Level: level, Criticality: crit})
}

func (r *Result) addLinked(level report.Level, text, hyperlink string) {
	r.Findings = append(r.Findings, report.Finding{Text: text, Level: level, Criticality: report.Info, Hyperlink: hyperlink})
}

// Compare diffs two consecutive major declarations. The very first snapshot
// is compared against itself to seed the baseline report entry. viewLink is
// the public URL of the current declaration, carried on the top finding.
//
// Expected data shapes (missing sections, absent costs) never fail a
// comparison; the only error out of here is an unknown currency or year
// reaching the normalizer.
func Compare(prev, curr *entity.Declaration, viewLink string) (*Result, error) {
	res := &Result{}
	res.addLinked(report.LevelTop, fmt.Sprintf("Декларація %s за %d рік.", curr.Label, curr.Year), viewLink)

	if prev == curr {
		res.add(report.LevelStep, "Перша знайдена декларація - зміни обчислюються починаючи з наступної.")
	}
	for _, section := range curr.SkippedSections {
		res.add(report.LevelStep, skippedSectionNote(section))
	}

	res.add(report.LevelStep, "Нерухомість: ")
	if len(curr.Properties) == 0 {
		res.addRisk(report.LevelSubstep, report.Questionable, "Не задекларовано жодного об'єкта нерухомості")
	}
	compareProperty(prev, curr, res)

	res.add(report.LevelStep, "Рухоме майно (транспортні засоби): ")
	if len(curr.Vehicles) == 0 {
		res.add(report.LevelSubstep, "Не задекларовано жодного транспортного засобу")
	}
	compareVehicles(prev, curr, res)

	res.add(report.LevelStep, "Доходи: ")
	taxedTotal := summarizeIncome(curr, res)

	res.add(report.LevelStep, "Грошові активи: ")
	if err := compareHoldings(prev, curr, taxedTotal, res); err != nil {
		return nil, fmt.Errorf("comparing holdings of %s and %s: %w", prev.ID, curr.ID, err)
	}

	return res, nil
}

// summarizeIncome reports the current snapshot's raw and taxed totals and
// returns the taxed total for the holdings ratio. An empty income list is a
// high-risk observation, not an error.
func summarizeIncome(curr *entity.Declaration, res *Result) decimal.Decimal {
	if len(curr.Income) == 0 {
		res.addRisk(report.LevelSubstep, report.HighRisk, "Не задекларовано жодних доходів")
		return decimal.Zero
	}
	total := decimal.Zero
	taxed := decimal.Zero
	for _, e := range curr.Income {
		total = total.Add(e.Amount)
		taxed = taxed.Add(e.Taxed)
	}
	res.add(report.LevelSubstep, "Загальний задекларований дохід:")
	res.add(report.LevelDetails, fmt.Sprintf(" %s грн", total))
	res.add(report.LevelSubstep, "Загальний задекларований дохід після вирахування податків (податки вирахувані лише із відповідних категорій доходів): ")
	res.add(report.LevelDetails, fmt.Sprintf(" %s грн", taxed))
	return taxed
}

func skippedSectionNote(section int) string {
	switch section {
	case parse.SectionPersons:
		return "У декларації не заповнено розділ членів сім'ї та пов'язаних осіб"
	case parse.SectionProperty:
		return "У декларації не заповнено розділ нерухомості"
	case parse.SectionVehicles:
		return "У декларації не заповнено розділ транспортних засобів"
	case parse.SectionIncome:
		return "У декларації не заповнено розділ доходів"
	case parse.SectionHoldings:
		return "У декларації не заповнено розділ грошових активів"
	default:
		return fmt.Sprintf("У декларації не заповнено розділ %d", section)
	}
}

// ownersEqual compares two ownership maps as whole values.
func ownersEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if other, ok := b[k]; !ok || other != v {
			return false
		}
	}
	return true
}

func renderOwners(owners map[string]string) string {
	ids := make([]string, 0, len(owners))
	for id := range owners {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s: %s%%", id, owners[id])
	}
	return out
}

// acquireYearOrSkip extracts the acquisition year for the recency checks.
// An unparseable date is logged and exempts the item from the check rather
// than failing the comparison.
func acquireYearOrSkip(item fmt.Stringer, year int, err error) (int, bool) {
	if err != nil {
		log.Printf("cannot extract acquisition year, recency check skipped: %v (%s)", err, item)
		return 0, false
	}
	return year, true
}
