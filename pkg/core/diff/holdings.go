package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"declaration_audit/pkg/core/currency"
	"declaration_audit/pkg/core/entity"
	"declaration_audit/pkg/core/report"
)

// compareHoldings runs the currency-bucketed holdings diff: per-currency
// deltas, the converted total, and the delta-to-income ratio. The breakdown
// by person only feeds the disappearance check; redistribution between
// family members is not tracked.
func compareHoldings(prev, curr *entity.Declaration, taxedTotal decimal.Decimal, res *Result) error {
	reportDisappearedHoldings(prev, curr, res)

	currByCurrency := curr.Aggregates.HoldingsByCurrency
	if len(currByCurrency) == 0 {
		res.addRisk(report.LevelSubstep, report.HighRisk, "Не задекларовано жодних грошових активів")
		if len(prev.Aggregates.HoldingsByCurrency) == 0 {
			return nil
		}
	} else {
		res.add(report.LevelSubstep, "Загальний стан задекларованих рахунків: ")
		res.add(report.LevelDetails, renderByCurrency(currByCurrency))
	}

	res.HoldingsDelta = holdingsDeltaByCurrency(prev.Aggregates.HoldingsByCurrency, currByCurrency)
	total, err := convertedTotal(res.HoldingsDelta, curr.Year)
	if err != nil {
		return err
	}
	res.TotalDelta = total

	if total.IsZero() {
		res.add(report.LevelSubstep, "Змін у задекларованих рахунках не зафіксовано (перерозподіл коштів між членами родини ігнорується)")
		return nil
	}

	res.add(report.LevelSubstep, "Зміни з попередньої декларації: ")
	res.add(report.LevelDetails, renderByCurrency(res.HoldingsDelta))

	sign := ""
	if total.Sign() >= 0 {
		sign = "+"
	}
	res.add(report.LevelSubstep, "Сума змін на всіх грошових рахунках (у гривневому еквіваленті, за середньорічним курсом): ")
	res.add(report.LevelDetails, fmt.Sprintf(" %s%s ", sign, total))

	if !taxedTotal.IsZero() {
		percent := total.Div(taxedTotal).Mul(decimal.NewFromInt(100)).Round(0)
		res.add(report.LevelSubstep, fmt.Sprintf("Сума змін на всіх грошових рахунках склала близько %s%% від задекларованих доходів (після вирахування податків)", percent))
	} else if total.Sign() > 0 {
		res.addRisk(report.LevelSubstep, report.HighRisk,
			fmt.Sprintf("Сума змін на рахунках склала %s%s, але жодних доходів не було задекларовано", sign, total))
	}
	return nil
}

// holdingsDeltaByCurrency merges the two currency summaries: currencies only
// in the current snapshot enter as-is, currencies that disappeared enter
// negated, shared currencies as current minus previous.
func holdingsDeltaByCurrency(prev, curr map[currency.Code]decimal.Decimal) map[currency.Code]decimal.Decimal {
	delta := make(map[currency.Code]decimal.Decimal)
	for code, amount := range curr {
		if prevAmount, ok := prev[code]; ok {
			delta[code] = amount.Sub(prevAmount)
		} else {
			delta[code] = amount
		}
	}
	for code, amount := range prev {
		if _, ok := curr[code]; !ok {
			delta[code] = amount.Neg()
		}
	}
	return delta
}

// convertedTotal sums the per-currency deltas after converting each through
// the point-rate table at the comparison year.
func convertedTotal(delta map[currency.Code]decimal.Decimal, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for code, amount := range delta {
		converted, err := currency.ToBaseByYearlyAvg(amount, code, year)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(converted)
	}
	return total, nil
}

// reportDisappearedHoldings flags every (owner, currency) pair that was
// present in the previous breakdown but is gone from the current one. The
// check runs whether or not the current snapshot has any holdings at all.
func reportDisappearedHoldings(prev, curr *entity.Declaration, res *Result) {
	prevPairs := prev.Aggregates.HoldingsByOwnerCurrency
	if len(prevPairs) == 0 {
		return
	}
	currPairs := curr.Aggregates.HoldingsByOwnerCurrency

	keys := make([]entity.OwnerCurrency, 0, len(prevPairs))
	for key := range prevPairs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Owner != keys[j].Owner {
			return keys[i].Owner < keys[j].Owner
		}
		return keys[i].Currency < keys[j].Currency
	})

	for _, key := range keys {
		if _, ok := currPairs[key]; ok {
			continue
		}
		// Names resolve against the current roster; a person who left it
		// falls back to the bare identifier, never aborting the comparison.
		res.addRisk(report.LevelSubstep, report.Questionable,
			fmt.Sprintf("Грошові активи у валюті %s, що належали %s, більше не задекларовані",
				key.Currency, curr.PersonLabelByID(key.Owner)))
	}
}

func renderByCurrency(amounts map[currency.Code]decimal.Decimal) string {
	codes := make([]string, 0, len(amounts))
	for code := range amounts {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%s: %s", code, amounts[currency.Code(code)]))
	}
	return strings.Join(parts, ";  ")
}
