package currency

// Yearly average UAH exchange rates and (low, high) yearly ranges, keyed by
// 4-digit year string. These are fixed reference constants: a year or currency
// missing from a table is a hard error at the point of conversion, never an
// extrapolation.

var usdAvgRate = map[string]string{
	"2016": "25.55", "2017": "26.59",
	"2018": "27.20", "2019": "25.84",
	"2020": "26.96", "2021": "27.29",
	"2022": "32.34", "2023": "36.57",
}

var eurAvgRate = map[string]string{
	"2016": "28.29", "2017": "30.00",
	"2018": "32.14", "2019": "28.95",
	"2020": "30.79", "2021": "32.31",
	"2022": "33.98", "2023": "39.56",
}

type rateRange struct {
	low, high string
}

var usdRateRange = map[string]rateRange{
	"2016": {"23.26", "27.25"}, "2017": {"25.44", "28.06"},
	"2018": {"25.91", "28.87"}, "2019": {"23.25", "28.27"},
	"2020": {"23.68", "28.60"}, "2021": {"26.06", "28.43"},
	"2022": {"27.28", "36.57"}, "2023": {"36.01", "37.98"},
	"2024": {"37.45", "42.04"},
}

// EUR ranges before 2022 were never backfilled, the yearly average stands in.
var eurRateRange = map[string]rateRange{
	"2016": {"28.29", "28.29"}, "2017": {"30.00", "30.00"},
	"2018": {"32.14", "32.14"}, "2019": {"28.95", "28.95"},
	"2020": {"30.79", "30.79"}, "2021": {"32.31", "32.31"},
	"2022": {"29.28", "38.95"}, "2023": {"38.23", "42.21"},
	"2024": {"40.37", "46.24"},
}
