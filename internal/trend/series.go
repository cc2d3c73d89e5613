package trend

import (
	"math"
	"strconv"
	"strings"
)

const (
	FirstYear = 2000
	LastYear  = 2023

	// IndicatorColumn and CountryColumn identify a row in the dataset.
	IndicatorColumn = "Series Name"
	CountryColumn   = "Country Name"
)

// YearColumns lists the year headers of the dataset in ascending order.
var YearColumns = func() []string {
	years := make([]string, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}()

// SeriesPoint is one observed value of one indicator for one country in one year.
type SeriesPoint struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Series holds observations ordered by year, with absent years dropped.
type Series []SeriesPoint

// First returns the earliest point. The series must not be empty.
func (s Series) First() SeriesPoint { return s[0] }

// Last returns the latest point. The series must not be empty.
func (s Series) Last() SeriesPoint { return s[len(s)-1] }

// Row is one raw dataset row keyed by column header.
type Row map[string]string

// Indicator returns the row's indicator name.
func (r Row) Indicator() string { return r[IndicatorColumn] }

// Country returns the row's country name.
func (r Row) Country() string { return r[CountryColumn] }

// Table is the raw dataset as produced by the dataset loaders.
type Table []Row

// AlignedRow is one year of a two-country chart. At least one side is non-nil.
type AlignedRow struct {
	Year   string   `json:"year"`
	ValueA *float64 `json:"valueA"`
	ValueB *float64 `json:"valueB"`
}

// ParseCell converts a spreadsheet cell to a number. Empty, non-numeric and
// non-finite cells are reported as absent rather than as zero.
func ParseCell(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FindRow returns the first row whose indicator and country match exactly.
func FindRow(table Table, indicator, country string) (Row, bool) {
	if indicator == "" || country == "" {
		return nil, false
	}
	for _, row := range table {
		if row.Indicator() == indicator && row.Country() == country {
			return row, true
		}
	}
	return nil, false
}

// Extract builds the series for one indicator/country pair. A pair that is not
// present in the table yields an empty series.
func Extract(table Table, indicator, country string) Series {
	row, ok := FindRow(table, indicator, country)
	if !ok {
		return Series{}
	}
	return seriesFromRow(row)
}

func seriesFromRow(row Row) Series {
	series := make(Series, 0, len(YearColumns))
	for _, year := range YearColumns {
		if v, ok := ParseCell(row[year]); ok {
			series = append(series, SeriesPoint{Year: year, Value: v})
		}
	}
	return series
}

// Align merges two rows year by year over the full year range. Either row may
// be nil. A year is kept when at least one side has a value.
func Align(rowA, rowB Row) []AlignedRow {
	if rowA == nil && rowB == nil {
		return []AlignedRow{}
	}

	rows := make([]AlignedRow, 0, len(YearColumns))
	for _, year := range YearColumns {
		a := cellPtr(rowA, year)
		b := cellPtr(rowB, year)
		if a == nil && b == nil {
			continue
		}
		rows = append(rows, AlignedRow{Year: year, ValueA: a, ValueB: b})
	}
	return rows
}

// AlignSelection looks up both countries for an indicator and aligns them.
// countryB may be empty.
func AlignSelection(table Table, indicator, countryA, countryB string) []AlignedRow {
	rowA, _ := FindRow(table, indicator, countryA)
	rowB, _ := FindRow(table, indicator, countryB)
	return Align(rowA, rowB)
}

func cellPtr(row Row, year string) *float64 {
	if row == nil {
		return nil
	}
	v, ok := ParseCell(row[year])
	if !ok {
		return nil
	}
	return &v
}

// SplitAligned recovers the per-country series from aligned rows.
func SplitAligned(rows []AlignedRow) (Series, Series) {
	seriesA := Series{}
	seriesB := Series{}
	for _, r := range rows {
		if r.ValueA != nil {
			seriesA = append(seriesA, SeriesPoint{Year: r.Year, Value: *r.ValueA})
		}
		if r.ValueB != nil {
			seriesB = append(seriesB, SeriesPoint{Year: r.Year, Value: *r.ValueB})
		}
	}
	return seriesA, seriesB
}

// ValueRange returns the smallest and largest value present on either side.
func ValueRange(rows []AlignedRow) (minVal, maxVal float64, ok bool) {
	minVal, maxVal = math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		for _, v := range []*float64{r.ValueA, r.ValueB} {
			if v == nil {
				continue
			}
			ok = true
			minVal = math.Min(minVal, *v)
			maxVal = math.Max(maxVal, *v)
		}
	}
	if !ok {
		return math.NaN(), math.NaN(), false
	}
	return minVal, maxVal, true
}
