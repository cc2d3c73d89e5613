// Package narrative turns trend results into the text shown to users: report
// notes, the local summary, the prompt sent to an external model and the
// rule-based chat replies. Every renderer is a pure function of a Context.
package narrative

import (
	"strconv"
	"strings"

	"whd.healthtrends.org/internal/trend"
)

// Period is the year range quoted in generated text.
const Period = "2000–2023"

// Selection is the indicator and countries picked by the user.
type Selection struct {
	Indicator string `json:"indicator"`
	CountryA  string `json:"countryA"`
	CountryB  string `json:"countryB,omitempty"`
}

// Context carries everything the renderers need, computed once per selection.
type Context struct {
	Selection
	Generated bool

	Rows    []trend.AlignedRow
	SeriesA trend.Series
	SeriesB trend.Series

	TrendA     *trend.TrendResult
	TrendB     *trend.TrendResult
	Comparison *trend.ComparisonResult
}

// NewContext derives series, trends and the comparison from aligned rows.
// Rows are ignored until the selection has been generated.
func NewContext(sel Selection, generated bool, rows []trend.AlignedRow) Context {
	c := Context{Selection: sel, Generated: generated}
	if !generated {
		c.Rows = []trend.AlignedRow{}
		c.SeriesA, c.SeriesB = trend.Series{}, trend.Series{}
		return c
	}

	c.Rows = rows
	c.SeriesA, c.SeriesB = trend.SplitAligned(rows)
	if !c.Ready() {
		return c
	}

	if a, ok := trend.ClassifyTrend(c.SeriesA); ok {
		c.TrendA = &a
	}
	if len(c.SeriesB) > 0 && sel.CountryB != "" {
		if b, ok := trend.ClassifyTrend(c.SeriesB); ok {
			c.TrendB = &b
		}
	}
	c.Comparison = trend.Compare(*c.TrendA, c.TrendB, sel.CountryA, sel.CountryB)
	return c
}

// FromTable looks the selection up in table and builds its context.
func FromTable(sel Selection, generated bool, table trend.Table) Context {
	var rows []trend.AlignedRow
	if generated {
		rows = trend.AlignSelection(table, sel.Indicator, sel.CountryA, sel.CountryB)
	}
	return NewContext(sel, generated, rows)
}

// Ready reports whether trends can be computed: the selection was generated
// and the primary country has data.
func (c Context) Ready() bool {
	return c.Generated && len(c.Rows) > 0 && len(c.SeriesA) > 0
}

// HasComparison reports whether a second country contributes to the text.
func (c Context) HasComparison() bool {
	return c.TrendB != nil && c.Comparison != nil
}

func (c Context) comparisonPhrase() string {
	return c.Comparison.Phrase(c.CountryA, c.CountryB)
}

// FormatSeries renders a series as "year: value" pairs with unrounded values.
// Values are always in positional notation, even beyond 1e21 or below 1e-6.
func FormatSeries(s trend.Series) string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.Year + ": " + strconv.FormatFloat(p.Value, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func oneDecimal(v float64) string {
	return trend.OneDecimal(v)
}
