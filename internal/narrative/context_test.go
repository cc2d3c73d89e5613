package narrative

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whd.healthtrends.org/internal/trend"
)

const lifeExpectancy = "Life expectancy at birth (years)"

// row builds a dataset row from consecutive yearly values starting in 2000.
// An empty string leaves the year blank.
func row(indicator, country string, values ...string) trend.Row {
	r := trend.Row{trend.IndicatorColumn: indicator, trend.CountryColumn: country}
	for i, v := range values {
		r[strconv.Itoa(trend.FirstYear+i)] = v
	}
	return r
}

func irelandValues() []string {
	values := make([]string, len(trend.YearColumns))
	for i := range values {
		values[i] = strconv.FormatFloat(76.6+float64(i)*(82.5-76.6)/23, 'f', 2, 64)
	}
	values[0], values[23] = "76.6", "82.5"
	return values
}

func sampleTable() trend.Table {
	return trend.Table{
		row(lifeExpectancy, "Ireland", irelandValues()...),
		row(lifeExpectancy, "France", "79.0", "79.2", "", "80.1"),
		row(lifeExpectancy, "Spain", "79.1", "", "", "80.1"),
		row("Birth rate, crude (per 1,000 people)", "Ireland", "14.4", "14.9", "15.2"),
	}
}

func TestNewContextNotGenerated(t *testing.T) {
	c := FromTable(Selection{Indicator: lifeExpectancy, CountryA: "Ireland"}, false, sampleTable())

	assert.False(t, c.Ready())
	assert.Empty(t, c.Rows)
	assert.Empty(t, c.SeriesA)
	assert.Nil(t, c.TrendA)
	assert.Nil(t, c.Comparison)
}

func TestNewContextSingleCountry(t *testing.T) {
	c := FromTable(Selection{Indicator: lifeExpectancy, CountryA: "Ireland"}, true, sampleTable())

	require.True(t, c.Ready())
	require.NotNil(t, c.TrendA)
	assert.Equal(t, trend.Increasing, c.TrendA.Classification)
	assert.InDelta(t, 76.6, c.TrendA.First, 1e-9)
	assert.InDelta(t, 82.5, c.TrendA.Last, 1e-9)
	assert.Nil(t, c.TrendB)
	assert.Nil(t, c.Comparison)
	assert.False(t, c.HasComparison())
}

func TestNewContextComparison(t *testing.T) {
	c := FromTable(Selection{Indicator: lifeExpectancy, CountryA: "France", CountryB: "Spain"}, true, sampleTable())

	require.True(t, c.Ready())
	assert.Len(t, c.Rows, 3)
	assert.Len(t, c.SeriesA, 3)
	assert.Len(t, c.SeriesB, 2)
	require.True(t, c.HasComparison())
	assert.Equal(t, trend.Similar, c.Comparison.Relation)
	assert.Equal(t, "very similar in the latest year", c.comparisonPhrase())
}

func TestNewContextUnknownCountry(t *testing.T) {
	c := FromTable(Selection{Indicator: lifeExpectancy, CountryA: "Atlantis"}, true, sampleTable())

	assert.False(t, c.Ready())
	assert.Nil(t, c.TrendA)
}

func TestNewContextSecondCountryWithoutData(t *testing.T) {
	c := FromTable(Selection{Indicator: lifeExpectancy, CountryA: "Ireland", CountryB: "Atlantis"}, true, sampleTable())

	require.True(t, c.Ready())
	assert.Empty(t, c.SeriesB)
	assert.Nil(t, c.TrendB)
	assert.False(t, c.HasComparison())
}

func TestFormatSeries(t *testing.T) {
	s := trend.Series{{Year: "2000", Value: 76.6}, {Year: "2001", Value: 77}, {Year: "2002", Value: 77.125}}
	assert.Equal(t, "2000: 76.6, 2001: 77, 2002: 77.125", FormatSeries(s))
	assert.Equal(t, "", FormatSeries(nil))

	extremes := trend.Series{{Year: "2000", Value: 1e21}, {Year: "2001", Value: 0.0000005}}
	assert.Equal(t, "2000: 1000000000000000000000, 2001: 0.0000005", FormatSeries(extremes))
}
