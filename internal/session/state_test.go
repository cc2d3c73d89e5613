package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whd.healthtrends.org/internal/chart"
	"whd.healthtrends.org/internal/trend"
)

var table = trend.Table{
	{trend.IndicatorColumn: "Births", trend.CountryColumn: "Ireland", "2000": "10", "2023": "12"},
	{trend.IndicatorColumn: "Births", trend.CountryColumn: "France", "2000": "11", "2023": "11"},
}

func TestGreeting(t *testing.T) {
	s := New("")
	assert.Equal(t, "Not signed in (demo mode)", s.Greeting())

	s.SignIn("maria")
	assert.Equal(t, "Signed in as maria", s.Greeting())

	s.SignOut()
	assert.Equal(t, "Not signed in (demo mode)", s.Greeting())
}

func TestGenerateRequiresSelection(t *testing.T) {
	s := New("")
	assert.False(t, s.Generate())

	s.SelectCountryA("Ireland")
	assert.False(t, s.Generate(), "indicator missing")
	assert.False(t, s.Generated)

	s = New("")
	s.SelectIndicator("Births")
	assert.False(t, s.Generate(), "country missing")
	assert.False(t, s.Generated)

	s.SelectCountryA("Ireland")
	assert.True(t, s.Generate())
	assert.True(t, s.Generated)
}

func TestSelectionChangeResetsToIdle(t *testing.T) {
	changes := map[string]func(*State){
		"indicator": func(s *State) { s.SelectIndicator("Deaths") },
		"country A": func(s *State) { s.SelectCountryA("France") },
		"country B": func(s *State) { s.SelectCountryB("France") },
	}

	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			s := New("")
			s.SelectIndicator("Births")
			s.SelectCountryA("Ireland")
			require.True(t, s.Generate())

			change(s)
			assert.False(t, s.Generated)
		})
	}
}

func TestSameSelectionKeepsGenerated(t *testing.T) {
	s := New("")
	s.SelectIndicator("Births")
	s.SelectCountryA("Ireland")
	require.True(t, s.Generate())

	s.SelectIndicator("Births")
	s.SetChartKind(chart.HeatStrip)
	assert.True(t, s.Generated)
	assert.Equal(t, chart.HeatStrip, s.ChartKind)
}

func TestContext(t *testing.T) {
	s := New("")
	s.SelectIndicator("Births")
	s.SelectCountryA("Ireland")
	s.SelectCountryB("France")

	assert.False(t, s.Context(table).Ready())

	require.True(t, s.Generate())
	c := s.Context(table)
	require.True(t, c.Ready())
	assert.Equal(t, trend.Increasing, c.TrendA.Classification)
	require.NotNil(t, c.Comparison)
	assert.Equal(t, trend.AHigher, c.Comparison.Relation)
}
