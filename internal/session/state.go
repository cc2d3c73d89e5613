// Package session holds the per-user dashboard state that used to live in the
// browser: who is signed in, what is selected and whether it was generated.
package session

import (
	"whd.healthtrends.org/internal/chart"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/trend"
)

// State is idle until Generate is called. Changing any part of the selection
// returns it to idle; switching the chart kind does not.
type State struct {
	Username  string
	Selection narrative.Selection
	ChartKind chart.Kind
	Generated bool
}

// New returns an idle state for the given user. An empty username is the demo mode.
func New(username string) *State {
	return &State{Username: username, ChartKind: chart.Line}
}

func (s *State) SelectIndicator(indicator string) {
	if s.Selection.Indicator == indicator {
		return
	}
	s.Selection.Indicator = indicator
	s.Generated = false
}

func (s *State) SelectCountryA(country string) {
	if s.Selection.CountryA == country {
		return
	}
	s.Selection.CountryA = country
	s.Generated = false
}

// SelectCountryB sets the comparison country. An empty name clears it.
func (s *State) SelectCountryB(country string) {
	if s.Selection.CountryB == country {
		return
	}
	s.Selection.CountryB = country
	s.Generated = false
}

func (s *State) SetChartKind(kind chart.Kind) {
	s.ChartKind = kind
}

// Generate moves the state to generated. It reports false when the indicator
// or the primary country is missing, in which case nothing changes.
func (s *State) Generate() bool {
	if s.Selection.Indicator == "" || s.Selection.CountryA == "" {
		return false
	}
	s.Generated = true
	return true
}

// SignIn stores the username as given; there is no validation.
func (s *State) SignIn(username string) {
	s.Username = username
}

// SignOut forgets the user and resets the selection.
func (s *State) SignOut() {
	*s = *New("")
}

// Greeting is the status line shown above the dashboard.
func (s *State) Greeting() string {
	if s.Username == "" {
		return "Not signed in (demo mode)"
	}
	return "Signed in as " + s.Username
}

// Context builds the narrative context for the current selection.
func (s *State) Context(table trend.Table) narrative.Context {
	return narrative.FromTable(s.Selection, s.Generated, table)
}
