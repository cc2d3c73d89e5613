package models

import (
	"whd.healthtrends.org/internal/chart"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/trend"
)

// SelectionRequest is the body shared by the dashboard and narrative routes.
type SelectionRequest struct {
	narrative.Selection
	Generated bool `json:"generated"`
}

// TextEntry carries one rendered narrative.
type TextEntry struct {
	Text string `json:"text"`
}

type TrendModel struct {
	trend.TrendResult
	Phrase string `json:"phrase"`
}

type ComparisonModel struct {
	trend.ComparisonResult
	Phrase string `json:"phrase"`
}

type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DashboardEntry is everything the dashboard draws for one selection.
type DashboardEntry struct {
	Selection  narrative.Selection `json:"selection"`
	Generated  bool                `json:"generated"`
	Ready      bool                `json:"ready"`
	Rows       []trend.AlignedRow  `json:"rows"`
	SeriesA    trend.Series        `json:"seriesA"`
	SeriesB    trend.Series        `json:"seriesB"`
	TrendA     *TrendModel         `json:"trendA"`
	TrendB     *TrendModel         `json:"trendB"`
	Comparison *ComparisonModel    `json:"comparison"`
	HeatStrips []chart.HeatRow     `json:"heatStrips"`
	ValueRange *ValueRange         `json:"valueRange"`
}

func newTrendModel(r *trend.TrendResult) *TrendModel {
	if r == nil {
		return nil
	}
	return &TrendModel{TrendResult: *r, Phrase: r.Classification.Phrase()}
}

// NewDashboardEntry flattens a narrative context for JSON clients.
func NewDashboardEntry(c narrative.Context) DashboardEntry {
	entry := DashboardEntry{
		Selection:  c.Selection,
		Generated:  c.Generated,
		Ready:      c.Ready(),
		Rows:       c.Rows,
		SeriesA:    c.SeriesA,
		SeriesB:    c.SeriesB,
		TrendA:     newTrendModel(c.TrendA),
		TrendB:     newTrendModel(c.TrendB),
		HeatStrips: []chart.HeatRow{},
	}
	if entry.Rows == nil {
		entry.Rows = []trend.AlignedRow{}
	}
	if entry.SeriesA == nil {
		entry.SeriesA = trend.Series{}
	}
	if entry.SeriesB == nil {
		entry.SeriesB = trend.Series{}
	}
	if c.HasComparison() {
		entry.Comparison = &ComparisonModel{
			ComparisonResult: *c.Comparison,
			Phrase:           c.Comparison.Phrase(c.CountryA, c.CountryB),
		}
	}
	if len(c.Rows) > 0 {
		entry.HeatStrips = chart.HeatStrips(chart.Spec{CountryA: c.CountryA, CountryB: c.CountryB, Rows: c.Rows})
	}
	if lo, hi, ok := trend.ValueRange(c.Rows); ok {
		entry.ValueRange = &ValueRange{Min: lo, Max: hi}
	}
	return entry
}
