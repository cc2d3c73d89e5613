package models

import "whd.healthtrends.org/internal/trend"

// LLMSummaryRequest is the body of the summary route. SeriesB and CountryB are optional.
type LLMSummaryRequest struct {
	Indicator string              `json:"indicator"`
	CountryA  string              `json:"countryA"`
	CountryB  string              `json:"countryB,omitempty"`
	SeriesA   []trend.SeriesPoint `json:"seriesA"`
	SeriesB   []trend.SeriesPoint `json:"seriesB,omitempty"`
}

// LLMSummaryResponse is returned on every path of the summary route.
type LLMSummaryResponse struct {
	Summary string `json:"summary"`
}
