package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/trend"
)

func ptr(v float64) *float64 { return &v }

func TestNewDashboardEntry(t *testing.T) {
	sel := narrative.Selection{Indicator: "Life expectancy at birth, total (years)", CountryA: "France", CountryB: "Spain"}
	rows := []trend.AlignedRow{
		{Year: "2000", ValueA: ptr(79.0), ValueB: ptr(79.1)},
		{Year: "2023", ValueA: ptr(80.1), ValueB: ptr(80.1)},
	}

	entry := NewDashboardEntry(narrative.NewContext(sel, true, rows))

	assert.True(t, entry.Ready)
	require.NotNil(t, entry.TrendA)
	assert.Equal(t, trend.Increasing, entry.TrendA.Classification)
	assert.Equal(t, "increasing", entry.TrendA.Phrase)
	require.NotNil(t, entry.Comparison)
	assert.Equal(t, trend.Similar, entry.Comparison.Relation)
	assert.Equal(t, "very similar in the latest year", entry.Comparison.Phrase)
	assert.Len(t, entry.HeatStrips, 2)
	require.NotNil(t, entry.ValueRange)
	assert.Equal(t, 79.0, entry.ValueRange.Min)
	assert.Equal(t, 80.1, entry.ValueRange.Max)

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"classification":"increasing"`)
	assert.Contains(t, string(data), `"relation":"similar"`)
}

func TestNewDashboardEntryNotGenerated(t *testing.T) {
	entry := NewDashboardEntry(narrative.NewContext(narrative.Selection{CountryA: "Ireland"}, false, nil))

	assert.False(t, entry.Ready)
	assert.Nil(t, entry.TrendA)
	assert.Nil(t, entry.Comparison)
	assert.Nil(t, entry.ValueRange)
	assert.Empty(t, entry.Rows)
	assert.NotNil(t, entry.HeatStrips)
}

func TestSelectionRequestJSON(t *testing.T) {
	var req ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"indicator":"x","countryA":"Ireland","generated":true,"question":"trend?"}`), &req))
	assert.Equal(t, "x", req.Indicator)
	assert.Equal(t, "Ireland", req.CountryA)
	assert.True(t, req.Generated)
	assert.Equal(t, "trend?", req.Question)
}

func TestChatMessages(t *testing.T) {
	greeting := NewGreetingMessage()
	assert.Equal(t, RoleAssistant, greeting.Role)
	assert.Equal(t, narrative.ChatGreeting, greeting.Text)
	assert.Len(t, greeting.ID, 36)

	answer := NewAnswerMessage(narrative.Answer{Intent: narrative.IntentTrend, Text: "rising"})
	assert.Equal(t, narrative.IntentTrend, answer.Intent)
	assert.NotEqual(t, greeting.ID, answer.ID)
}
