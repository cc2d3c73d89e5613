package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"whd.healthtrends.org/internal/narrative"
)

func selectionBody(indicator, countryA, countryB string, generated bool) map[string]any {
	return map[string]any{
		"indicator": indicator,
		"countryA":  countryA,
		"countryB":  countryB,
		"generated": generated,
	}
}

func TestDashboardHandler(t *testing.T) {
	api := createTestApi(t)

	t.Run("two countries", func(t *testing.T) {
		resp, raw := postEndpoint(t, api, "/api/dashboard?key=TEST", selectionBody(lifeExpectancy, "France", "Spain", true))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := entryOf(t, decodeEnvelope(t, raw))
		assert.Equal(t, true, entry["ready"])
		assert.Len(t, entry["rows"], 24)
		assert.Len(t, entry["seriesA"], 23)
		assert.Len(t, entry["seriesB"], 24)

		trendA := entry["trendA"].(map[string]any)
		assert.Equal(t, "increasing", trendA["classification"])
		comparison := entry["comparison"].(map[string]any)
		assert.Equal(t, "similar", comparison["relation"])
		assert.Equal(t, "very similar in the latest year", comparison["phrase"])
		assert.Len(t, entry["heatStrips"], 2)
	})

	t.Run("not generated", func(t *testing.T) {
		_, raw := postEndpoint(t, api, "/api/dashboard?key=TEST", selectionBody(lifeExpectancy, "Ireland", "", false))
		entry := entryOf(t, decodeEnvelope(t, raw))
		assert.Equal(t, false, entry["ready"])
		assert.Nil(t, entry["trendA"])
		assert.Empty(t, entry["rows"])
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := postEndpoint(t, api, "/api/dashboard?key=TEST", "{")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid name", func(t *testing.T) {
		resp, raw := postEndpoint(t, api, "/api/dashboard?key=TEST", selectionBody(lifeExpectancy, "<Ireland>", "", true))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "countryA contains invalid characters")
	})
}

func TestTextHandlers(t *testing.T) {
	api := createTestApi(t)
	sel := narrative.Selection{Indicator: lifeExpectancy, CountryA: "Ireland"}
	c := api.Manager.Context(sel, true)

	tests := []struct {
		endpoint string
		want     string
	}{
		{"/api/report-notes", narrative.ReportNotes(c)},
		{"/api/local-summary", narrative.LocalSummary(c)},
		{"/api/llm-prompt", narrative.LLMPrompt(c)},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			resp, raw := postEndpoint(t, api, tt.endpoint+"?key=TEST", selectionBody(lifeExpectancy, "Ireland", "", true))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, entryOf(t, decodeEnvelope(t, raw))["text"])
		})
	}

	t.Run("local summary mentions the trend", func(t *testing.T) {
		_, raw := postEndpoint(t, api, "/api/local-summary?key=TEST", selectionBody(lifeExpectancy, "Ireland", "", true))
		text := entryOf(t, decodeEnvelope(t, raw))["text"].(string)
		assert.Contains(t, text, "76.6")
		assert.Contains(t, text, "82.5")
		assert.Contains(t, text, "increasing")
	})

	t.Run("guidance before generation", func(t *testing.T) {
		_, raw := postEndpoint(t, api, "/api/llm-prompt?key=TEST", selectionBody(lifeExpectancy, "Ireland", "", false))
		assert.Equal(t, narrative.PromptGuidance, entryOf(t, decodeEnvelope(t, raw))["text"])
	})

	t.Run("guidance for missing data", func(t *testing.T) {
		_, raw := postEndpoint(t, api, "/api/local-summary?key=TEST", selectionBody(birthRate, "Chad", "", true))
		assert.Equal(t, narrative.SummaryGuidance, entryOf(t, decodeEnvelope(t, raw))["text"])
	})
}

func TestChatHandler(t *testing.T) {
	api := createTestApi(t)

	t.Run("trend question", func(t *testing.T) {
		body := selectionBody(lifeExpectancy, "France", "Spain", true)
		body["question"] = "What's the trend when you compare them?"

		resp, raw := postEndpoint(t, api, "/api/chat?key=TEST", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		messages := entryOf(t, decodeEnvelope(t, raw))["messages"].([]any)
		require.Len(t, messages, 2)
		user := messages[0].(map[string]any)
		reply := messages[1].(map[string]any)
		assert.Equal(t, "user", user["role"])
		assert.Equal(t, "What's the trend when you compare them?", user["text"])
		assert.Equal(t, "assistant", reply["role"])
		assert.Equal(t, "trend", reply["intent"])
		assert.NotEqual(t, user["id"], reply["id"])
	})

	t.Run("compare them", func(t *testing.T) {
		body := selectionBody(lifeExpectancy, "France", "Spain", true)
		body["question"] = "compare them"

		_, raw := postEndpoint(t, api, "/api/chat?key=TEST", body)
		messages := entryOf(t, decodeEnvelope(t, raw))["messages"].([]any)
		reply := messages[1].(map[string]any)
		assert.Equal(t, "compare", reply["intent"])
		assert.Contains(t, reply["text"], "very similar in the latest year")
	})

	t.Run("empty question", func(t *testing.T) {
		body := selectionBody(lifeExpectancy, "France", "", true)
		body["question"] = "  "

		resp, raw := postEndpoint(t, api, "/api/chat?key=TEST", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "question cannot be empty")
	})
}
