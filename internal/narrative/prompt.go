package narrative

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the external model before the user prompt.
const SystemPrompt = "You are a careful public health data analyst. You must be honest about uncertainty and never invent precise numbers that are not present."

// PromptGuidance is returned by LLMPrompt before anything was generated.
var PromptGuidance = strings.Join([]string{
	"Please generate graphs & data first.",
	"",
	`1. Click "Generate graphs & data" above.`,
	"2. Make sure a health indicator and at least one country/region are selected.",
	"3. Then try 'Copy LLM prompt' again.",
}, "\n")

// LLMPrompt builds the prompt for an external model, or PromptGuidance when
// the context is not ready.
func LLMPrompt(c Context) string {
	if !c.Ready() {
		return PromptGuidance
	}
	return BuildPrompt(c.Selection, FormatSeries(c.SeriesA), FormatSeries(c.SeriesB))
}

// BuildPrompt assembles the prompt from already formatted series. The
// comparison block is only added when a second country and its series exist.
func BuildPrompt(sel Selection, seriesA, seriesB string) string {
	comparison := "\n\nNo comparison country was provided; focus on a clear analysis for the primary country only."
	if seriesB != "" && sel.CountryB != "" {
		comparison = fmt.Sprintf("\n\nFor %s, the indicator series is:\n%s\n\nPlease compare %s and %s clearly.",
			sel.CountryB, seriesB, sel.CountryA, sel.CountryB)
	}

	return strings.Join([]string{
		"You are an expert public health data analyst.",
		"You are given a world health indicator time series from 2000 to 2023, taken from a cleaned CSV dataset used in a student dashboard project.",
		"",
		"Indicator: " + sel.Indicator,
		"Country/Region A: " + sel.CountryA,
		fmt.Sprintf("Time series for %s:", sel.CountryA),
		seriesA,
		comparison,
		"",
		"TASK:",
		"Write a clear, accurate, student-friendly narrative (no more than about 3 short paragraphs) that:",
		"1. Describes the overall trend over time (increasing/decreasing/stable) and any important spikes or drops.",
		"2. Interprets what this might mean in real-world terms (e.g. births, deaths, life expectancy or the meaning of the indicator).",
		"3. If a comparison country was provided, compares the two countries honestly and highlights key differences or similarities.",
		`4. Avoids guessing specific causes unless they are very generic (e.g. "policy changes", "economic conditions", "health system strength").`,
		"5. Avoids making up any numbers not present in the data – use only qualitative language about direction and relative levels.",
		"",
		"Keep the tone neutral and analytical, suitable for a college assignment.",
	}, "\n")
}
