package narrative

import (
	"fmt"
	"strings"

	"whd.healthtrends.org/internal/trend"
)

// SummaryGuidance is returned by LocalSummary before anything was generated.
var SummaryGuidance = strings.Join([]string{
	"Please generate graphs & data first.",
	"",
	`1. Click "Generate graphs & data" above.`,
	"2. Make sure a health indicator and at least one country/region are selected.",
	"3. Then try generating the local summary again.",
}, "\n")

// LocalSummary writes a short prose summary without calling any model.
func LocalSummary(c Context) string {
	if !c.Ready() {
		return SummaryGuidance
	}

	a := c.TrendA

	comparisonLine := ""
	if c.HasComparison() {
		b := c.TrendB
		comparisonLine = strings.Join([]string{
			"",
			fmt.Sprintf("For %s, the indicator also appears %s.", c.CountryB, b.Classification.Phrase()),
			fmt.Sprintf("It starts around %s and ends near %s, and in the latest year %s.",
				oneDecimal(b.First), oneDecimal(b.Last), c.comparisonPhrase()),
		}, "\n")
	}

	lines := []string{
		"Local AI-style summary (no external model):",
		"",
		fmt.Sprintf("For %s in %s, the indicator appears to be %s over the period %s.",
			c.Indicator, c.CountryA, a.Classification.Phrase(), Period),
		fmt.Sprintf("The value starts around %s and ends near %s, suggesting that %s has %s",
			oneDecimal(a.First), oneDecimal(a.Last), strings.ToLower(c.Indicator), movement(a.Classification)),
		comparisonLine,
		"",
		"In your report, you could:",
		"• Comment on whether these patterns are expected for each country/region.",
		"• Suggest possible reasons (policy changes, economic conditions, health system strength, crises).",
		"• Compare this pattern to other countries for the same indicator if data is available.",
		"• Link the numeric change back to real-world effects relevant to this indicator.",
	}
	return strings.Join(lines, "\n")
}

func movement(c trend.Classification) string {
	switch c {
	case trend.Increasing:
		return "been rising overall during this period."
	case trend.Decreasing:
		return "declined over time."
	default:
		return "remained fairly steady."
	}
}
