package narrative

import (
	"fmt"
	"strings"
)

// ReportNotes builds the writing checklist for a report. It only uses the
// selected names, never computed numbers.
func ReportNotes(c Context) string {
	indicator := c.Indicator
	if indicator == "" {
		indicator = "the selected indicator"
	}

	header := fmt.Sprintf("Report notes for %s in %s", indicator, c.CountryA)
	if c.CountryB != "" {
		header += fmt.Sprintf(" (compared with %s)", c.CountryB)
	}
	header += " (" + Period + ")\n\n"

	if !c.Generated || len(c.Rows) == 0 {
		return header + strings.Join([]string{
			"Graphs and data have not been generated yet or no data is available for this combination.",
			`1. First click "Generate graphs & data" on the dashboard.`,
			"2. Make sure the selected indicator and country/region actually exist in the dataset.",
			"3. Once the graphs are visible, focus on direction of change, spikes/drops, and differences between regions.",
		}, "\n")
	}

	second := "2. Optionally select a second country/region to compare trends."
	if c.CountryB != "" {
		second = fmt.Sprintf("2. Compare %s with %s. Which one appears higher or lower overall?", c.CountryA, c.CountryB)
	}

	return header + strings.Join([]string{
		fmt.Sprintf("1. Describe the overall trend for %s in %s.", c.Indicator, c.CountryA),
		"   • Is it increasing, decreasing, or relatively stable between 2000 and 2023?",
		second,
		"3. Comment on any obvious spikes or drops in the lines or bars.",
		"   • Could these be linked to policy changes, economic events, or health crises?",
		"4. Explain what this means in practical terms for this indicator (e.g. births, deaths, life expectancy, or another health measure).",
		"5. Summarise why these findings are important for public health planning or policy-making.",
	}, "\n")
}
