package narrative

import (
	"fmt"
	"strings"
)

// ChatGreeting opens every chat transcript.
const ChatGreeting = "Hi! I’m the health dashboard helper. Generate a graph, then ask me things like “What’s the trend?”, “Compare the two countries”, or “Is this indicator improving?”."

// ChatGuidance answers any question asked before data was generated.
const ChatGuidance = "First generate graphs & data on the left by picking an indicator and countries, then click “Generate graphs & data”. After that, ask me about trends, comparisons, or interpretation."

// Intent is the category a chat question was matched to.
type Intent string

const (
	IntentGuidance  Intent = "guidance"
	IntentTrend     Intent = "trend"
	IntentCompare   Intent = "compare"
	IntentInterpret Intent = "interpret"
	IntentGeneral   Intent = "general"
)

// Answer is a chat reply together with the rule that produced it.
type Answer struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
}

type chatRule struct {
	intent   Intent
	keywords []string
	reply    func(Context) []string
}

// chatRules are evaluated in order; the first rule with a matching keyword wins.
var chatRules = []chatRule{
	{IntentTrend, []string{"trend", "increase", "decrease", "up", "down"}, trendReply},
	{IntentCompare, []string{"compare", "difference", "higher", "lower"}, compareReply},
	{IntentInterpret, []string{"good", "bad", "interpret", "meaning"}, interpretReply},
}

func (r chatRule) matches(question string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(question, kw) {
			return true
		}
	}
	return false
}

// ChatReply answers a free-text question with canned, data-backed sentences.
// Keywords are matched case-insensitively as substrings.
func ChatReply(c Context, question string) Answer {
	if !c.Ready() {
		return Answer{Intent: IntentGuidance, Text: ChatGuidance}
	}

	lower := strings.ToLower(strings.TrimSpace(question))
	for _, rule := range chatRules {
		if rule.matches(lower) {
			return Answer{Intent: rule.intent, Text: strings.Join(rule.reply(c), " ")}
		}
	}
	return Answer{Intent: IntentGeneral, Text: strings.Join(generalReply(c), " ")}
}

func trendReply(c Context) []string {
	a := c.TrendA
	return []string{
		fmt.Sprintf("For %s in %s, the overall trend from 2000 to 2023 looks %s.", c.Indicator, c.CountryA, a.Classification.Phrase()),
		fmt.Sprintf("It starts around %s and ends near %s.", oneDecimal(a.First), oneDecimal(a.Last)),
	}
}

func compareReply(c Context) []string {
	a := c.TrendA
	if !c.HasComparison() {
		return []string{
			fmt.Sprintf("I only have a clear time series for %s right now, so I can’t fully compare both countries.", c.CountryA),
			fmt.Sprintf("For %s, the trend looks %s from 2000 to 2023.", c.CountryA, a.Classification.Phrase()),
		}
	}

	b := c.TrendB
	return []string{
		fmt.Sprintf("Comparing %s and %s for %s:", c.CountryA, c.CountryB, c.Indicator),
		fmt.Sprintf("%s is %s overall, from about %s to %s.", c.CountryA, a.Classification.Phrase(), oneDecimal(a.First), oneDecimal(a.Last)),
		fmt.Sprintf("%s is %s, from about %s to %s. In the latest year, %s.",
			c.CountryB, b.Classification.Phrase(), oneDecimal(b.First), oneDecimal(b.Last), c.comparisonPhrase()),
	}
}

func interpretReply(c Context) []string {
	return []string{
		fmt.Sprintf("Whether the trend is “good” or “bad” depends on what %s actually measures.", c.Indicator),
		"For example, an increase might be positive for coverage/uptake indicators, but negative for death or incidence indicators.",
		"Use the direction (increasing/decreasing/stable) plus your knowledge of the indicator to argue why this might be a concern or an improvement.",
	}
}

func generalReply(c Context) []string {
	a := c.TrendA
	lines := []string{
		fmt.Sprintf("I’ve used your current graph settings to answer based on %s in %s.", c.Indicator, c.CountryA),
		fmt.Sprintf("Overall, the trend looks %s from 2000 to 2023, starting around %s and ending near %s.",
			a.Classification.Phrase(), oneDecimal(a.First), oneDecimal(a.Last)),
	}
	if c.HasComparison() {
		b := c.TrendB
		lines = append(lines, fmt.Sprintf("For %s, the pattern is %s, from about %s to %s. In the latest year, %s.",
			c.CountryB, b.Classification.Phrase(), oneDecimal(b.First), oneDecimal(b.Last), c.comparisonPhrase()))
	}
	return append(lines, "If you want a richer narrative in full sentences, use the “Copy LLM prompt” button and paste it into ChatGPT.")
}
