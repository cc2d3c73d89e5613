package trend

import (
	"fmt"
	"math"
)

// Deadbands below which a change is not treated as directional. These are
// policy values and must stay exactly as they are.
const (
	TrendDeadband   = 0.5
	SimilarDeadband = 0.25
)

// Classification is the qualitative direction of a series.
type Classification int

const (
	Stable Classification = iota
	Increasing
	Decreasing
)

func (c Classification) String() string {
	switch c {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "stable"
	}
}

// Phrase is the word used in generated prose.
func (c Classification) Phrase() string {
	if c == Stable {
		return "relatively stable"
	}
	return c.String()
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// TrendResult describes a series by its endpoints.
type TrendResult struct {
	First          float64        `json:"first"`
	Last           float64        `json:"last"`
	Delta          float64        `json:"delta"`
	Classification Classification `json:"classification"`
}

// ClassifyTrend compares the first and last observation of s. It is a crude
// endpoint difference, not a fitted slope: intermediate years are ignored.
// ok is false when s is empty and no trend is available.
func ClassifyTrend(s Series) (result TrendResult, ok bool) {
	if len(s) == 0 {
		return TrendResult{}, false
	}

	first := s.First().Value
	last := s.Last().Value
	delta := last - first

	result = TrendResult{First: first, Last: last, Delta: delta, Classification: Stable}
	switch {
	case delta > TrendDeadband:
		result.Classification = Increasing
	case delta < -TrendDeadband:
		result.Classification = Decreasing
	}
	return result, true
}

// Relation tells which country is higher in the latest year.
type Relation int

const (
	Similar Relation = iota
	AHigher
	BHigher
)

func (r Relation) String() string {
	switch r {
	case AHigher:
		return "A-higher"
	case BHigher:
		return "B-higher"
	default:
		return "similar"
	}
}

func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ComparisonResult compares the latest values of two series.
type ComparisonResult struct {
	Gap      float64  `json:"gap"`
	Relation Relation `json:"relation"`
}

// Compare returns nil when there is no second series or no second country.
// |gap| < SimilarDeadband is similar; exactly SimilarDeadband is not.
func Compare(a TrendResult, b *TrendResult, countryA, countryB string) *ComparisonResult {
	if b == nil || countryB == "" {
		return nil
	}

	gap := a.Last - b.Last
	result := &ComparisonResult{Gap: gap}
	switch {
	case math.Abs(gap) < SimilarDeadband:
		result.Relation = Similar
	case gap > 0:
		result.Relation = AHigher
	default:
		result.Relation = BHigher
	}
	return result
}

// Phrase describes the latest-year relation between the two countries.
func (c ComparisonResult) Phrase(countryA, countryB string) string {
	switch c.Relation {
	case AHigher:
		return fmt.Sprintf("%s is higher than %s in the latest year", countryA, countryB)
	case BHigher:
		return fmt.Sprintf("%s is higher than %s in the latest year", countryB, countryA)
	default:
		return "very similar in the latest year"
	}
}
