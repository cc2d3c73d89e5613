package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"whd.healthtrends.org/internal/narrative"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "country", input: "Ireland"},
		{name: "indicator with punctuation", input: "Birth rate, crude (per 1,000 people)"},
		{name: "percent sign", input: "Immunization, measles (% of children ages 12-23 months)"},
		{name: "empty", input: "", wantErr: "cannot be empty"},
		{name: "blank", input: "   ", wantErr: "cannot be empty"},
		{name: "too long", input: strings.Repeat("a", 201), wantErr: "too long (max 200 characters)"},
		{name: "markup", input: "Ireland<script>", wantErr: "contains invalid characters"},
		{name: "sql comment", input: "Ireland'; DROP TABLE countries; --", wantErr: "contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	assert.NoError(t, ValidateQuestion("What's the trend?"))
	assert.EqualError(t, ValidateQuestion("  "), "question cannot be empty")
	assert.EqualError(t, ValidateQuestion(strings.Repeat("é", 501)), "question too long (max 500 characters)")
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "compare them", SanitizeInput("  <b>compare</b> them "))
}

func TestValidateSelection(t *testing.T) {
	t.Run("valid without second country", func(t *testing.T) {
		errs := ValidateSelection(narrative.Selection{Indicator: "Life expectancy at birth, total (years)", CountryA: "Ireland"}, true)
		assert.Empty(t, errs)
	})

	t.Run("missing required fields", func(t *testing.T) {
		errs := ValidateSelection(narrative.Selection{CountryB: "<x>"}, true)
		assert.Equal(t, []string{"indicator cannot be empty"}, errs["indicator"])
		assert.Equal(t, []string{"countryA cannot be empty"}, errs["countryA"])
		assert.Equal(t, []string{"countryB contains invalid characters"}, errs["countryB"])
	})

	t.Run("empty selection allowed when optional", func(t *testing.T) {
		assert.Empty(t, ValidateSelection(narrative.Selection{}, false))
	})

	t.Run("bad names rejected when optional", func(t *testing.T) {
		errs := ValidateSelection(narrative.Selection{CountryA: "a/*b*/"}, false)
		assert.Len(t, errs["countryA"], 1)
	})
}
