package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"whd.healthtrends.org/internal/narrative"
)

const (
	maxNameLength     = 200
	maxQuestionLength = 500
)

var (
	// Detect markup and comment sequences; indicator names legitimately use
	// commas, parentheses and percent signs.
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateName validates an indicator or country name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return errors.New("too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(name) {
		return errors.New("contains invalid characters")
	}

	return nil
}

// ValidateQuestion validates a chat question.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question cannot be empty")
	}

	if utf8.RuneCountInString(question) > maxQuestionLength {
		return errors.New("question too long (max 500 characters)")
	}

	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateSelection checks the names of a selection. When required is set the
// indicator and the primary country must be present; otherwise empty names
// are allowed and the caller answers with guidance text.
func ValidateSelection(sel narrative.Selection, required bool) map[string][]string {
	fieldErrors := make(map[string][]string)

	check := func(field, value string, mustExist bool) {
		if value == "" && !mustExist {
			return
		}
		if err := ValidateName(value); err != nil {
			fieldErrors[field] = append(fieldErrors[field], field+" "+err.Error())
		}
	}

	check("indicator", sel.Indicator, required)
	check("countryA", sel.CountryA, required)
	check("countryB", sel.CountryB, false)

	return fieldErrors
}
