package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential indicates no API key is configured.
	ErrMissingCredential = errors.New("llm api key is not set")

	// ErrEmptyCompletion indicates the upstream reply had no first choice content.
	ErrEmptyCompletion = errors.New("llm returned no completion")
)

// UpstreamError is a non-2xx reply from the model endpoint. Body is the raw
// response text.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm upstream returned status %d: %s", e.StatusCode, e.Body)
}
