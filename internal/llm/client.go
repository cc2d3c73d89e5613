// Package llm sends prompts to an OpenAI compatible chat completions endpoint.
// One request per call: no retries and no streaming.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request is one completion: a system message followed by a user message.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the configured temperature
}

// Response holds the text of the first choice.
type Response struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a language model.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

type openAIClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewOpenAIClient creates a Client for the chat completions API at cfg.Endpoint.
func NewOpenAIClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &openAIClient{
		cfg:      cfg,
		http:     &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		observer: observer,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if !c.cfg.HasCredential() {
		return nil, ErrMissingCredential
	}

	start := time.Now()
	temp := c.cfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	resp, err := c.doRequest(ctx, chatRequest{
		Model:       c.cfg.Model,
		Temperature: temp,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	})
	latency := time.Since(start).Milliseconds()

	event := CallEvent{Provider: "openai", Model: c.cfg.Model, LatencyMs: latency, Success: err == nil}
	if err != nil {
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)
	if err != nil {
		return nil, err
	}
	resp.LatencyMs = latency
	return resp, nil
}

func (c *openAIClient) doRequest(ctx context.Context, body chatRequest) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return nil, ErrEmptyCompletion
	}

	model := parsed.Model
	if model == "" {
		model = body.Model
	}
	return &Response{Text: *parsed.Choices[0].Message.Content, Model: model}, nil
}

func errorCode(err error) string {
	var upstream *UpstreamError
	switch {
	case errors.As(err, &upstream):
		return fmt.Sprintf("http_%d", upstream.StatusCode)
	case errors.Is(err, ErrEmptyCompletion):
		return "empty"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
