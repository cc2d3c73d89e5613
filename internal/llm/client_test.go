package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(event CallEvent) {
	o.events = append(o.events, event)
}

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = endpoint
	return cfg
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"model":"gpt-4o-2024","choices":[{"message":{"role":"assistant","content":"A narrative."}}]}`))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	client := NewOpenAIClient(testConfig(server.URL), observer)

	resp, err := client.Complete(context.Background(), Request{SystemPrompt: "sys", UserPrompt: "user"})
	require.NoError(t, err)
	assert.Equal(t, "A narrative.", resp.Text)
	assert.Equal(t, "gpt-4o-2024", resp.Model)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 0.2, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "user"}, got.Messages[1])

	require.Len(t, observer.events, 1)
	assert.True(t, observer.events[0].Success)
	assert.Equal(t, "openai", observer.events[0].Provider)
}

func TestCompleteUpstreamError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	_, err := NewOpenAIClient(testConfig(server.URL), observer).Complete(context.Background(), Request{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Equal(t, `{"error":{"message":"Incorrect API key"}}`, upstream.Body)
	assert.Equal(t, 1, calls, "no retries")
	assert.Equal(t, "http_401", observer.events[0].ErrorCode)
}

func TestCompleteEmptyCompletion(t *testing.T) {
	for name, body := range map[string]string{
		"no choices":   `{"choices":[]}`,
		"null content": `{"choices":[{"message":{"content":null}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := NewOpenAIClient(testConfig(server.URL), nil).Complete(context.Background(), Request{})
			assert.ErrorIs(t, err, ErrEmptyCompletion)
		})
	}
}

func TestCompleteEmptyStringIsKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer server.Close()

	resp, err := NewOpenAIClient(testConfig(server.URL), nil).Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Text)
}

func TestCompleteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := NewOpenAIClient(testConfig(server.URL), nil).Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCompletion)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestCompleteMissingCredential(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.APIKey = ""
	_, err := NewOpenAIClient(cfg, nil).Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestCompleteTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	observer := &recordingObserver{}
	_, err := NewOpenAIClient(testConfig(url), observer).Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, "transport", observer.events[0].ErrorCode)
}

func TestTemperatureOverride(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	temp := 0.7
	_, err := NewOpenAIClient(testConfig(server.URL), nil).Complete(context.Background(), Request{Temperature: &temp})
	require.NoError(t, err)
	assert.Equal(t, 0.7, got.Temperature)
}

func TestCompleteReportsLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	resp, err := NewOpenAIClient(testConfig(server.URL), observer).Complete(context.Background(), Request{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, resp.LatencyMs, int64(20))
	require.Len(t, observer.events, 1)
	assert.Equal(t, observer.events[0].LatencyMs, resp.LatencyMs)
}
