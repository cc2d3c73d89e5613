package llm

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://api.openai.com", cfg.Endpoint)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.False(t, cfg.HasCredential())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", " sk-env ")
	t.Setenv("WHD_LLM_ENDPOINT", "http://localhost:8080/")
	t.Setenv("WHD_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("WHD_LLM_TEMPERATURE", "0.5")
	t.Setenv("WHD_LLM_TIMEOUT_MS", "1500")
	t.Setenv("WHD_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.True(t, cfg.HasCredential())
	assert.Equal(t, "http://localhost:8080", cfg.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 1500, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("WHD_LLM_TEMPERATURE", "hot")
	t.Setenv("WHD_LLM_TIMEOUT_MS", "-1")

	cfg := LoadConfig()
	assert.False(t, cfg.HasCredential())
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 0, cfg.TimeoutMs)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	NewLogObserver(logger).OnCallComplete(CallEvent{Provider: "openai", Model: "gpt-4o", LatencyMs: 12, ErrorCode: "http_500"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "llm_call", entry["msg"])
	assert.Equal(t, "gpt-4o", entry["model"])
	assert.Equal(t, "err:http_500", entry["status"])
	assert.Equal(t, float64(12), entry["latency_ms"])
}
