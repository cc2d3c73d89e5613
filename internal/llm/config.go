package llm

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the settings of the external model. The credential is read
// from the environment and never logged.
type Config struct {
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
	TimeoutMs   int // 0 leaves the transport default in place
	LogCalls    bool
}

func DefaultConfig() Config {
	return Config{
		Endpoint:    "https://api.openai.com",
		Model:       "gpt-4o",
		Temperature: 0.2,
	}
}

// LoadConfig reads the environment, falling back to defaults for unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if v := os.Getenv("WHD_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("WHD_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("WHD_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("WHD_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("WHD_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// HasCredential reports whether an API key is configured.
func (c Config) HasCredential() bool {
	return c.APIKey != ""
}
