package app

import (
	"log/slog"

	"whd.healthtrends.org/internal/appconf"
	"whd.healthtrends.org/internal/dataset"
	"whd.healthtrends.org/internal/llm"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Manager   *dataset.Manager
	LLM       llm.Client
	LLMConfig llm.Config
}
