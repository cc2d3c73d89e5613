package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"whd.healthtrends.org/internal/llm"
	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/models"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/trend"
)

const (
	summaryMissingCredential = "OPENAI_API_KEY is not set on the server. Add it to .env.local (for dev) and Vercel project settings (for production), then try again."
	summaryInsufficientData  = "Insufficient data was provided to generate an LLM summary. Please ensure you have generated graphs & data first."
	summaryUpstreamPrefix    = "LLM API returned an error. Check your API key and model name. Raw response: "
	summaryEmpty             = "No summary content was returned by the LLM."
	summaryServerPrefix      = "Server-side error when generating LLM summary: "
)

// llmSummaryHandler forwards the prompt for a selection to the language model.
// Every path answers with {"summary": ...}; the status tells the outcome.
func (api *RestAPI) llmSummaryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LLMSummaryRequest
	if err := readJSON(w, r, &req); err != nil {
		api.sendSummary(w, r, http.StatusInternalServerError, summaryServerPrefix+err.Error())
		return
	}

	if !api.LLMConfig.HasCredential() || api.LLM == nil {
		api.sendSummary(w, r, http.StatusInternalServerError, summaryMissingCredential)
		return
	}

	if req.Indicator == "" || req.CountryA == "" || len(req.SeriesA) == 0 {
		api.sendSummary(w, r, http.StatusBadRequest, summaryInsufficientData)
		return
	}

	sel := narrative.Selection{Indicator: req.Indicator, CountryA: req.CountryA, CountryB: req.CountryB}
	prompt := narrative.BuildPrompt(sel,
		narrative.FormatSeries(trend.Series(req.SeriesA)),
		narrative.FormatSeries(trend.Series(req.SeriesB)))

	resp, err := api.LLM.Complete(r.Context(), llm.Request{
		SystemPrompt: narrative.SystemPrompt,
		UserPrompt:   prompt,
	})

	var upstream *llm.UpstreamError
	switch {
	case err == nil:
		api.sendSummary(w, r, http.StatusOK, resp.Text)
	case errors.Is(err, llm.ErrEmptyCompletion):
		api.sendSummary(w, r, http.StatusOK, summaryEmpty)
	case errors.As(err, &upstream):
		api.sendSummary(w, r, http.StatusInternalServerError, summaryUpstreamPrefix+upstream.Body)
	case errors.Is(err, llm.ErrMissingCredential):
		api.sendSummary(w, r, http.StatusInternalServerError, summaryMissingCredential)
	default:
		logging.LogError(api.Logger, "llm summary failed", err,
			slog.String("indicator", req.Indicator),
			slog.String("component", "llm_summary"))
		api.sendSummary(w, r, http.StatusInternalServerError, summaryServerPrefix+err.Error())
	}
}

func (api *RestAPI) sendSummary(w http.ResponseWriter, r *http.Request, status int, summary string) {
	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.LLMSummaryResponse{Summary: summary}); err != nil {
		api.Logger.Error("failed to encode summary response", "error", err, "path", r.URL.Path)
	}
}
