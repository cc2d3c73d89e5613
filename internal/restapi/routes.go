package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every API route on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/indicators", validateAPIKey(api, api.indicatorsHandler))
	router.Handler(http.MethodGet, "/api/countries", validateAPIKey(api, api.countriesHandler))
	router.Handler(http.MethodGet, "/api/series/:country", validateAPIKey(api, api.seriesHandler))
	router.Handler(http.MethodPost, "/api/dashboard", validateAPIKey(api, api.dashboardHandler))
	router.Handler(http.MethodPost, "/api/report-notes", validateAPIKey(api, api.reportNotesHandler))
	router.Handler(http.MethodPost, "/api/local-summary", validateAPIKey(api, api.localSummaryHandler))
	router.Handler(http.MethodPost, "/api/llm-prompt", validateAPIKey(api, api.llmPromptHandler))
	router.Handler(http.MethodPost, "/api/chat", validateAPIKey(api, api.chatHandler))
	router.Handler(http.MethodGet, "/api/chart.png", validateAPIKey(api, api.chartHandler))
	router.Handler(http.MethodPost, "/api/llm-summary", validateAPIKey(api, api.llmSummaryHandler))
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}
