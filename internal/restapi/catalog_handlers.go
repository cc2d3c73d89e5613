package restapi

import (
	"net/http"

	"whd.healthtrends.org/internal/models"
	"whd.healthtrends.org/internal/utils"
)

func (api *RestAPI) indicatorsHandler(w http.ResponseWriter, r *http.Request) {
	indicators, err := api.Manager.Indicators(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(indicators))
}

func (api *RestAPI) countriesHandler(w http.ResponseWriter, r *http.Request) {
	indicator := r.URL.Query().Get("indicator")
	if err := utils.ValidateName(indicator); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"indicator": {"indicator " + err.Error()},
		})
		return
	}

	countries, err := api.Manager.Countries(r.Context(), indicator)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(countries))
}

// seriesHandler returns the stored observations of one country, read from
// the catalog rather than the in-memory table.
func (api *RestAPI) seriesHandler(w http.ResponseWriter, r *http.Request) {
	country := utils.ParamFromContext(r, "country")
	indicator := r.URL.Query().Get("indicator")

	fieldErrors := map[string][]string{}
	if err := utils.ValidateName(country); err != nil {
		fieldErrors["country"] = []string{"country " + err.Error()}
	}
	if err := utils.ValidateName(indicator); err != nil {
		fieldErrors["indicator"] = []string{"indicator " + err.Error()}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	series, err := api.Manager.DB.GetObservations(r.Context(), indicator, country)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(series))
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := api.Manager.Stats(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(stats))
}
