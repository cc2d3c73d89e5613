package restapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"whd.healthtrends.org/internal/chart"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/utils"
)

const maxChartSide = 4000

func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sel := narrative.Selection{
		Indicator: query.Get("indicator"),
		CountryA:  query.Get("countryA"),
		CountryB:  query.Get("countryB"),
	}

	fieldErrors := utils.ValidateSelection(sel, true)
	kind, err := chart.ParseKind(query.Get("type"))
	if err != nil {
		fieldErrors["type"] = append(fieldErrors["type"], err.Error())
	}
	width := parseSide(query.Get("width"), "width", fieldErrors)
	height := parseSide(query.Get("height"), "height", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	spec := chart.Spec{
		Title:    sel.Indicator,
		CountryA: sel.CountryA,
		CountryB: sel.CountryB,
		Rows:     api.Manager.Rows(sel),
		Width:    width,
		Height:   height,
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, kind, spec); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func parseSide(raw, field string, fieldErrors map[string][]string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxChartSide {
		fieldErrors[field] = append(fieldErrors[field], field+" must be between 1 and 4000")
		return 0
	}
	return v
}
