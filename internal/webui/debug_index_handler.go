package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"whd.healthtrends.org/internal/narrative"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	dataStruct := debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sel := narrative.Selection{
		Indicator: query.Get("indicator"),
		CountryA:  query.Get("countryA"),
		CountryB:  query.Get("countryB"),
	}

	var data interface{}
	var title string
	var err error

	switch query.Get("dataType") {
	case "stats":
		data, err = webUI.Manager.Stats(r.Context())
		title = "Dataset - Stats"
	case "indicators":
		data, err = webUI.Manager.Indicators(r.Context())
		title = "Catalog - Indicators"
	case "countries":
		data, err = webUI.Manager.Countries(r.Context(), sel.Indicator)
		title = "Catalog - Countries for " + sel.Indicator
	case "rows":
		data = webUI.Manager.Rows(sel)
		title = "Aligned Rows"
	case "context":
		data = webUI.Manager.Context(sel, true)
		title = "Narrative Context"
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, indicators, countries, rows, context.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeDebugData(w, title, data)
}
