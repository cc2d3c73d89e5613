package restapi

import (
	"net/http"

	"whd.healthtrends.org/internal/models"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/utils"
)

// readSelection decodes and validates a SelectionRequest. It writes the error
// response itself and reports whether the handler should continue.
func (api *RestAPI) readSelection(w http.ResponseWriter, r *http.Request, dst *models.SelectionRequest) bool {
	if err := readJSON(w, r, dst); err != nil {
		api.badRequestResponse(w, r, err)
		return false
	}
	if fieldErrors := utils.ValidateSelection(dst.Selection, false); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return false
	}
	return true
}

func (api *RestAPI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SelectionRequest
	if !api.readSelection(w, r, &req) {
		return
	}

	c := api.Manager.Context(req.Selection, req.Generated)
	api.sendResponse(w, r, models.NewEntryResponse(models.NewDashboardEntry(c)))
}

func (api *RestAPI) textHandler(render func(narrative.Context) string) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SelectionRequest
		if !api.readSelection(w, r, &req) {
			return
		}

		c := api.Manager.Context(req.Selection, req.Generated)
		api.sendResponse(w, r, models.NewEntryResponse(models.TextEntry{Text: render(c)}))
	}
}

func (api *RestAPI) reportNotesHandler(w http.ResponseWriter, r *http.Request) {
	api.textHandler(narrative.ReportNotes)(w, r)
}

func (api *RestAPI) localSummaryHandler(w http.ResponseWriter, r *http.Request) {
	api.textHandler(narrative.LocalSummary)(w, r)
}

func (api *RestAPI) llmPromptHandler(w http.ResponseWriter, r *http.Request) {
	api.textHandler(narrative.LLMPrompt)(w, r)
}

func (api *RestAPI) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := readJSON(w, r, &req); err != nil {
		api.badRequestResponse(w, r, err)
		return
	}

	fieldErrors := utils.ValidateSelection(req.Selection, false)
	if err := utils.ValidateQuestion(req.Question); err != nil {
		fieldErrors["question"] = append(fieldErrors["question"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	question := utils.SanitizeInput(req.Question)
	c := api.Manager.Context(req.Selection, req.Generated)
	answer := narrative.ChatReply(c, question)

	api.sendResponse(w, r, models.NewEntryResponse(models.ChatEntry{
		Messages: []models.ChatMessage{
			models.NewChatMessage(models.RoleUser, question),
			models.NewAnswerMessage(answer),
		},
	}))
}
