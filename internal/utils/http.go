package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ParamFromContext retrieves a route parameter and removes a ".json" suffix.
func ParamFromContext(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSuffix(params.ByName(paramName), ".json")
}
