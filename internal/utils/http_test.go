package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestParamFromContext(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want string
	}{
		{name: "plain", path: "/api/series/Ireland", want: "Ireland"},
		{name: "json extension", path: "/api/series/Ireland.json", want: "Ireland"},
		{name: "escaped space", path: "/api/series/United%20Kingdom.json", want: "United Kingdom"},
		{name: "inner dots kept", path: "/api/series/St.%20Lucia.json", want: "St. Lucia"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.HandlerFunc(http.MethodGet, "/api/series/:country", func(w http.ResponseWriter, r *http.Request) {
				result = ParamFromContext(r, "country")
				w.WriteHeader(http.StatusOK)
			})

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result)
		})
	}
}
