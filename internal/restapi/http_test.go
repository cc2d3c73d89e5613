package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"whd.healthtrends.org/internal/app"
	"whd.healthtrends.org/internal/appconf"
	"whd.healthtrends.org/internal/dataset"
	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/models"
)

const (
	lifeExpectancy = "Life expectancy at birth (years)"
	birthRate      = "Birth rate, crude (per 1,000 people)"
)

// createTestApi creates a RestAPI backed by the sample dataset.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager, err := dataset.InitManager(context.Background(), dataset.Config{
		Source: models.GetFixturePath(t, "health_sample.csv"),
		Env:    appconf.Test,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:     appconf.Test,
			ApiKeys: []string{"TEST"},
		},
		Logger:  logger,
		Manager: manager,
	}

	return &RestAPI{Application: application}
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.Handler(router))
	t.Cleanup(server.Close)
	return server
}

// serveAndRetrieveEndpoint performs a GET and decodes the envelope.
func serveAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	server := newTestServer(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp, response
}

// postEndpoint posts body as JSON and returns the response with its raw body.
func postEndpoint(t *testing.T, api *RestAPI, endpoint string, body any) (*http.Response, []byte) {
	t.Helper()
	server := newTestServer(t, api)

	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeEnvelope(t *testing.T, raw []byte) models.ResponseModel {
	t.Helper()
	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(raw, &response))
	return response
}

func entryOf(t *testing.T, response models.ResponseModel) map[string]any {
	t.Helper()
	data, ok := response.Data.(map[string]any)
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]any)
	require.True(t, ok, "entry should be an object")
	return entry
}

func listOf(t *testing.T, response models.ResponseModel) []any {
	t.Helper()
	data, ok := response.Data.(map[string]any)
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]any)
	require.True(t, ok, "list should be an array")
	return list
}
