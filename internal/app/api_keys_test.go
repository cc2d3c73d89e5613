package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"whd.healthtrends.org/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestConfiguredKeys(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"TEST", "dashboard"},
		},
	}

	assert.False(t, app.IsInvalidAPIKey("TEST"))
	assert.False(t, app.IsInvalidAPIKey("dashboard"))
	assert.True(t, app.IsInvalidAPIKey("test"))

	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/indicators?key=TEST", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/indicators", nil)))
}

func TestNoKeysMeansOpen(t *testing.T) {
	app := &Application{}
	assert.False(t, app.IsInvalidAPIKey(""))
	assert.False(t, app.IsInvalidAPIKey("anything"))
}
