// FilePath: api/resources/resources_test.go
package resources

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/alerts"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/config"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/weather"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSubmitAlertInvalidBody(t *testing.T) {
	handler := &AlertHandlers{alerts: alerts.New(nil, "colmena.alerts")}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.SubmitAlert(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["error"])
}

func TestSubmitAlertMissingFields(t *testing.T) {
	handler := &AlertHandlers{alerts: alerts.New(nil, "colmena.alerts")}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts",
		strings.NewReader(`{"message": "no hive or type"}`))
	rec := httptest.NewRecorder()
	handler.SubmitAlert(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "missing required fields")
}

func TestSubmitAlertAcknowledged(t *testing.T) {
	handler := &AlertHandlers{alerts: alerts.New(nil, "colmena.alerts")}

	payload := `{
		"hive_unique_id": "colmena_alfa",
		"alert_type": "temperature_high",
		"message": "temperature above threshold",
		"current_value": 42.3,
		"threshold_value": 38.0
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.SubmitAlert(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestGetForecastWithoutAPIKey(t *testing.T) {
	cfg := config.WeatherConfig{City: "Campana, Buenos Aires, AR", ForecastDays: 7}
	svc := weather.NewService(cfg, weather.NewClient("", "http://localhost"), nil)
	handler := &WeatherHandlers{weather: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	rec := httptest.NewRecorder()
	handler.GetForecast(rec, req)

	// A missing key is an operator problem, reported without ever calling
	// the provider.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "not configured")
}
