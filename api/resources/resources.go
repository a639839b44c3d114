// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api/middleware"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/alerts"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/hubservice"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/weather"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Hives       *HiveHandlers
	Dashboard   *DashboardHandlers
	Readings    *ReadingHandlers
	Weather     *WeatherHandlers
	Alerts      *AlertHandlers
	Auth        *AuthHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, weatherSvc *weather.Service, alertSvc *alerts.Service, keycloakCfg middleware.KeycloakConfig) *Resources {
	return &Resources{
		Hives:     &HiveHandlers{hubservice: svc},
		Dashboard: &DashboardHandlers{hubservice: svc},
		Readings:  &ReadingHandlers{hubservice: svc},
		Weather:   &WeatherHandlers{weather: weatherSvc},
		Alerts:    &AlertHandlers{alerts: alertSvc},
		Auth:      NewAuthHandlers(keycloakCfg),
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// Helper functions

// asAPIError converts any service error into a structured API error,
// preserving the specific kind (not-found, conflict, validation, ...) when
// the service already classified it.
func asAPIError(err error) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr
	}
	return errors.NewInternalError("unexpected error", err)
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
