// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api/middleware"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api/resources"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/alerts"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/hubservice"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/weather"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.KeycloakMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, weatherSvc *weather.Service, alertSvc *alerts.Service, keycloakConfig middleware.KeycloakConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewKeycloakMiddleware(keycloakConfig),
		resources: resources.NewResources(svc, weatherSvc, alertSvc, keycloakConfig),
	}

	r.setupRoutes()
	return r
}

// Resources exposes the handler set so the server can inject the health
// check after the stores are wired.
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes. The dashboard is readable without a session; only
	// hive administration sits behind the gate.
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck != nil {
			r.resources.HealthCheck(w, req)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api.HandleFunc("/dashboard/hives", r.resources.Dashboard.ListDashboardHives).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/summary", r.resources.Dashboard.GetApiarySummary).Methods(http.MethodGet)
	api.HandleFunc("/hives/{id}/history", r.resources.Readings.GetHiveHistory).Methods(http.MethodGet)
	api.HandleFunc("/hives/{id}/status", r.resources.Readings.GetCurrentStatus).Methods(http.MethodGet)
	api.HandleFunc("/weather", r.resources.Weather.GetForecast).Methods(http.MethodGet)

	// Alert intake: POST only, anything else is answered 405 by mux.
	api.HandleFunc("/alerts", r.resources.Alerts.SubmitAlert).Methods(http.MethodPost)

	// Session endpoints
	api.HandleFunc("/auth/login", r.resources.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", r.resources.Auth.Logout).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	protected.HandleFunc("/auth/session", r.resources.Auth.GetSession).Methods(http.MethodGet)

	// Hive administration
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(r.auth.RequireRoles([]string{"admin"}))

	admin.HandleFunc("/hives", r.resources.Hives.ListHives).Methods(http.MethodGet)
	admin.HandleFunc("/hives", r.resources.Hives.CreateHive).Methods(http.MethodPost)
	admin.HandleFunc("/hives/{id}", r.resources.Hives.GetHive).Methods(http.MethodGet)
	admin.HandleFunc("/hives/{id}", r.resources.Hives.UpdateHive).Methods(http.MethodPut)
	admin.HandleFunc("/hives/{id}", r.resources.Hives.DeleteHive).Methods(http.MethodDelete)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
