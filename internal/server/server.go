// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api/middleware"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/alerts"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/config"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/database"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/hubservice"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/monitoring"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/repository/postgres"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/repository/timescale"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/weather"
)

// The public dashboard snapshot is cheap to rebuild, so it refreshes far
// more often than the weather forecast.
const dashboardRefreshInterval = time.Minute

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	weather    *weather.Service
	monitoring *monitoring.Service
	appDB      database.DB
	tsdb       database.DB
	rdb        *redis.Client
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.rdb = initRedis(s.config.Redis)
	s.hubservice = s.initializeHubService()
	s.monitoring = monitoring.NewService(s.rdb)

	forecaster := weather.NewClient(s.config.Weather.APIKey, s.config.Weather.BaseURL)
	s.weather = weather.NewService(s.config.Weather, forecaster, s.rdb)
	alertSvc := alerts.New(s.rdb, s.config.Alerts.Channel)

	s.setupCleanupHandlers()

	router := api.NewRouter(s.hubservice, s.weather, alertSvc, middleware.KeycloakConfig{
		URL:          s.config.Keycloak.URL,
		Realm:        s.config.Keycloak.Realm,
		ClientID:     s.config.Keycloak.ClientID,
		ClientSecret: s.config.Keycloak.ClientSecret,
	})
	router.Resources().SetHealthCheck(s.handleHealth())

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	s.srv.Handler = handlers.CombinedLoggingHandler(os.Stdout, cors(router))

	// Background refreshers
	s.hubservice.StartDashboardRefresher(dashboardRefreshInterval)
	s.weather.StartRefresher()

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	s.hubservice.StopDashboardRefresher()
	s.weather.StopRefresher()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis client: %v", err)
		}
	}
	if s.tsdb != nil {
		s.tsdb.Close()
	}
	if s.appDB != nil {
		s.appDB.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupCleanupHandlers() {
	// Handle hive deletion events
	s.hubservice.Cleanup.OnCleanup("hive.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Hive %s and all associated data deleted", id)
		s.monitoring.RecordEvent("hive_deletion", map[string]string{
			"hive_id": id,
		})
	})

	// Handle reading deletion events
	s.hubservice.Cleanup.OnCleanup("readings.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] All sensor readings for hive %s deleted", id)
		s.monitoring.RecordEvent("readings_deletion", map[string]string{
			"hive_id": id,
		})
	})
}

// initializeHubService creates and configures the hub service
func (s *Server) initializeHubService() *hubservice.HubService {
	s.tsdb = initTimescaleDB(s.config.Database.TimescaleDB)
	s.appDB = initAppDB(s.config.Database.AppDB)

	hives := postgres.NewHiveRepository(s.appDB)
	sensorData, err := timescale.NewSensorDataRepository(s.tsdb)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize sensor data repository: %v", err)
	}

	svc := hubservice.New(hives, sensorData)
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid hub service: %v", err)
	}
	return svc
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		nuts.L.Warnf("[Server] No redis host configured, cache and alert relay disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		nuts.L.Warnf("[Server] Redis unreachable, continuing without it: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func initTimescaleDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewTimescaleDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to TimescaleDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping TimescaleDB: %v", err)
	}
	return wrappedDB
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to AppDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping AppDB: %v", err)
	}
	return wrappedDB
}
