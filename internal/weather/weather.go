// FilePath: internal/weather/weather.go
package weather

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/config"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const displayDays = 5

const cacheKeyPrefix = "colmena:weather:"

// Service is the forecast passthrough: it shields the provider API key from
// clients, normalizes the upstream shape and caches results per city.
type Service struct {
	cfg        config.WeatherConfig
	forecaster Forecaster
	rdb        *redis.Client

	refreshing bool
	mu         sync.Mutex
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewService creates the weather service. rdb may be nil, which disables
// caching.
func NewService(cfg config.WeatherConfig, forecaster Forecaster, rdb *redis.Client) *Service {
	return &Service{
		cfg:        cfg,
		forecaster: forecaster,
		rdb:        rdb,
	}
}

// Get returns the normalized forecast for a city, truncated to the number
// of days the dashboard displays. A missing API key fails fast: the
// upstream provider is never called.
func (s *Service) Get(ctx context.Context, city string) (*models.WeatherForecast, error) {
	if s.cfg.APIKey == "" {
		return nil, errors.NewConfigError("weather API key is not configured", nil)
	}
	if city == "" {
		city = s.cfg.City
	}

	if cached := s.fromCache(ctx, city); cached != nil {
		return cached, nil
	}

	forecast, err := s.forecaster.Forecast(ctx, city, s.cfg.ForecastDays)
	if err != nil {
		return nil, err
	}

	if len(forecast.Forecast) > displayDays {
		forecast.Forecast = forecast.Forecast[:displayDays]
	}

	s.toCache(ctx, city, forecast)
	return forecast, nil
}

func (s *Service) fromCache(ctx context.Context, city string) *models.WeatherForecast {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, cacheKeyPrefix+city).Bytes()
	if err != nil {
		if err != redis.Nil {
			nuts.L.Warnf("[Weather] Cache read failed for %q: %v", city, err)
		}
		return nil
	}
	forecast := &models.WeatherForecast{}
	if err := json.Unmarshal(raw, forecast); err != nil {
		nuts.L.Warnf("[Weather] Discarding malformed cache entry for %q: %v", city, err)
		return nil
	}
	return forecast
}

func (s *Service) toCache(ctx context.Context, city string, forecast *models.WeatherForecast) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(forecast)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKeyPrefix+city, raw, s.cfg.CacheTTL).Err(); err != nil {
		nuts.L.Warnf("[Weather] Cache write failed for %q: %v", city, err)
	}
}

// StartRefresher keeps the configured city's forecast warm in the cache.
// A tick that arrives while the previous fetch is still running is skipped
// rather than stacked.
func (s *Service) StartRefresher() {
	if s.cfg.APIKey == "" {
		nuts.L.Warnf("[Weather] No API key configured, refresher not started")
		return
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.refreshOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Service) refreshOnce() {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		nuts.L.Debugf("[Weather] Refresh still in flight, skipping tick")
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.refreshing = false
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		forecast, err := s.forecaster.Forecast(ctx, s.cfg.City, s.cfg.ForecastDays)
		if err != nil {
			nuts.L.Warnf("[Weather] Background refresh failed: %v", err)
			return
		}
		if len(forecast.Forecast) > displayDays {
			forecast.Forecast = forecast.Forecast[:displayDays]
		}
		s.toCache(ctx, s.cfg.City, forecast)
	}()
}

// StopRefresher stops the background refresh loop.
func (s *Service) StopRefresher() {
	if s.stop == nil {
		return
	}
	s.stopOnce.Do(func() { close(s.stop) })
}
