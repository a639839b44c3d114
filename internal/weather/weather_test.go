// FilePath: internal/weather/weather_test.go
package weather

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/config"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
)

type fakeForecaster struct {
	calls    int
	lastCity string
	lastDays int
	forecast *models.WeatherForecast
	err      error
}

func (f *fakeForecaster) Forecast(ctx context.Context, city string, days int) (*models.WeatherForecast, error) {
	f.calls++
	f.lastCity = city
	f.lastDays = days
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func testConfig() config.WeatherConfig {
	return config.WeatherConfig{
		APIKey:       "test-key",
		City:         "Campana, Buenos Aires, AR",
		ForecastDays: 7,
	}
}

func forecastDays(n int) []models.ForecastDay {
	days := make([]models.ForecastDay, n)
	for i := range days {
		days[i] = models.ForecastDay{Date: "2026-09-0" + string(rune('1'+i))}
	}
	return days
}

func TestGetFailsFastWithoutAPIKey(t *testing.T) {
	forecaster := &fakeForecaster{}
	cfg := testConfig()
	cfg.APIKey = ""
	svc := NewService(cfg, forecaster, nil)

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))

	// The provider is never contacted without a key.
	assert.Zero(t, forecaster.calls)
}

func TestGetTruncatesToDisplayDays(t *testing.T) {
	forecaster := &fakeForecaster{
		forecast: &models.WeatherForecast{
			City:     "Campana",
			Country:  "Argentina",
			Forecast: forecastDays(7),
		},
	}
	svc := NewService(testConfig(), forecaster, nil)

	forecast, err := svc.Get(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, forecast.Forecast, displayDays)
	assert.Equal(t, 7, forecaster.lastDays, "the provider is still asked for the configured range")
}

func TestGetUsesConfiguredCityByDefault(t *testing.T) {
	forecaster := &fakeForecaster{
		forecast: &models.WeatherForecast{Forecast: forecastDays(3)},
	}
	svc := NewService(testConfig(), forecaster, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Campana, Buenos Aires, AR", forecaster.lastCity)

	_, err = svc.Get(ctx, "Zarate,AR")
	require.NoError(t, err)
	assert.Equal(t, "Zarate,AR", forecaster.lastCity)
}

func TestGetPropagatesUpstreamError(t *testing.T) {
	forecaster := &fakeForecaster{
		err: errors.NewUpstreamError("weather provider request failed", 403, nil),
	}
	svc := NewService(testConfig(), forecaster, nil)

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)

	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok)
	assert.Equal(t, 403, apiErr.Code)
}
