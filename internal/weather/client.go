// FilePath: internal/weather/client.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/go-resty/resty/v2"
)

// Forecaster fetches a normalized forecast from an upstream provider.
type Forecaster interface {
	Forecast(ctx context.Context, city string, days int) (*models.WeatherForecast, error)
}

// Client talks to a WeatherAPI-style forecast endpoint and normalizes its
// response into the local shape.
type Client struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    resty.New().SetTimeout(10 * time.Second),
	}
}

// upstreamResponse mirrors the provider's forecast payload; only the fields
// we map are declared.
type upstreamResponse struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC  float64 `json:"maxtemp_c"`
				MinTempC  float64 `json:"mintemp_c"`
				Condition struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type upstreamError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Forecast(ctx context.Context, city string, days int) (*models.WeatherForecast, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":  c.apiKey,
			"q":    city,
			"days": fmt.Sprintf("%d", days),
			"lang": "es",
		}).
		Get(c.baseURL + "/forecast.json")
	if err != nil {
		return nil, errors.NewUpstreamError("failed to reach weather provider", 0, err)
	}

	if resp.StatusCode() >= 400 {
		var upErr upstreamError
		msg := "weather provider request failed"
		if jsonErr := json.Unmarshal(resp.Body(), &upErr); jsonErr == nil && upErr.Error.Message != "" {
			msg = "weather provider request failed: " + upErr.Error.Message
		}
		return nil, errors.NewUpstreamError(msg, resp.StatusCode(), nil)
	}

	var payload upstreamResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.NewUpstreamError("invalid weather provider response", 0, err)
	}

	// A 2xx body without forecast data is treated as an error; partial or
	// garbage data never reaches the dashboard.
	if len(payload.Forecast.ForecastDay) == 0 {
		return nil, errors.NewUpstreamError("weather provider response is missing forecast data", 0, nil)
	}

	forecast := make([]models.ForecastDay, 0, len(payload.Forecast.ForecastDay))
	for _, day := range payload.Forecast.ForecastDay {
		icon := day.Day.Condition.Icon
		if icon != "" {
			// The provider ships protocol-relative icon URLs.
			icon = "https:" + icon
		}
		forecast = append(forecast, models.ForecastDay{
			Date:      day.Date,
			Condition: day.Day.Condition.Text,
			Icon:      icon,
			TempMax:   day.Day.MaxTempC,
			TempMin:   day.Day.MinTempC,
		})
	}

	return &models.WeatherForecast{
		City:     payload.Location.Name,
		Country:  payload.Location.Country,
		Forecast: forecast,
	}, nil
}
