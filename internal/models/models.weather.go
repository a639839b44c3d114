// FilePath: internal/models/models.weather.go
package models

// ForecastDay is one per-day summary in the normalized forecast shape.
type ForecastDay struct {
	Date      string  `json:"date"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
	TempMax   float64 `json:"temp_max"`
	TempMin   float64 `json:"temp_min"`
}

// WeatherForecast is the stable local shape the dashboard consumes,
// regardless of the upstream provider's response format.
type WeatherForecast struct {
	City     string        `json:"city"`
	Country  string        `json:"country"`
	Forecast []ForecastDay `json:"forecast"`
}
