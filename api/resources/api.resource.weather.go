// FilePath: api/resources/api.resource.weather.go
package resources

import (
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/weather"
	nuts "github.com/vaudience/go-nuts"
)

// WeatherHandlers serves the forecast passthrough. Failures here never
// affect the rest of the dashboard; the client degrades its weather panel.
type WeatherHandlers struct {
	weather *weather.Service
}

// @Summary Weather forecast
// @Description Normalized 5-day forecast for the apiary's city
// @Tags weather
// @Produce json
// @Param city query string false "City override, e.g. Campana,AR"
// @Success 200 {object} models.WeatherForecast
// @Failure 500 {object} errors.APIError
// @Router /weather [get]
func (h *WeatherHandlers) GetForecast(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	forecast, err := h.weather.Get(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, forecast)
}
