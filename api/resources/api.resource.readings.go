// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/hubservice"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
)

// ReadingHandlers serves the per-hive history view.
type ReadingHandlers struct {
	hubservice *hubservice.HubService
}

var filterDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// @Summary Hive history
// @Description Readings for one hive filtered by time window (1d/7d/30d) or row limit, chronological order
// @Tags readings
// @Produce json
// @Param id path string true "Hive unique ID"
// @Param window query string false "Time window: 1d, 7d or 30d"
// @Param limit query int false "Return the N most recent rows instead of a window"
// @Success 200 {object} models.HiveHistory
// @Failure 404 {object} errors.APIError
// @Router /hives/{id}/history [get]
func (h *ReadingHandlers) GetHiveHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var filters models.ReadingFilters
	if err := filterDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid filter parameters", err).WithRequestID(requestID))
		return
	}

	history, err := h.hubservice.GetHiveHistory(r.Context(), id, filters)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	// An empty readings slice is a valid state ("no data in this window"),
	// rendered as 200, never as 404.
	respondWithJSON(w, http.StatusOK, history)
}

// @Summary Current hive status
// @Description The most recent reading for a hive; null when the hive has no readings yet
// @Tags readings
// @Produce json
// @Param id path string true "Hive unique ID"
// @Success 200 {object} models.SensorReading
// @Failure 404 {object} errors.APIError
// @Router /hives/{id}/status [get]
func (h *ReadingHandlers) GetCurrentStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	reading, err := h.hubservice.GetCurrentStatus(r.Context(), id)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, reading)
}
