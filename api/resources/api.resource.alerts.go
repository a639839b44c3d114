// FilePath: api/resources/api.resource.alerts.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/alerts"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AlertHandlers receives threshold alerts pushed by the database trigger.
type AlertHandlers struct {
	alerts *alerts.Service
}

type alertAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// @Summary Submit an alert
// @Description Validate, log and relay a threshold alert; notification dispatch is an extension point
// @Tags alerts
// @Accept json
// @Produce json
// @Param alert body models.Alert true "Alert payload"
// @Success 200 {object} alertAck
// @Failure 400 {object} errors.APIError
// @Failure 405 "Method Not Allowed"
// @Router /alerts [post]
func (h *AlertHandlers) SubmitAlert(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var alert models.Alert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.alerts.Submit(r.Context(), &alert); err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, alertAck{
		Success: true,
		Message: "alert received and relayed",
	})
}
