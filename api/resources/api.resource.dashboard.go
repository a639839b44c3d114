// FilePath: api/resources/api.resource.dashboard.go
package resources

import (
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// DashboardHandlers serves the public, unauthenticated dashboard: the hive
// list with derived weight metrics and the apiary summary. Owner-scoped
// fields never appear here.
type DashboardHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Public hive list
// @Description List all hives with their daily weight change, name ascending
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.DashboardHive
// @Router /dashboard/hives [get]
func (h *DashboardHandlers) ListDashboardHives(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	// Serve the cached snapshot when the background refresher has one;
	// otherwise compute live.
	if snap := h.hubservice.DashboardSnapshot(); snap != nil {
		respondWithJSON(w, http.StatusOK, snap.Hives)
		return
	}

	hives, err := h.hubservice.ListDashboardHives(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, hives)
}

// @Summary Apiary summary metrics
// @Description Aggregated metrics across all hives
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.ApiarySummary
// @Router /dashboard/summary [get]
func (h *DashboardHandlers) GetApiarySummary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if snap := h.hubservice.DashboardSnapshot(); snap != nil && snap.Summary != nil {
		respondWithJSON(w, http.StatusOK, snap.Summary)
		return
	}

	summary, err := h.hubservice.GetApiarySummary(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
