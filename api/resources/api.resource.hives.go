// FilePath: api/resources/api.resource.hives.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api/middleware"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/hubservice"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// HiveHandlers encapsulates the admin hive CRUD handlers. Every route here
// sits behind the session gate, so the user context is always resolved.
type HiveHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List own hives
// @Description Get the authenticated user's hives, newest first
// @Tags hives
// @Produce json
// @Success 200 {array} models.Hive
// @Failure 401 {object} errors.APIError
// @Router /admin/hives [get]
// @Security BearerAuth
func (h *HiveHandlers) ListHives(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	hives, err := h.hubservice.ListHivesByOwner(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, hives)
}

// @Summary Create a new hive
// @Description Create a new hive owned by the authenticated user
// @Tags hives
// @Accept json
// @Produce json
// @Param hive body models.Hive true "Hive details"
// @Success 201 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /admin/hives [post]
// @Security BearerAuth
func (h *HiveHandlers) CreateHive(w http.ResponseWriter, r *http.Request) {
	var hive models.Hive
	requestID := nuts.NID("req", 12)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	err := h.hubservice.CreateHive(r.Context(), &hive, user.ID)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	// The created row is echoed back with the server-assigned fields
	// (normalized identifier, owner, timestamps) so the caller re-fetches
	// its list instead of guessing them.
	respondWithJSON(w, http.StatusCreated, hive)
}

// @Summary Get a hive by ID
// @Description Get detailed information about a specific hive
// @Tags hives
// @Produce json
// @Param id path string true "Hive unique ID"
// @Success 200 {object} models.Hive
// @Failure 404 {object} errors.APIError
// @Router /admin/hives/{id} [get]
// @Security BearerAuth
func (h *HiveHandlers) GetHive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	hive, err := h.hubservice.GetHive(r.Context(), id, rolesForUser(user))
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Update a hive
// @Description Update a hive's editable fields (name, location, notes)
// @Tags hives
// @Accept json
// @Produce json
// @Param id path string true "Hive unique ID"
// @Param hive body models.Hive true "Updated hive details"
// @Success 200 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /admin/hives/{id} [put]
// @Security BearerAuth
func (h *HiveHandlers) UpdateHive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	var hive models.Hive
	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	hive.HiveUniqueID = id
	err := h.hubservice.UpdateHive(r.Context(), &hive, rolesForUser(user))
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Delete a hive
// @Description Delete a hive and all its sensor readings
// @Tags hives
// @Produce json
// @Param id path string true "Hive unique ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /admin/hives/{id} [delete]
// @Security BearerAuth
func (h *HiveHandlers) DeleteHive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	err := h.hubservice.DeleteHive(r.Context(), id)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// rolesForUser widens the Keycloak realm roles with the implicit owner role
// used by the field access tags.
func rolesForUser(user *middleware.UserContext) []string {
	return append([]string{"owner"}, user.Roles...)
}
