// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/api/middleware"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/Nerzal/gocloak/v13"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers exposes the session endpoints backed by Keycloak. Tokens are
// issued and revoked here; validation on protected routes is the
// middleware's job.
type AuthHandlers struct {
	client *gocloak.GoCloak
	config middleware.KeycloakConfig
}

func NewAuthHandlers(config middleware.KeycloakConfig) *AuthHandlers {
	return &AuthHandlers{
		client: gocloak.NewClient(config.URL),
		config: config,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// @Summary Log in
// @Description Exchange credentials for an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Username and password"
// @Success 200 {object} loginResponse
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Username == "" || req.Password == "" {
		respondWithError(w, errors.NewValidationError("username and password are required", nil).WithRequestID(requestID))
		return
	}

	token, err := h.client.Login(r.Context(), h.config.ClientID, h.config.ClientSecret, h.config.Realm, req.Username, req.Password)
	if err != nil {
		// Keycloak does not distinguish unknown user from wrong password
		// and neither do we.
		respondWithError(w, errors.NewAuthError("invalid credentials", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
		TokenType:    token.TokenType,
	})
}

// @Summary Log out
// @Description Revoke the session's refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param session body logoutRequest true "Refresh token to revoke"
// @Success 200 {object} alertAck
// @Failure 400 {object} errors.APIError
// @Router /auth/logout [post]
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.RefreshToken == "" {
		respondWithError(w, errors.NewValidationError("refresh_token is required", nil).WithRequestID(requestID))
		return
	}

	if err := h.client.Logout(r.Context(), h.config.ClientID, h.config.ClientSecret, h.config.Realm, req.RefreshToken); err != nil {
		// A token that is already expired or revoked is still a
		// successful logout from the caller's perspective.
		nuts.L.Warnf("[Auth] logout for an inactive session: %v", err)
	}

	respondWithJSON(w, http.StatusOK, alertAck{Success: true, Message: "logged out"})
}

// @Summary Current session
// @Description Return the authenticated user's resolved identity
// @Tags auth
// @Produce json
// @Success 200 {object} middleware.UserContext
// @Failure 401 {object} errors.APIError
// @Router /auth/session [get]
// @Security BearerAuth
func (h *AuthHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
