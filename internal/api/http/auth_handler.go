package http

import (
	"errors"
	"net/http"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type sessionRequest struct {
	IDToken string `json:"id_token"`
}

type sessionResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// HandleSession exchanges a provider ID token for backend session tokens,
// creating the user record on first sign-in.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "id_token is required")
		return
	}

	user, access, refresh, err := h.authSvc.ExchangeSession(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, "sign-in could not be verified")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: user, AccessToken: access, RefreshToken: refresh})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	access, refresh, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired session token")
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: access, RefreshToken: refresh})
}
