package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/auth"
	"github.com/pleaderai/backend/internal/models"
)

type AuthHandler struct {
	svc    *auth.Service
	issuer *auth.TokenIssuer
}

func NewAuthHandler(svc *auth.Service, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{svc: svc, issuer: issuer}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Provider  string `json:"provider"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.respondWithToken(w, user, "User created successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.respondWithToken(w, user, "Login successful")
}

// Session upserts a user from an OAuth provider exchange.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.AuthenticateExternal(r.Context(), req.Email, req.Name, req.AvatarURL, req.Provider)
	if err != nil {
		if apperr.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		writeServiceError(w, err)
		return
	}

	h.respondWithToken(w, user, "Session created")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"avatar_url":  user.AvatarURL,
		"preferences": user.Preferences,
	})
}

// Logout is a client-side operation: tokens are self-contained and
// there is no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var prefs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdatePreferences(r.Context(), user.ID, prefs); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Preferences updated successfully"})
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User, message string) {
	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		slog.Error("failed to issue token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"token":   token,
		"user":    user.Profile(),
	})
}
