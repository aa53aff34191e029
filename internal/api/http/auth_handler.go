package http

import (
	"net/http"

	"campuspool-backend/internal/security"
	"campuspool-backend/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// AuthHandler mints session tokens. Real deployments authenticate through the
// external SSO provider, which asserts the identity upstream of this service;
// the dev login exists so the app can be driven locally without an IdP.
type AuthHandler struct {
	userSvc         service.UserService
	tokens          security.TokenManager
	devLoginEnabled bool
	devPasswordHash string
}

func NewAuthHandler(userSvc service.UserService, tokens security.TokenManager, devLoginEnabled bool, devPasswordHash string) *AuthHandler {
	return &AuthHandler{
		userSvc:         userSvc,
		tokens:          tokens,
		devLoginEnabled: devLoginEnabled,
		devPasswordHash: devPasswordHash,
	}
}

type devLoginRequest struct {
	SSOID       string `json:"sso_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// DevLogin upserts a user record for an arbitrary identity and returns a
// session token. Disabled unless auth.dev_login_enabled is set.
func (h *AuthHandler) DevLogin(w http.ResponseWriter, r *http.Request) {
	if !h.devLoginEnabled {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	var req devLoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.devPasswordHash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	user, err := h.userSvc.UpsertFromAssertion(r.Context(), req.SSOID, req.Email, req.DisplayName)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.GenerateSessionToken(user.ID, user.SSOID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Me returns the authenticated caller's user record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	user, err := h.userSvc.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
