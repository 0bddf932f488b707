package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
)

// AuthHandler issues and clears session cookies.
type AuthHandler struct {
	tokens  auth.TokenService
	cookies auth.CookiePolicy
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(tokens auth.TokenService, cookies auth.CookiePolicy) *AuthHandler {
	return &AuthHandler{tokens: tokens, cookies: cookies}
}

// IssueToken handles POST /jwt. It signs a token for the posted email and
// sets it as an HTTP-only cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, expiresAt, err := h.tokens.IssueToken(r.Context(), req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to issue session token")
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(token, expiresAt))
	logger.FromContext(r.Context()).Info("session issued",
		slog.Time("expires_at", expiresAt))
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// RemoveToken handles POST /remove-token by expiring the session cookie.
func (h *AuthHandler) RemoveToken(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.ClearedCookie())
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
