package handler

import (
	"log/slog"
	"net/http"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/domain/services"
	"portfolio/internal/httputil"
)

// AuthHandler handles admin session HTTP requests
type AuthHandler struct {
	sessions      services.SessionService
	verifier      auth.TokenVerifier
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler. verifier decides what counts as
// a live session for GET /auth/session; it normally includes sessions.
func NewAuthHandler(
	sessions services.SessionService,
	verifier auth.TokenVerifier,
	secureCookies bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		verifier:      verifier,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Password string `json:"password"`
}

// SessionResponse describes an active admin session
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	Role          string     `json:"role,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// Login exchanges the admin password for a session
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httputil.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Logout clears the session cookie. Issued tokens stay valid until they
// expire; the TTL is kept short for that reason.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     httputil.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetSession reports whether the request carries a valid admin session
// GET /auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := httputil.SessionToken(r)
	if token == "" {
		httputil.RespondJSON(w, http.StatusUnauthorized, SessionResponse{Authenticated: false})
		return
	}

	claims, err := h.verifier.VerifyToken(token)
	if err != nil {
		httputil.RespondJSON(w, http.StatusUnauthorized, SessionResponse{Authenticated: false})
		return
	}

	resp := SessionResponse{
		Authenticated: true,
		Subject:       claims.Subject,
		Role:          claims.Role,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		resp.ExpiresAt = &exp
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}
