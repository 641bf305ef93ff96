package middleware

import (
	"log/slog"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/httputil"
)

// RequireAdmin rejects requests without a valid admin token with 401.
// Verified claims are stored in the request context.
func RequireAdmin(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := httputil.SessionToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "admin session required")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Info("admin request rejected",
					"path", r.URL.Path,
					"method", r.Method,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}
