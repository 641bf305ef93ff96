package httputil

import (
	"context"
	"net/http"

	"portfolio/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	claimsKey contextKey = "claims"
)

// WithClaims adds verified session claims to the request context
func WithClaims(r *http.Request, claims *models.SessionClaims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetClaims retrieves session claims from context, returns nil if not found
func GetClaims(r *http.Request) *models.SessionClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.SessionClaims)
	return claims
}
