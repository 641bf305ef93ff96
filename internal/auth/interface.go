package auth

import "portfolio/internal/domain/models"

// TokenVerifier defines the interface for admin token verification.
// This abstraction keeps the middleware agnostic to who issued the token
// (this service's own sessions or an external identity provider).
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired,
	// signed with an unexpected algorithm, or does not grant the admin role.
	VerifyToken(tokenString string) (*models.SessionClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
