package services

import (
	"context"
	"time"
)

// Session is an issued admin session.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionService gates the editing surface behind the admin secret.
type SessionService interface {
	// Login checks password and issues a signed session token.
	// Returns domain.ErrUnauthorized on a wrong password or when login is disabled.
	// Issued tokens are checked by auth.SessionVerifier, the same verifier
	// that guards the admin routes.
	Login(ctx context.Context, password string) (*Session, error)
}
