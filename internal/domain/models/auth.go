package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role allowed to replace content.
const RoleAdmin = "admin"

// SessionClaims are the JWT claims of an admin session.
// Tokens from an external issuer must carry the same role claim.
type SessionClaims struct {
	jwt.RegisteredClaims        // sub, iss, exp, iat, jti
	Role                 string `json:"role"`
	Email                string `json:"email,omitempty"`
}

// IsAdmin reports whether the claims grant editing rights.
func (c *SessionClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
