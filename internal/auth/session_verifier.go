package auth

import (
	"errors"
	"log/slog"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// SessionIssuer is the iss claim of sessions minted by this service.
const SessionIssuer = "portfolio"

// SessionVerifier checks HS256 session tokens signed with the server secret.
type SessionVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewSessionVerifier creates a verifier for tokens signed with secret
func NewSessionVerifier(secret []byte, logger *slog.Logger) (*SessionVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret cannot be empty")
	}
	return &SessionVerifier{secret: secret, logger: logger}, nil
}

// VerifyToken validates a session token and returns its claims.
func (v *SessionVerifier) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{},
		func(*jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(SessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.logger.Debug("session token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || !claims.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// Sign mints a token for claims with the server secret.
func (v *SessionVerifier) Sign(claims *models.SessionClaims) (string, error) {
	claims.Issuer = SessionIssuer
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Close is a no-op
func (v *SessionVerifier) Close() error { return nil }
