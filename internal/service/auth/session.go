package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portfolio/internal/auth"
	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/domain/services"
)

// sessionSubject is the sub claim of every admin session. There is a
// single editor, identified by knowing the admin secret.
const sessionSubject = "admin"

// SessionService issues admin sessions in exchange for the admin secret
type SessionService struct {
	password []byte
	signer   *auth.SessionVerifier
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionService creates a session service. An empty password disables
// login; sessions from an external issuer can still be accepted.
func NewSessionService(
	password string,
	signer *auth.SessionVerifier,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionService {
	if password == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}
	return &SessionService{
		password: []byte(password),
		signer:   signer,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

var _ services.SessionService = (*SessionService)(nil)

// Login checks password and issues a signed session
func (s *SessionService) Login(ctx context.Context, password string) (*services.Session, error) {
	if len(s.password) == 0 {
		return nil, &domain.UnauthorizedError{Message: "admin login is disabled"}
	}
	if !s.passwordMatches(password) {
		s.logger.Warn("admin login failed")
		return nil, &domain.UnauthorizedError{Message: "invalid password"}
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: models.RoleAdmin,
	}

	token, err := s.signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	s.logger.Info("admin session issued", "session_id", claims.ID, "expires_at", expiresAt)

	return &services.Session{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// passwordMatches compares digests so the comparison time does not depend
// on the length of either input.
func (s *SessionService) passwordMatches(password string) bool {
	got := sha256.Sum256([]byte(password))
	want := sha256.Sum256(s.password)
	return subtle.ConstantTimeCompare(got[:], want[:]) == 1
}

// ResolveSecret returns the configured session secret, or a random one when
// unset. Sessions signed with a random secret do not survive a restart.
func ResolveSecret(configured string, logger *slog.Logger) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	logger.Warn("SESSION_SECRET not set, using a random per-process secret")
	return secret, nil
}
