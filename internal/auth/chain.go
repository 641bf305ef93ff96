package auth

import (
	"errors"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
)

// ChainVerifier accepts a token if any of its verifiers does.
type ChainVerifier struct {
	verifiers []TokenVerifier
}

// NewChainVerifier creates a verifier trying each of verifiers in order.
// Nil entries are skipped.
func NewChainVerifier(verifiers ...TokenVerifier) *ChainVerifier {
	c := &ChainVerifier{}
	for _, v := range verifiers {
		if v != nil {
			c.verifiers = append(c.verifiers, v)
		}
	}
	return c
}

// VerifyToken returns the claims from the first verifier that accepts the token.
func (c *ChainVerifier) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	for _, v := range c.verifiers {
		claims, err := v.VerifyToken(tokenString)
		if err == nil {
			return claims, nil
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
	}
	return nil, domain.ErrUnauthorized
}

// Close closes every verifier, returning the joined errors.
func (c *ChainVerifier) Close() error {
	var errs []error
	for _, v := range c.verifiers {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
